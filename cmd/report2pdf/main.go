package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitBindError)
	}

	// Configure GOMAXPROCS for containerized environments. Errors are
	// ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env, in
	// which case runtime defaults apply.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	logger := zap.NewNop()
	if flags.verbose {
		devLogger, err := zap.NewDevelopment()
		if err == nil {
			logger = devLogger
		}
	}
	defer func() { _ = logger.Sync() }()

	cfg := DefaultConfig()
	if flags.configPath != "" {
		loaded, err := LoadConfig(flags.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitBindError)
		}
		cfg = loaded
	}
	flags.apply(cfg)

	// A signal aborts the run; the engine's context handling terminates
	// any subprocess rather than leaving it running.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
