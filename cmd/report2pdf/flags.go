package main

import (
	"time"

	"github.com/spf13/pflag"
)

// cliFlags holds parsed command-line flags. Flags override config values.
type cliFlags struct {
	configPath string
	record     string
	csv        string
	template   string
	output     string
	engine     string
	pageSize   string
	orient     string
	margin     float64
	timeout    time.Duration
	allowNet   bool
	verbose    bool
}

// parseFlags parses args (excluding the program name).
func parseFlags(args []string) (*cliFlags, error) {
	flags := &cliFlags{}

	fs := pflag.NewFlagSet("report2pdf", pflag.ContinueOnError)
	fs.StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	fs.StringVar(&flags.record, "record", "", "YAML record file (data provider)")
	fs.StringVar(&flags.csv, "csv", "", "CSV data file (line-item provider)")
	fs.StringVarP(&flags.template, "template", "t", "", "HTML template path (default: built-in report template)")
	fs.StringVarP(&flags.output, "out", "o", "", "destination PDF path")
	fs.StringVar(&flags.engine, "engine", "", "rendering engine: chrome or wkhtmltopdf")
	fs.StringVar(&flags.pageSize, "page-size", "", "page size: letter, a4, a5, legal")
	fs.StringVar(&flags.orient, "orientation", "", "page orientation: portrait or landscape")
	fs.Float64Var(&flags.margin, "margin", 0, "page margin in inches, all sides")
	fs.DurationVar(&flags.timeout, "timeout", 0, "rendering timeout (e.g. 45s)")
	fs.BoolVar(&flags.allowNet, "allow-network", false, "permit the engine to load remote resources")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "log pipeline progress to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// apply overlays non-zero flag values onto the config.
func (f *cliFlags) apply(cfg *Config) {
	if f.record != "" {
		cfg.Data.Record = f.record
	}
	if f.csv != "" {
		cfg.Data.CSV.Path = f.csv
	}
	if f.template != "" {
		cfg.Template = f.template
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.engine != "" {
		cfg.Engine.Kind = f.engine
	}
	if f.pageSize != "" {
		cfg.Page.Size = f.pageSize
	}
	if f.orient != "" {
		cfg.Page.Orientation = f.orient
	}
	if f.margin > 0 {
		cfg.Page.Margin = f.margin
	}
	if f.timeout > 0 {
		cfg.Engine.Timeout = f.timeout
	}
	if f.allowNet {
		cfg.Page.AllowNetwork = true
	}
}
