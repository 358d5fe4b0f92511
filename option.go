package report2pdf

import (
	"html/template"
	"time"

	"go.uber.org/zap"
)

// Option configures a Generator.
type Option func(*Generator)

// WithEngine sets the rendering engine. The generator takes ownership and
// closes it on Close.
func WithEngine(engine Engine) Option {
	if engine == nil {
		panic("report2pdf: WithEngine engine must not be nil")
	}
	return func(g *Generator) {
		g.engine = engine
	}
}

// WithTimeout sets the default per-run rendering timeout, used when
// RenderOptions does not specify one.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("report2pdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithTempDir sets the directory for per-run temporary files. Each run
// still uses uniquely named files inside it, so concurrent runs sharing a
// temp dir cannot collide.
func WithTempDir(dir string) Option {
	return func(g *Generator) {
		g.cfg.tempDir = dir
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithFuncs adds template functions available during binding. They override
// standard functions on name collision.
func WithFuncs(funcs template.FuncMap) Option {
	return func(g *Generator) {
		g.cfg.funcs = funcs
	}
}
