package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	report2pdf "github.com/jfeld/go-report2pdf"
	"github.com/jfeld/go-report2pdf/internal/assets"
)

// Sentinel errors for CLI validation.
var (
	ErrNoOutput = errors.New("no output path: use --out or set output in the config")
	ErrNoData   = errors.New("no data source: use --record or --csv, or configure one")
)

// run executes one report run from the resolved config.
func run(ctx context.Context, cfg *Config, logger *zap.Logger) error {
	if cfg.Output == "" {
		return ErrNoOutput
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		// The engine never started; report it as a rendering-stage failure.
		return &report2pdf.StageError{Stage: report2pdf.StageRendering, Err: err}
	}

	opts := []report2pdf.Option{
		report2pdf.WithEngine(engine),
		report2pdf.WithLogger(logger),
	}
	if cfg.Engine.Timeout > 0 {
		opts = append(opts, report2pdf.WithTimeout(cfg.Engine.Timeout))
	}
	if cfg.Engine.TempDir != "" {
		opts = append(opts, report2pdf.WithTempDir(cfg.Engine.TempDir))
	}

	gen := report2pdf.NewGenerator(opts...)
	defer func() { _ = gen.Close() }()

	renderOpts := buildRenderOptions(cfg)

	record, err := provider.Provide(ctx)
	if err != nil {
		return &report2pdf.StageError{Stage: report2pdf.StageBinding, Err: err}
	}

	tmpl, err := resolveTemplate(cfg, record)
	if err != nil {
		return &report2pdf.StageError{Stage: report2pdf.StageBinding, Err: err}
	}

	result, err := gen.GenerateFromTemplate(ctx, record, tmpl, cfg.Output, renderOpts)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s (%d bytes, %d pages)\n", result.Path, result.Bytes, result.Pages)
	return nil
}

// buildProvider selects the data provider from config.
func buildProvider(cfg *Config) (report2pdf.DataProvider, error) {
	switch {
	case cfg.Data.Record != "":
		return &report2pdf.YAMLRecordProvider{Path: cfg.Data.Record}, nil
	case cfg.Data.CSV.Path != "":
		c := cfg.Data.CSV
		return &report2pdf.CSVProvider{
			Path:       c.Path,
			Fields:     c.Fields,
			Required:   c.Required,
			Defaults:   c.Defaults,
			DateColumn: c.DateCol,
			DateStart:  c.DateStart,
			DateEnd:    c.DateEnd,
			TagColumn:  c.TagCol,
			Tags:       c.Tags,
		}, nil
	default:
		return nil, ErrNoData
	}
}

// buildEngine constructs the configured rendering engine.
func buildEngine(cfg *Config, logger *zap.Logger) (report2pdf.Engine, error) {
	switch cfg.Engine.Kind {
	case "", "chrome":
		return report2pdf.NewChromeEngine(cfg.Engine.TempDir, logger), nil
	case "wkhtmltopdf":
		return report2pdf.NewWkhtmltopdfEngine(&report2pdf.WkhtmltopdfConfig{
			BinaryPath: cfg.Engine.BinaryPath,
			TempDir:    cfg.Engine.TempDir,
			Logger:     logger,
		})
	default:
		return nil, fmt.Errorf("unknown engine %q (want chrome or wkhtmltopdf)", cfg.Engine.Kind)
	}
}

// buildRenderOptions maps page config onto render options.
func buildRenderOptions(cfg *Config) *report2pdf.RenderOptions {
	opts := report2pdf.DefaultRenderOptions()
	if cfg.Page.Size != "" {
		opts.PageSize = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		opts.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin > 0 {
		m := cfg.Page.Margin
		opts.Margins = &report2pdf.Margins{Top: m, Right: m, Bottom: m, Left: m}
	}
	opts.Title = cfg.Page.Title
	opts.HeaderHTML = cfg.Page.HeaderHTML
	opts.FooterHTML = cfg.Page.FooterHTML
	opts.AllowNetwork = cfg.Page.AllowNetwork
	if cfg.Engine.Timeout > 0 {
		opts.Timeout = cfg.Engine.Timeout
	}
	return opts
}

// resolveTemplate loads the configured template, falling back to the
// built-in report template with its stylesheet attached to the record.
func resolveTemplate(cfg *Config, record *report2pdf.ReportRecord) (report2pdf.TemplateSource, error) {
	if cfg.Template != "" {
		return report2pdf.LoadTemplateSource(cfg.Template)
	}

	content, err := assets.Template(assets.DefaultTemplateName)
	if err != nil {
		return report2pdf.TemplateSource{}, err
	}
	style, err := assets.Style(assets.DefaultTemplateName)
	if err != nil {
		return report2pdf.TemplateSource{}, err
	}
	record.WithDefault("css", style)

	return report2pdf.TemplateSource{
		Name:    assets.DefaultTemplateName,
		Content: content,
	}, nil
}
