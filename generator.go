package report2pdf

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage identifies a pipeline stage for failure attribution.
type Stage string

// Pipeline stages in execution order. A run moves strictly
// Binding -> Rendering -> Writing; any failure is terminal for the run.
const (
	StageBinding   Stage = "binding"
	StageRendering Stage = "rendering"
	StageWriting   Stage = "writing"
)

// StageError attaches stage identity to the underlying cause. The pipeline
// never retries and never resumes from a partial state; the error carries
// everything the caller needs to attribute the failure.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// failStage wraps a stage failure.
func failStage(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout time.Duration
	tempDir string
	funcs   template.FuncMap
}

// Generator runs the report pipeline: bind a record into a template, render
// the resolved markup through an engine, write the artifact atomically.
// A Generator is safe for sequential reuse; for concurrent batch work use
// GeneratorPool so each in-flight run has its own engine.
type Generator struct {
	cfg    generatorConfig
	binder *Binder
	engine Engine
	logger *zap.Logger
}

// NewGenerator creates a Generator with default configuration: headless
// Chrome engine, default timeout, no logging. Use options to customize.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		cfg:    generatorConfig{timeout: defaultRenderTimeout},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.binder = NewBinder(g.cfg.funcs)

	if g.engine == nil {
		g.engine = NewChromeEngine(g.cfg.tempDir, g.logger)
	}

	return g
}

// Close releases the engine's resources.
func (g *Generator) Close() error {
	if g.engine != nil {
		return g.engine.Close()
	}
	return nil
}

// Generate runs the full pipeline for one report: the record is bound to
// the template at templatePath, the resolved markup is paginated by the
// engine, and the artifact is written to destPath. On any failure the
// returned error is a *StageError naming the failed stage, and no file
// exists at destPath.
func (g *Generator) Generate(ctx context.Context, record *ReportRecord, templatePath, destPath string, opts *RenderOptions) (*WriteResult, error) {
	tmpl, err := LoadTemplateSource(templatePath)
	if err != nil {
		return nil, failStage(StageBinding, err)
	}
	return g.GenerateFromTemplate(ctx, record, tmpl, destPath, opts)
}

// GenerateFromTemplate is Generate with an in-memory template source, for
// callers that embed or assemble templates themselves.
func (g *Generator) GenerateFromTemplate(ctx context.Context, record *ReportRecord, tmpl TemplateSource, destPath string, opts *RenderOptions) (*WriteResult, error) {
	// Copy so the caller's options are never mutated. The generator's
	// configured timeout applies whenever the caller did not set one
	// explicitly, including the nil-options path.
	run := *opts.withDefaults()
	if opts == nil || opts.Timeout <= 0 {
		run.Timeout = g.cfg.timeout
	}
	opts = &run
	if err := opts.Validate(); err != nil {
		return nil, failStage(StageRendering, err)
	}

	runID := uuid.NewString()
	logger := g.logger.With(zap.String("run", runID))
	start := time.Now()

	logger.Debug("run starting",
		zap.String("template", tmpl.Name),
		zap.String("dest", destPath))

	markup, err := g.binder.Bind(tmpl, record)
	if err != nil {
		return nil, failStage(StageBinding, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, failStage(StageBinding, err)
	}

	artifact, err := g.engine.Render(ctx, markup, opts)
	if err != nil {
		return nil, failStage(StageRendering, err)
	}

	result, err := WriteArtifact(artifact, destPath)
	if err != nil {
		return nil, failStage(StageWriting, err)
	}

	logger.Info("run complete",
		zap.String("dest", result.Path),
		zap.Int("bytes", result.Bytes),
		zap.Int("pages", result.Pages),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

// GenerateFrom pulls the record from a DataProvider before running the
// pipeline. Provider failures count as binding-stage failures: the run
// never reached the engine.
func (g *Generator) GenerateFrom(ctx context.Context, provider DataProvider, templatePath, destPath string, opts *RenderOptions) (*WriteResult, error) {
	record, err := provider.Provide(ctx)
	if err != nil {
		return nil, failStage(StageBinding, err)
	}
	return g.Generate(ctx, record, templatePath, destPath, opts)
}
