package report2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jfeld/go-report2pdf/internal/fileutil"
	"github.com/jfeld/go-report2pdf/internal/process"
)

const defaultWkhtmltopdfBinary = "wkhtmltopdf"

// WkhtmltopdfConfig configures the subprocess engine.
type WkhtmltopdfConfig struct {
	// BinaryPath locates the wkhtmltopdf binary. Empty searches PATH.
	BinaryPath string
	// TempDir stages per-run files ("" = system temp dir).
	TempDir string
	// Logger for diagnostics. Nil disables logging.
	Logger *zap.Logger
}

var _ Engine = (*WkhtmltopdfEngine)(nil)

// WkhtmltopdfEngine paginates markup by invoking the wkhtmltopdf
// command-line tool as an isolated subprocess.
type WkhtmltopdfEngine struct {
	binaryPath string
	tempDir    string
	logger     *zap.Logger
}

// NewWkhtmltopdfEngine creates the engine, verifying the binary can be
// located up front so a missing installation fails fast.
func NewWkhtmltopdfEngine(cfg *WkhtmltopdfConfig) (*WkhtmltopdfEngine, error) {
	if cfg == nil {
		cfg = &WkhtmltopdfConfig{}
	}

	binary := cfg.BinaryPath
	if binary == "" {
		binary = defaultWkhtmltopdfBinary
	}

	resolved, err := resolveBinary(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEngineUnavailable, binary, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WkhtmltopdfEngine{
		binaryPath: resolved,
		tempDir:    cfg.TempDir,
		logger:     logger,
	}, nil
}

// resolveBinary finds the full path to the binary.
func resolveBinary(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}
	return exec.LookPath(path)
}

// Close releases resources. The subprocess engine holds none between runs.
func (e *WkhtmltopdfEngine) Close() error {
	return nil
}

// Render stages markup and output as isolated temp files, runs wkhtmltopdf
// bounded by the configured timeout, and reads back the produced document.
// On timeout the whole process group is killed; nothing is left running and
// every temp file is removed on every exit path.
func (e *WkhtmltopdfEngine) Render(ctx context.Context, markup *ResolvedMarkup, opts *RenderOptions) (*RenderedArtifact, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	timeout := opts.timeout()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	htmlPath, cleanupHTML, err := fileutil.WriteTempFile(e.tempDir, "report2pdf", markup.HTML, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: staging markup: %v", ErrRenderFailed, err)
	}
	defer cleanupHTML()

	pdfFile, err := os.CreateTemp(e.tempDir, "report2pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: staging output: %v", ErrRenderFailed, err)
	}
	pdfPath := pdfFile.Name()
	_ = pdfFile.Close()
	defer func() { _ = os.Remove(pdfPath) }()

	args, cleanupExtras, err := e.buildArgs(opts, htmlPath, pdfPath)
	if err != nil {
		return nil, err
	}
	defer cleanupExtras()

	e.logger.Debug("executing wkhtmltopdf",
		zap.String("binary", e.binaryPath),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, e.binaryPath, args...)
	process.SetGroup(cmd)

	// On cancellation kill the whole group; the binary spawns helpers that
	// would otherwise hold the stderr pipe open and stall Wait.
	cmd.Cancel = func() error {
		process.KillGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = 5 * time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", ErrRenderTimeout, timeout)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Diagnostic output is attached, never discarded.
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, strings.TrimSpace(stderr.String()), err)
	}

	data, err := os.ReadFile(pdfPath) // #nosec G304 -- path created above
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %v", ErrRenderFailed, err)
	}

	artifact, err := newArtifact(data, time.Since(start))
	if err != nil {
		return nil, err
	}

	e.logger.Info("wkhtmltopdf render complete",
		zap.Int("bytes", len(artifact.PDF)),
		zap.Int("pages", artifact.Pages),
		zap.Duration("duration", artifact.Duration))

	return artifact, nil
}

// buildArgs constructs the command line from render options. Header and
// footer markup go through temp files because wkhtmltopdf only accepts them
// as paths; the returned cleanup removes them.
func (e *WkhtmltopdfEngine) buildArgs(opts *RenderOptions, htmlPath, pdfPath string) ([]string, func(), error) {
	m := opts.margins()

	args := []string{
		"--quiet",
		"--encoding", "UTF-8",
		"--page-size", strings.ToUpper(opts.PageSize[:1]) + strings.ToLower(opts.PageSize[1:]),
		"--orientation", orientationFlag(opts.Orientation),
		"--margin-top", marginFlag(m.Top),
		"--margin-right", marginFlag(m.Right),
		"--margin-bottom", marginFlag(m.Bottom),
		"--margin-left", marginFlag(m.Left),
		"--enable-local-file-access",
		"--disable-javascript",
	}

	if !opts.AllowNetwork {
		// Route remote fetches through an unroutable proxy; local file
		// loads are unaffected.
		args = append(args, "--proxy", "http://127.0.0.1:9")
	}

	if opts.Title != "" {
		args = append(args, "--title", opts.Title)
	}

	var extras []string
	cleanup := func() {
		for _, p := range extras {
			_ = os.Remove(p)
		}
	}

	for _, part := range []struct {
		flag string
		html string
	}{
		{"--header-html", opts.HeaderHTML},
		{"--footer-html", opts.FooterHTML},
	} {
		if part.html == "" {
			continue
		}
		path, _, err := fileutil.WriteTempFile(e.tempDir, "report2pdf", part.html, "html")
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("%w: staging %s: %v", ErrRenderFailed, part.flag, err)
		}
		extras = append(extras, path)
		args = append(args, part.flag, path)
	}

	args = append(args, htmlPath, pdfPath)
	return args, cleanup, nil
}

// orientationFlag maps to the capitalized values wkhtmltopdf expects.
func orientationFlag(orientation string) string {
	if strings.EqualFold(orientation, OrientationLandscape) {
		return "Landscape"
	}
	return "Portrait"
}

// marginFlag formats an inch value as a wkhtmltopdf dimension.
func marginFlag(inches float64) string {
	return fmt.Sprintf("%.2fin", inches)
}
