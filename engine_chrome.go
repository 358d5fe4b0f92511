package report2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/jfeld/go-report2pdf/internal/fileutil"
)

var _ Engine = (*ChromeEngine)(nil)

// ChromeEngine paginates markup with headless Chrome via go-rod.
// Rod downloads a managed Chromium on first use when none is installed.
// The browser is launched lazily on the first render and reused until Close.
type ChromeEngine struct {
	tempDir string
	logger  *zap.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewChromeEngine creates a ChromeEngine. tempDir is where per-run markup
// files are staged ("" = system temp dir). A nil logger disables logging.
func NewChromeEngine(tempDir string, logger *zap.Logger) *ChromeEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeEngine{tempDir: tempDir, logger: logger}
}

// ensureBrowser lazily launches and connects to the browser.
func (e *ChromeEngine) ensureBrowser() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		return e.browser, nil
	}

	l := launcher.New()

	// Use a pre-installed browser when specified (containers, CI).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	e.browser = browser
	return browser, nil
}

// Close shuts down the browser.
func (e *ChromeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	e.browser = nil
	return err
}

// Render stages the markup in an isolated temp file, loads it over file://,
// and prints it to PDF with the configured page geometry.
func (e *ChromeEngine) Render(ctx context.Context, markup *ResolvedMarkup, opts *RenderOptions) (*RenderedArtifact, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, opts.timeout())
	defer cancel()

	tmpPath, cleanup, err := fileutil.WriteTempFile(e.tempDir, "report2pdf", markup.HTML, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: staging markup: %v", ErrRenderFailed, err)
	}
	defer cleanup()

	browser, err := e.ensureBrowser()
	if err != nil {
		return nil, err
	}

	e.logger.Debug("rendering with chrome",
		zap.String("markup", tmpPath),
		zap.String("pageSize", opts.PageSize),
		zap.Bool("allowNetwork", opts.AllowNetwork))

	data, err := e.renderPage(ctx, browser, tmpPath, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", ErrRenderTimeout, opts.timeout())
		}
		return nil, err
	}

	artifact, err := newArtifact(data, time.Since(start))
	if err != nil {
		return nil, err
	}

	e.logger.Info("chrome render complete",
		zap.Int("bytes", len(artifact.PDF)),
		zap.Int("pages", artifact.Pages),
		zap.Duration("duration", artifact.Duration))

	return artifact, nil
}

// renderPage drives one page lifecycle: open, optionally block network
// fetches, wait for load, print.
func (e *ChromeEngine) renderPage(ctx context.Context, browser *rod.Browser, path string, opts *RenderOptions) ([]byte, error) {
	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: creating page: %v", ErrRenderFailed, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if !opts.AllowNetwork {
		router := page.HijackRequests()
		if err := router.Add("*", "", blockNetworkRequests); err != nil {
			return nil, fmt.Errorf("%w: installing network policy: %v", ErrRenderFailed, err)
		}
		go router.Run()
		defer func() { _ = router.Stop() }()
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: loading page: %v", ErrRenderFailed, err)
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: printing: %v", ErrRenderFailed, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRenderFailed, err)
	}
	return data, nil
}

// blockNetworkRequests fails remote fetches while letting file:// and data:
// loads continue.
func blockNetworkRequests(h *rod.Hijack) {
	switch h.Request.URL().Scheme {
	case "http", "https":
		h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
	default:
		h.ContinueRequest(&proto.FetchContinueRequest{})
	}
}

// buildPrintOptions maps RenderOptions onto Chrome's printToPDF parameters.
func buildPrintOptions(opts *RenderOptions) *proto.PagePrintToPDF {
	width, height := opts.paperSize()
	m := opts.margins()

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(m.Top),
		MarginBottom:    floatPtr(m.Bottom),
		MarginLeft:      floatPtr(m.Left),
		MarginRight:     floatPtr(m.Right),
		PrintBackground: true,
	}

	if opts.HeaderHTML != "" || opts.FooterHTML != "" {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = orEmptySpan(opts.HeaderHTML)
		pdfOpts.FooterTemplate = orEmptySpan(opts.FooterHTML)
	}

	return pdfOpts
}

// orEmptySpan substitutes Chrome's minimal no-op template for empty input.
func orEmptySpan(tmpl string) string {
	if tmpl == "" {
		return "<span></span>"
	}
	return tmpl
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
