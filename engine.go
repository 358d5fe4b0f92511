package report2pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"
)

// Engine paginates resolved markup into a binary document. Implementations
// wrap an external rendering tool; the narrow contract lets the concrete
// engine be swapped without touching the Binder or the writer.
type Engine interface {
	// Render converts the markup into PDF bytes. It must respect the
	// context and the options' timeout, terminate the underlying tool on
	// expiry, and clean up any temporary files on every exit path.
	Render(ctx context.Context, markup *ResolvedMarkup, opts *RenderOptions) (*RenderedArtifact, error)

	// Close releases engine resources (browser instances, etc.).
	Close() error
}

// RenderedArtifact is the paginated binary output of one render.
type RenderedArtifact struct {
	PDF      []byte        // raw document bytes
	Pages    int           // estimated page count
	Duration time.Duration // how long the engine took
}

// pdfSignature is the magic prefix every valid PDF starts with.
var pdfSignature = []byte("%PDF-")

// newArtifact validates engine output and wraps it. Empty output or a
// missing file signature is an engine failure, never passed through.
func newArtifact(data []byte, duration time.Duration) (*RenderedArtifact, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: engine produced empty output", ErrRenderFailed)
	}
	if !bytes.HasPrefix(data, pdfSignature) {
		return nil, fmt.Errorf("%w: output does not carry a PDF signature", ErrRenderFailed)
	}
	return &RenderedArtifact{
		PDF:      data,
		Pages:    estimatePageCount(data),
		Duration: duration,
	}, nil
}

// estimatePageCount counts page objects in the PDF. Each page carries one
// "/Type /Page" entry; the parent "/Type /Pages" objects are subtracted.
func estimatePageCount(data []byte) int {
	count := bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
	if count < 1 {
		return 1
	}
	return count
}
