package report2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeA5     = "a5"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.0
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// defaultRenderTimeout bounds a single engine invocation when RenderOptions
// does not specify one.
const defaultRenderTimeout = 30 * time.Second

// pageDimensions maps page sizes to width and height in inches (portrait).
var pageDimensions = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeA5:     {5.83, 8.27},
	PageSizeLegal:  {8.5, 14},
}

// Margins holds per-side page margins in inches.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns uniform half-inch margins.
func DefaultMargins() *Margins {
	return &Margins{Top: DefaultMargin, Right: DefaultMargin, Bottom: DefaultMargin, Left: DefaultMargin}
}

// Validate checks each side against the allowed bounds.
// Returns nil if m is nil (nil means use defaults).
func (m *Margins) Validate() error {
	if m == nil {
		return nil
	}
	for _, v := range []float64{m.Top, m.Right, m.Bottom, m.Left} {
		if v < MinMargin || v > MaxMargin {
			return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, v, MinMargin, MaxMargin)
		}
	}
	return nil
}

// RenderOptions configures a single engine invocation.
// The zero value is not valid; use DefaultRenderOptions or fill every field
// that matters for the run. Options are validated before rendering starts.
type RenderOptions struct {
	PageSize    string        // "letter", "a4", "a5", "legal"
	Orientation string        // "portrait", "landscape"
	Margins     *Margins      // inches, nil = defaults
	Title       string        // PDF document title metadata (optional)
	HeaderHTML  string        // repeated page header markup (optional)
	FooterHTML  string        // repeated page footer markup (optional)

	// AllowNetwork permits the engine to fetch external resources (images,
	// stylesheets) over the network. Local file references resolved against
	// the template directory are always permitted.
	AllowNetwork bool

	// Timeout bounds the engine invocation. Zero means the default.
	// On expiry the engine is forcibly terminated, never left running.
	Timeout time.Duration
}

// DefaultRenderOptions returns portrait US Letter with default margins,
// network loading disabled, and the default timeout.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		PageSize:    PageSizeLetter,
		Orientation: OrientationPortrait,
		Margins:     DefaultMargins(),
		Timeout:     defaultRenderTimeout,
	}
}

// Validate checks that the options are usable.
// Returns nil if o is nil (nil means use defaults).
// Does not mutate; comparisons are case-insensitive.
func (o *RenderOptions) Validate() error {
	if o == nil {
		return nil
	}
	if _, ok := pageDimensions[strings.ToLower(o.PageSize)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, o.PageSize)
	}
	switch strings.ToLower(o.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, o.Orientation)
	}
	return o.Margins.Validate()
}

// paperSize returns the page width and height in inches, accounting for
// orientation.
func (o *RenderOptions) paperSize() (width, height float64) {
	dims := pageDimensions[strings.ToLower(o.PageSize)]
	width, height = dims[0], dims[1]
	if strings.EqualFold(o.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// margins returns the configured margins or defaults.
func (o *RenderOptions) margins() *Margins {
	if o.Margins == nil {
		return DefaultMargins()
	}
	return o.Margins
}

// timeout returns the configured timeout or the default.
func (o *RenderOptions) timeout() time.Duration {
	if o.Timeout <= 0 {
		return defaultRenderTimeout
	}
	return o.Timeout
}

// withDefaults returns o, or DefaultRenderOptions when o is nil.
func (o *RenderOptions) withDefaults() *RenderOptions {
	if o == nil {
		return DefaultRenderOptions()
	}
	return o
}
