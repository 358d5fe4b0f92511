package report2pdf

import "errors"

// Sentinel errors for pipeline operations.
var (
	// Binding-stage errors. Both are terminal for the run; malformed input
	// cannot self-correct, so binding is never retried.
	ErrMissingField   = errors.New("template references a field absent from the record")
	ErrTemplateSyntax = errors.New("template is malformed")
	ErrEmptyTemplate  = errors.New("template content cannot be empty")
	ErrNilRecord      = errors.New("report record cannot be nil")

	// Rendering-stage errors. The engine is assumed deterministic for
	// identical input; retry is caller policy, never pipeline policy.
	ErrEngineUnavailable = errors.New("rendering engine cannot be located or started")
	ErrRenderTimeout     = errors.New("rendering exceeded the configured timeout")
	ErrRenderFailed      = errors.New("rendering engine failed")

	// Write-stage errors.
	ErrDestinationUnwritable = errors.New("destination path is not writable")

	// Render options validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Data provider errors.
	ErrRequiredColumn = errors.New("required column is missing or empty")
	ErrRecordParse    = errors.New("failed to parse record file")
)
