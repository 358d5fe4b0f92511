package report2pdf

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"maps"
	"os"
	"path/filepath"
	"strings"
)

// TemplateSource is a markup template plus the directory its relative asset
// references resolve against.
type TemplateSource struct {
	Name    string // template name, used in error messages
	Content string // template markup with placeholder syntax
	Dir     string // base directory for relative asset paths ("" = none)
}

// LoadTemplateSource reads a template file from disk. The template's own
// directory becomes the base for relative asset resolution.
func LoadTemplateSource(path string) (TemplateSource, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- template path is caller-provided
	if err != nil {
		return TemplateSource{}, fmt.Errorf("reading template %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return TemplateSource{}, fmt.Errorf("resolving template path: %w", err)
	}
	return TemplateSource{
		Name:    filepath.Base(path),
		Content: string(content),
		Dir:     filepath.Dir(abs),
	}, nil
}

// ResolvedMarkup is a fully substituted markup document ready for rendering:
// no template syntax remains and relative asset references have been
// resolved against SourceDir.
type ResolvedMarkup struct {
	HTML      string
	SourceDir string
}

// Binder merges report records into markup templates. Binding is a pure
// function over its inputs: identical (template, record) pairs produce
// byte-identical markup, and binding is all-or-nothing.
type Binder struct {
	funcs template.FuncMap
}

// NewBinder creates a Binder with the standard formatting functions.
// Extra functions may be supplied; they override standard ones on name
// collision.
func NewBinder(extra template.FuncMap) *Binder {
	funcs := baseFuncs()
	maps.Copy(funcs, extra)
	return &Binder{funcs: funcs}
}

// Bind merges the record into the template. Every placeholder must resolve
// to a record field or a registered default; an absent field is
// ErrMissingField and a malformed template is ErrTemplateSyntax. No partial
// document is ever returned.
func (b *Binder) Bind(src TemplateSource, record *ReportRecord) (*ResolvedMarkup, error) {
	if strings.TrimSpace(src.Content) == "" {
		return nil, ErrEmptyTemplate
	}
	if record == nil {
		return nil, ErrNilRecord
	}

	funcs := make(template.FuncMap, len(b.funcs)+2)
	maps.Copy(funcs, b.funcs)
	maps.Copy(funcs, recordFuncs(record))

	tmpl, err := template.New(src.Name).Funcs(funcs).Option("missingkey=error").Parse(src.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateSyntax, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, record.bindingData()); err != nil {
		if errors.Is(err, ErrMissingField) || isMissingKeyError(err) {
			return nil, fmt.Errorf("%w: %v", ErrMissingField, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTemplateSyntax, err)
	}

	rewritten, err := rewriteRelativePaths(buf.String(), src.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving asset paths: %w", err)
	}

	return &ResolvedMarkup{HTML: rewritten, SourceDir: src.Dir}, nil
}

// recordFuncs returns functions bound to the record being rendered.
func recordFuncs(record *ReportRecord) template.FuncMap {
	return template.FuncMap{
		// field resolves a dotted path and renders it with the format
		// declared on the record, keeping formatting detail out of the
		// template: {{field "invoice.total"}}.
		"field": func(path string) (string, error) {
			v, ok := record.Field(path)
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrMissingField, path)
			}
			return renderDeclared(v, record, path)
		},
		// has reports whether a dotted path resolves, for optional sections.
		"has": func(path string) bool {
			_, ok := record.Field(path)
			return ok
		},
	}
}

// renderDeclared applies the record's declared format for path, falling back
// to plain fmt rendering when none is declared.
func renderDeclared(v any, record *ReportRecord, path string) (string, error) {
	format, ok := record.Format(path)
	if !ok {
		return fmt.Sprintf("%v", v), nil
	}
	if format.DateLayout != "" {
		return formatDate(v, format.DateLayout)
	}
	return formatDecimal(v, format.Places)
}

// isMissingKeyError distinguishes missing-field execution failures from
// other template errors. html/template reports missingkey=error violations
// with this exact phrase.
func isMissingKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "map has no entry for key")
}
