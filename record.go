package report2pdf

import (
	"strings"
)

// FieldFormat declares how a field must be rendered. Formatting is always
// explicit so that identical inputs produce byte-identical markup regardless
// of process locale.
type FieldFormat struct {
	// DateLayout uses the friendly tokens understood by the date template
	// function, e.g. "YYYY-MM-DD" or "MMMM D, YYYY".
	DateLayout string
	// Places is the number of decimal places for numeric fields.
	Places int
}

// ReportRecord is the structured input for one report run: a mapping of
// field names to scalar or nested values, plus an ordered sequence of line
// items for tabular sections. It is constructed once by a DataProvider and
// read-only thereafter.
type ReportRecord struct {
	fields   map[string]any
	items    []map[string]any
	defaults map[string]any
	formats  map[string]FieldFormat
}

// NewRecord creates a record from top-level fields. The map is used as-is;
// callers must not mutate it after construction. The field name "items" is
// reserved for the line items set by WithItems and is shadowed during
// binding.
func NewRecord(fields map[string]any) *ReportRecord {
	if fields == nil {
		fields = map[string]any{}
	}
	return &ReportRecord{
		fields:   fields,
		defaults: map[string]any{},
		formats:  map[string]FieldFormat{},
	}
}

// WithItems sets the ordered line items used by repeating template sections.
// Templates see them under the reserved name "items", shadowing any
// top-level field of that name. Returns the record for chaining during
// construction.
func (r *ReportRecord) WithItems(items []map[string]any) *ReportRecord {
	r.items = items
	return r
}

// WithDefault registers a fallback value for a dotted field path. A template
// reference to an absent field resolves to its default; absent fields with
// no default are a hard binding error.
func (r *ReportRecord) WithDefault(path string, value any) *ReportRecord {
	r.defaults[path] = value
	return r
}

// WithFormat declares the rendering format for a dotted field path, consumed
// by the "field" template function.
func (r *ReportRecord) WithFormat(path string, f FieldFormat) *ReportRecord {
	r.formats[path] = f
	return r
}

// Field resolves a dotted path ("customer.name") against the record,
// descending into nested maps. Falls back to a registered default when the
// path is absent.
func (r *ReportRecord) Field(path string) (any, bool) {
	if v, ok := lookupPath(r.fields, path); ok {
		return v, true
	}
	if v, ok := r.defaults[path]; ok {
		return v, true
	}
	return nil, false
}

// Format returns the declared format for a dotted path, if any.
func (r *ReportRecord) Format(path string) (FieldFormat, bool) {
	f, ok := r.formats[path]
	return f, ok
}

// Items returns the record's ordered line items. Callers must not mutate the
// returned slice.
func (r *ReportRecord) Items() []map[string]any {
	return r.items
}

// lookupPath descends into nested map[string]any values segment by segment.
func lookupPath(fields map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = fields
	for _, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// bindingData builds the data tree handed to html/template: top-level fields
// merged over defaults, with line items under the reserved "items" key (set
// last, so a field named "items" never leaks into templates). Defaults only
// fill top-level gaps; nested defaults are resolved through the "field"
// function.
func (r *ReportRecord) bindingData() map[string]any {
	data := make(map[string]any, len(r.fields)+len(r.defaults)+1)
	for path, v := range r.defaults {
		if !strings.Contains(path, ".") {
			data[path] = v
		}
	}
	for k, v := range r.fields {
		data[k] = v
	}
	data["items"] = r.items
	return data
}
