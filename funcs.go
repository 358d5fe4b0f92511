package report2pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jfeld/go-report2pdf/internal/dateutil"
)

// markdownRenderer converts markdown-valued fields to inline HTML.
// GFM gives tables and autolinks; chroma classes keep the output small and
// styleable from the template's stylesheet.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	),
)

// baseFuncs returns the template function map shared by every binding run.
// Date and number formatting always takes an explicit format argument so
// output never depends on process locale.
func baseFuncs() template.FuncMap {
	titleCaser := cases.Title(language.English)

	return template.FuncMap{
		// Number formatting.
		"decimal": formatDecimal,
		"money":   formatMoney,
		"percent": formatPercent,

		// Date formatting.
		"date": formatDate,

		// String utilities.
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": titleCaser.String,
		"trim":  strings.TrimSpace,
		"join":  strings.Join,

		// Aggregation over line items.
		"sumField": sumField,

		// Arithmetic on arbitrary numeric values.
		"add": func(a, b any) string { return toDecimal(a).Add(toDecimal(b)).String() },
		"sub": func(a, b any) string { return toDecimal(a).Sub(toDecimal(b)).String() },
		"mul": func(a, b any) string { return toDecimal(a).Mul(toDecimal(b)).String() },

		// Fallback for optional values.
		"default": defaultValue,

		// Markdown-valued free-text sections.
		"markdown": renderMarkdown,

		// Trusted markup escape hatches.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) }, // #nosec G203 -- template author opt-in
		"safeCSS":  func(s string) template.CSS { return template.CSS(s) },   // #nosec G203 -- template author opt-in
	}
}

// formatDecimal renders a numeric value with a fixed number of decimal
// places: 1234.5 with 2 places -> "1234.50".
func formatDecimal(v any, places int) (string, error) {
	d, err := toDecimalErr(v)
	if err != nil {
		return "", err
	}
	return d.StringFixed(int32(places)), nil
}

// formatMoney renders a numeric value with two fixed places and thousand
// separators: 1234.5 -> "1,234.50".
func formatMoney(v any) (string, error) {
	d, err := toDecimalErr(v)
	if err != nil {
		return "", err
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]

	var grouped strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteRune(',')
		}
		grouped.WriteRune(c)
	}
	return sign + grouped.String() + "." + parts[1], nil
}

// formatPercent renders a ratio as a percentage with the given places:
// 0.1234 with 2 places -> "12.34%".
func formatPercent(v any, places int) (string, error) {
	d, err := toDecimalErr(v)
	if err != nil {
		return "", err
	}
	return d.Mul(decimal.NewFromInt(100)).StringFixed(int32(places)) + "%", nil
}

// formatDate renders a date value with a friendly format string or preset
// ("YYYY-MM-DD", "long", ...). Accepts time.Time or an ISO-8601 string.
func formatDate(v any, format string) (string, error) {
	t, err := toTime(v)
	if err != nil {
		return "", err
	}
	return dateutil.Format(t, format)
}

// sumField totals a named column across line items, for template-side
// aggregate rows.
func sumField(items []map[string]any, field string) string {
	total := decimal.Zero
	for _, item := range items {
		if v, ok := item[field]; ok {
			total = total.Add(toDecimal(v))
		}
	}
	return total.String()
}

// defaultValue returns fallback when v is nil or an empty string.
func defaultValue(fallback, v any) any {
	if v == nil {
		return fallback
	}
	if s, ok := v.(string); ok && s == "" {
		return fallback
	}
	return v
}

// renderMarkdown converts a markdown string to inline HTML. The output is
// trusted markup produced by goldmark without raw-HTML passthrough.
func renderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown field: %w", err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- goldmark output, raw HTML disabled
}

// toDecimal converts common numeric representations, yielding zero for
// values it cannot interpret.
func toDecimal(v any) decimal.Decimal {
	d, err := toDecimalErr(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// toDecimalErr converts common numeric representations to a decimal.
func toDecimalErr(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint64:
		return decimal.NewFromUint64(n), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing %q as number: %w", n, err)
		}
		return d, nil
	case nil:
		return decimal.Zero, fmt.Errorf("nil is not a number")
	default:
		return decimal.Zero, fmt.Errorf("cannot format %T as number", v)
	}
}

// dateParseLayouts are tried in order when a date field arrives as a string.
var dateParseLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// toTime converts a date value to time.Time.
func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, fmt.Errorf("nil time")
		}
		return *t, nil
	case string:
		for _, layout := range dateParseLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as date", t)
	default:
		return time.Time{}, fmt.Errorf("cannot format %T as date", v)
	}
}
