package report2pdf

// Notes:
// - number/date helpers take explicit formats; output is locale-independent
// - markdown func renders GFM to inline HTML
// - sumField aggregates mixed numeric representations

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		places  int
		want    string
		wantErr bool
	}{
		{"float rounds half up", 1234.5, 2, "1234.50", false},
		{"int", 7, 0, "7", false},
		{"int64 with places", int64(42), 3, "42.000", false},
		{"numeric string", "19.995", 2, "20.00", false},
		{"negative", -3.14159, 2, "-3.14", false},
		{"non-numeric string", "widget", 2, "", true},
		{"nil", nil, 2, "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := formatDecimal(tt.value, tt.places)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("formatDecimal(%v) = %q, want error", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("formatDecimal(%v) error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("formatDecimal(%v, %d) = %q, want %q", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"grouping", 1234567.891, "1,234,567.89"},
		{"no grouping under a thousand", 999.9, "999.90"},
		{"exactly a thousand", 1000, "1,000.00"},
		{"negative", -1234.5, "-1,234.50"},
		{"zero", 0, "0.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := formatMoney(tt.value)
			if err != nil {
				t.Fatalf("formatMoney(%v) error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("formatMoney(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	got, err := formatPercent(0.1234, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "12.34%" {
		t.Fatalf("formatPercent(0.1234, 2) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	ref := time.Date(2021, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   any
		format  string
		want    string
		wantErr bool
	}{
		{"time value iso", ref, "YYYY-MM-DD", "2021-01-15", false},
		{"preset long", ref, "long", "January 15, 2021", false},
		{"string date", "2021-01-15", "DD/MM/YYYY", "15/01/2021", false},
		{"rfc3339 string", "2021-01-15T10:30:00Z", "YYYY-MM-DD", "2021-01-15", false},
		{"unparseable string", "last tuesday", "YYYY-MM-DD", "", true},
		{"wrong type", 42, "YYYY-MM-DD", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := formatDate(tt.value, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("formatDate(%v) = %q, want error", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("formatDate(%v) error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("formatDate(%v, %q) = %q, want %q", tt.value, tt.format, got, tt.want)
			}
		})
	}
}

func TestSumField(t *testing.T) {
	t.Parallel()

	items := []map[string]any{
		{"qty": 2, "amount": 10.5},
		{"qty": 3.0, "amount": "4.5"},
		{"qty": 1}, // amount absent, contributes zero
	}

	if got := sumField(items, "amount"); got != "15" {
		t.Errorf("sumField(amount) = %q, want %q", got, "15")
	}
	if got := sumField(items, "qty"); got != "6" {
		t.Errorf("sumField(qty) = %q, want %q", got, "6")
	}
	if got := sumField(nil, "qty"); got != "0" {
		t.Errorf("sumField(nil) = %q, want %q", got, "0")
	}
}

func TestDefaultValue(t *testing.T) {
	t.Parallel()

	if got := defaultValue("fallback", nil); got != "fallback" {
		t.Errorf("defaultValue(nil) = %v", got)
	}
	if got := defaultValue("fallback", ""); got != "fallback" {
		t.Errorf("defaultValue(empty) = %v", got)
	}
	if got := defaultValue("fallback", "value"); got != "value" {
		t.Errorf("defaultValue(value) = %v", got)
	}
	if got := defaultValue("fallback", 0); got != 0 {
		t.Errorf("defaultValue(0) = %v, zero is a value not an absence", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	got, err := renderMarkdown("**bold** and a [link](https://example.com)")
	if err != nil {
		t.Fatal(err)
	}
	html := string(got)
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("markdown bold not rendered: %s", html)
	}
	if !strings.Contains(html, `href="https://example.com"`) {
		t.Errorf("markdown link not rendered: %s", html)
	}
}

func TestRenderMarkdown_RawHTMLNotPassedThrough(t *testing.T) {
	t.Parallel()

	got, err := renderMarkdown(`<script>alert(1)</script>`)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "<script>") {
		t.Errorf("raw HTML passed through: %s", got)
	}
}
