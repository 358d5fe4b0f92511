package report2pdf_test

import (
	"fmt"
	"strings"

	report2pdf "github.com/jfeld/go-report2pdf"
)

// Example demonstrates binding a record into a template. Rendering the
// bound markup to PDF additionally needs an engine (Chrome or wkhtmltopdf).
func Example() {
	record := report2pdf.NewRecord(map[string]any{
		"name":  "Acme Corp",
		"total": 1234.5,
	}).WithItems([]map[string]any{
		{"desc": "Widget", "qty": 2},
	})

	src := report2pdf.TemplateSource{
		Name:    "invoice",
		Content: `<h1>{{.name}}</h1><p>{{decimal .total 2}}</p>`,
	}

	markup, err := report2pdf.NewBinder(nil).Bind(src, record)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(markup.HTML)
	// Output: <h1>Acme Corp</h1><p>1234.50</p>
}

// Example_declaredFormats demonstrates per-field formats declared on the
// record, applied through the field template function.
func Example_declaredFormats() {
	record := report2pdf.NewRecord(map[string]any{
		"total":  1234.5,
		"issued": "2021-01-15",
	}).
		WithFormat("total", report2pdf.FieldFormat{Places: 2}).
		WithFormat("issued", report2pdf.FieldFormat{DateLayout: "european"})

	src := report2pdf.TemplateSource{
		Name:    "receipt",
		Content: `{{field "issued"}}: {{field "total"}}`,
	}

	markup, err := report2pdf.NewBinder(nil).Bind(src, record)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(markup.HTML)
	// Output: 15/01/2021: 1234.50
}

// Example_missingField demonstrates the all-or-nothing binding contract:
// a template referencing an absent field with no default never produces
// partial output.
func Example_missingField() {
	record := report2pdf.NewRecord(map[string]any{})

	src := report2pdf.TemplateSource{
		Name:    "invoice",
		Content: `<h1>{{.name}}</h1>`,
	}

	_, err := report2pdf.NewBinder(nil).Bind(src, record)
	if strings.Contains(err.Error(), "absent from the record") {
		fmt.Println("binding rejected")
	}
	// Output: binding rejected
}
