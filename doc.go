// Package report2pdf renders structured report data into paginated PDF
// documents via an external rendering engine.
//
// # Quick Start
//
// Create a generator, generate a report, and close when done:
//
//	gen := report2pdf.NewGenerator()
//	defer gen.Close()
//
//	record := report2pdf.NewRecord(map[string]any{
//	    "name":  "Acme Corp",
//	    "total": 1234.5,
//	}).WithItems([]map[string]any{
//	    {"desc": "Widget", "qty": 2},
//	})
//
//	result, err := gen.Generate(ctx, record, "invoice.html", "invoice.pdf", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %s (%d bytes, %d pages)\n", result.Path, result.Bytes, result.Pages)
//
// # Pipeline
//
// One run is a strictly linear pipeline with one entity produced per stage:
//
//  1. A DataProvider supplies the ReportRecord (fixture, YAML file, or CSV).
//  2. The Binder merges the record into an HTML template (html/template with
//     explicit formatting functions), producing fully resolved markup.
//  3. An Engine paginates the markup into PDF bytes. Two engines ship by
//     default: headless Chrome via go-rod, and a wkhtmltopdf subprocess.
//  4. The artifact is written atomically to the destination path and its
//     size is verified.
//
// Any stage failure aborts the run and is reported as a *StageError carrying
// the stage identity and the underlying cause. A run either produces exactly
// one valid file at the destination or produces none.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen := report2pdf.NewGenerator(
//	    report2pdf.WithEngine(engine),
//	    report2pdf.WithTimeout(2 * time.Minute),
//	    report2pdf.WithLogger(logger),
//	)
//
// Per-run options are passed via RenderOptions (page size, orientation,
// margins, network resource policy, timeout).
//
// # Parallel Runs
//
// Independent runs may execute concurrently; each run uses its own isolated
// temporary files. For batch generation use GeneratorPool to bound the number
// of live browser instances:
//
//	pool := report2pdf.NewGeneratorPool(4)
//	defer pool.Close()
//
//	gen := pool.Acquire()
//	defer pool.Release(gen)
//
// # Browser Requirements
//
// The Chrome engine requires Chrome/Chromium; go-rod downloads a managed
// Chromium on first run. Set ROD_BROWSER_BIN to use a pre-installed binary
// and ROD_NO_SANDBOX=1 in containers. The wkhtmltopdf engine requires the
// wkhtmltopdf binary on PATH (or an explicit path).
package report2pdf
