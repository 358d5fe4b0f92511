package report2pdf

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// csvDateLayout is the layout for CSV date cells and range bounds.
const csvDateLayout = "2006-01-02"

// CSVProvider builds a record whose line items come from a CSV file: one
// item per row, keyed by the header. Top-level fields come from Fields.
//
// Cleaning happens in a fixed order: per-column defaults fill empty cells,
// then required columns are checked (an empty required cell is a hard
// error), then the optional row filters run.
type CSVProvider struct {
	// Path of the CSV file. The first row is the header.
	Path string

	// Fields become the record's top-level fields.
	Fields map[string]any

	// Required columns must exist in the header and be non-empty in every
	// row after defaults are applied.
	Required []string

	// Defaults fill empty cells by column name before the required check.
	Defaults map[string]string

	// DateColumn, DateStart and DateEnd keep only rows whose date cell
	// falls inside the inclusive range. All three must be set to filter;
	// bounds use the 2006-01-02 layout.
	DateColumn string
	DateStart  string
	DateEnd    string

	// TagColumn and Tags keep only rows whose cell contains at least one
	// of the tags.
	TagColumn string
	Tags      []string
}

// Provide reads, cleans, and filters the CSV into a ReportRecord.
func (p *CSVProvider) Provide(ctx context.Context) (*ReportRecord, error) {
	f, err := os.Open(p.Path) // #nosec G304 -- data path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("opening data file %s: %w", p.Path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordParse, p.Path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: no header row", ErrRecordParse, p.Path)
	}

	header := rows[0]
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range p.Required {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %q not in header", ErrRequiredColumn, required)
		}
	}

	dateRange, err := p.parseDateRange()
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	for rowNum, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item, err := p.buildItem(header, columns, row, rowNum+2)
		if err != nil {
			return nil, err
		}

		keep, err := p.keepRow(item, dateRange)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		if keep {
			items = append(items, item)
		}
	}

	return NewRecord(p.Fields).WithItems(items), nil
}

// buildItem converts one row into an item map, applying defaults and
// enforcing required columns. Numeric-looking cells become numbers so
// templates can aggregate them.
func (p *CSVProvider) buildItem(header []string, columns map[string]int, row []string, rowNum int) (map[string]any, error) {
	item := make(map[string]any, len(header))

	for name, idx := range columns {
		var cell string
		if idx < len(row) {
			cell = strings.TrimSpace(row[idx])
		}
		if cell == "" {
			cell = p.Defaults[name]
		}
		item[name] = typedCell(cell)
	}

	for _, required := range p.Required {
		if s, isString := item[required].(string); isString && s == "" {
			return nil, fmt.Errorf("%w: %q is empty at row %d", ErrRequiredColumn, required, rowNum)
		}
	}

	return item, nil
}

// parseDateRange validates the configured date filter bounds.
func (p *CSVProvider) parseDateRange() (*[2]time.Time, error) {
	if p.DateColumn == "" || p.DateStart == "" || p.DateEnd == "" {
		return nil, nil
	}
	start, err := time.Parse(csvDateLayout, p.DateStart)
	if err != nil {
		return nil, fmt.Errorf("parsing date range start: %w", err)
	}
	end, err := time.Parse(csvDateLayout, p.DateEnd)
	if err != nil {
		return nil, fmt.Errorf("parsing date range end: %w", err)
	}
	return &[2]time.Time{start, end}, nil
}

// keepRow applies the configured date-range and tag filters.
func (p *CSVProvider) keepRow(item map[string]any, dateRange *[2]time.Time) (bool, error) {
	if dateRange != nil {
		cell := fmt.Sprintf("%v", item[p.DateColumn])
		t, err := toTime(cell)
		if err != nil {
			return false, err
		}
		if t.Before(dateRange[0]) || t.After(dateRange[1]) {
			return false, nil
		}
	}

	if p.TagColumn != "" && len(p.Tags) > 0 {
		cell, _ := item[p.TagColumn].(string)
		found := false
		for _, tag := range p.Tags {
			if strings.Contains(cell, tag) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	return true, nil
}

// typedCell parses numeric-looking cells into float64, leaving everything
// else as the raw string.
func typedCell(cell string) any {
	if cell == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return n
	}
	return cell
}
