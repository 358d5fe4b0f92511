package report2pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/jfeld/go-report2pdf/internal/yamlutil"
)

// DataProvider supplies the input record for one report run. Providers are
// external collaborators: a fixture, a file, or an API client.
type DataProvider interface {
	Provide(ctx context.Context) (*ReportRecord, error)
}

var (
	_ DataProvider = (*StaticProvider)(nil)
	_ DataProvider = (*YAMLRecordProvider)(nil)
	_ DataProvider = (*CSVProvider)(nil)
)

// StaticProvider wraps a fixed record, for fixtures and tests.
type StaticProvider struct {
	Record *ReportRecord
}

// Provide returns the wrapped record.
func (p *StaticProvider) Provide(_ context.Context) (*ReportRecord, error) {
	if p.Record == nil {
		return nil, ErrNilRecord
	}
	return p.Record, nil
}

// recordFile is the YAML shape of an on-disk record.
type recordFile struct {
	Fields   map[string]any          `yaml:"fields"`
	Items    []map[string]any        `yaml:"items"`
	Defaults map[string]any          `yaml:"defaults"`
	Formats  map[string]recordFormat `yaml:"formats"`
}

type recordFormat struct {
	Date   string `yaml:"date"`
	Places int    `yaml:"places"`
}

// YAMLRecordProvider loads a record from a YAML file:
//
//	fields:
//	  name: Acme Corp
//	  total: 1234.5
//	items:
//	  - desc: Widget
//	    qty: 2
//	defaults:
//	  notes: ""
//	formats:
//	  total: {places: 2}
//
// Unknown keys are rejected so typos never silently drop data.
type YAMLRecordProvider struct {
	Path string
}

// Provide reads and parses the record file.
func (p *YAMLRecordProvider) Provide(_ context.Context) (*ReportRecord, error) {
	data, err := os.ReadFile(p.Path) // #nosec G304 -- record path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("reading record file %s: %w", p.Path, err)
	}

	var rf recordFile
	if err := yamlutil.UnmarshalStrict(data, &rf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordParse, p.Path, err)
	}

	record := NewRecord(rf.Fields).WithItems(rf.Items)
	for path, v := range rf.Defaults {
		record.WithDefault(path, v)
	}
	for path, f := range rf.Formats {
		record.WithFormat(path, FieldFormat{DateLayout: f.Date, Places: f.Places})
	}
	return record, nil
}
