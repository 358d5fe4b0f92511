package report2pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	record := invoiceRecord()
	provider := &StaticProvider{Record: record}

	got, err := provider.Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error: %v", err)
	}
	if got != record {
		t.Error("Provide() did not return the wrapped record")
	}
}

func TestStaticProvider_NilRecord(t *testing.T) {
	t.Parallel()

	provider := &StaticProvider{}
	if _, err := provider.Provide(context.Background()); !errors.Is(err, ErrNilRecord) {
		t.Fatalf("Provide() error = %v, want ErrNilRecord", err)
	}
}

func TestYAMLRecordProvider(t *testing.T) {
	t.Parallel()

	const content = `fields:
  name: Acme Corp
  total: 1234.5
  customer:
    email: billing@acme.test
items:
  - desc: Widget
    qty: 2
  - desc: Gadget
    qty: 1
defaults:
  notes: ""
formats:
  total: {places: 2}
  issued: {date: "DD/MM/YYYY"}
`
	path := filepath.Join(t.TempDir(), "record.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	provider := &YAMLRecordProvider{Path: path}
	record, err := provider.Provide(context.Background())
	if err != nil {
		t.Fatalf("Provide() error: %v", err)
	}

	if v, ok := record.Field("name"); !ok || v != "Acme Corp" {
		t.Errorf("Field(name) = %v, %v", v, ok)
	}
	if v, ok := record.Field("customer.email"); !ok || v != "billing@acme.test" {
		t.Errorf("Field(customer.email) = %v, %v", v, ok)
	}
	if v, ok := record.Field("notes"); !ok || v != "" {
		t.Errorf("Field(notes) = %v, %v; want default", v, ok)
	}
	if len(record.Items()) != 2 {
		t.Errorf("Items() count = %d, want 2", len(record.Items()))
	}
	if f, ok := record.Format("total"); !ok || f.Places != 2 {
		t.Errorf("Format(total) = %+v, %v", f, ok)
	}
	if f, ok := record.Format("issued"); !ok || f.DateLayout != "DD/MM/YYYY" {
		t.Errorf("Format(issued) = %+v, %v", f, ok)
	}
}

func TestYAMLRecordProvider_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "invalid yaml",
			content: "fields: [unclosed",
			wantErr: ErrRecordParse,
		},
		{
			name:    "unknown key rejected",
			content: "fields:\n  name: Acme\nfeilds:\n  typo: true\n",
			wantErr: ErrRecordParse,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "record.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			provider := &YAMLRecordProvider{Path: path}
			if _, err := provider.Provide(context.Background()); !errors.Is(err, tt.wantErr) {
				t.Errorf("Provide() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestYAMLRecordProvider_MissingFile(t *testing.T) {
	t.Parallel()

	provider := &YAMLRecordProvider{Path: filepath.Join(t.TempDir(), "absent.yaml")}
	if _, err := provider.Provide(context.Background()); err == nil {
		t.Fatal("Provide() succeeded for a missing file")
	}
}
