package report2pdf

// Notes:
// - Field: dotted path lookup descends nested maps
// - defaults fill absent paths, never shadow present fields
// - bindingData: items always present, top-level defaults merged under fields

import (
	"testing"
)

func TestRecord_Field(t *testing.T) {
	t.Parallel()

	record := NewRecord(map[string]any{
		"name": "Acme Corp",
		"customer": map[string]any{
			"name": "Jane",
			"address": map[string]any{
				"city": "Lisbon",
			},
		},
	}).WithDefault("name", "shadowed").WithDefault("currency", "EUR")

	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{"top-level field", "name", "Acme Corp", true},
		{"nested field", "customer.name", "Jane", true},
		{"deeply nested field", "customer.address.city", "Lisbon", true},
		{"default fills absent path", "currency", "EUR", true},
		{"present field wins over default", "name", "Acme Corp", true},
		{"absent path", "customer.phone", nil, false},
		{"path through scalar", "name.first", nil, false},
		{"absent root", "missing", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := record.Field(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Field(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("Field(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRecord_Format(t *testing.T) {
	t.Parallel()

	record := NewRecord(nil).
		WithFormat("total", FieldFormat{Places: 2}).
		WithFormat("date", FieldFormat{DateLayout: "YYYY-MM-DD"})

	if f, ok := record.Format("total"); !ok || f.Places != 2 {
		t.Errorf("Format(total) = %+v, %v", f, ok)
	}
	if f, ok := record.Format("date"); !ok || f.DateLayout != "YYYY-MM-DD" {
		t.Errorf("Format(date) = %+v, %v", f, ok)
	}
	if _, ok := record.Format("missing"); ok {
		t.Error("Format(missing) reported a declared format")
	}
}

func TestRecord_BindingData(t *testing.T) {
	t.Parallel()

	items := []map[string]any{{"desc": "Widget"}}
	record := NewRecord(map[string]any{"name": "Acme"}).
		WithItems(items).
		WithDefault("currency", "EUR").
		WithDefault("customer.phone", "n/a") // nested default stays out of the data tree

	data := record.bindingData()

	if data["name"] != "Acme" {
		t.Errorf("name = %v", data["name"])
	}
	if data["currency"] != "EUR" {
		t.Errorf("top-level default not merged: %v", data["currency"])
	}
	if _, ok := data["customer.phone"]; ok {
		t.Error("nested default leaked into binding data")
	}
	boundItems, ok := data["items"].([]map[string]any)
	if !ok || len(boundItems) != 1 {
		t.Fatalf("items = %v", data["items"])
	}
}

func TestRecord_BindingData_ItemsNameReserved(t *testing.T) {
	t.Parallel()

	// "items" is reserved: the line items always win over a field by
	// that name so templates can range unconditionally.
	record := NewRecord(map[string]any{"items": "a scalar"}).
		WithItems([]map[string]any{{"desc": "Widget"}})

	data := record.bindingData()
	boundItems, ok := data["items"].([]map[string]any)
	if !ok {
		t.Fatalf("items = %T, want line items slice", data["items"])
	}
	if len(boundItems) != 1 || boundItems[0]["desc"] != "Widget" {
		t.Errorf("items = %v", boundItems)
	}
}

func TestNewRecord_NilFields(t *testing.T) {
	t.Parallel()

	record := NewRecord(nil)
	if _, ok := record.Field("anything"); ok {
		t.Error("empty record resolved a field")
	}
	if data := record.bindingData(); data["items"] == nil {
		// items key must exist even when empty so templates can range over it
		if _, present := data["items"]; !present {
			t.Error("items key absent from binding data")
		}
	}
}
