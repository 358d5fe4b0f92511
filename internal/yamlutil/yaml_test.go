package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	var s sample
	if err := Unmarshal([]byte("name: widget\ncount: 3\n"), &s); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if s.Name != "widget" || s.Count != 3 {
		t.Errorf("got %+v", s)
	}
}

func TestUnmarshal_UnknownKeysTolerated(t *testing.T) {
	t.Parallel()

	var s sample
	if err := Unmarshal([]byte("name: widget\nextra: ignored\n"), &s); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if s.Name != "widget" {
		t.Errorf("Name = %q", s.Name)
	}
}

func TestUnmarshalStrict_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("name: widget\nextra: rejected\n"), &s); err == nil {
		t.Fatal("UnmarshalStrict() accepted an unknown key")
	}
}

func TestUnmarshal_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{name: "nil data", data: nil, dest: &sample{}, wantErr: ErrNilData},
		{name: "empty data", data: []byte{}, dest: &sample{}, wantErr: ErrNilData},
		{name: "nil destination", data: []byte("name: x"), dest: nil, wantErr: ErrNilDestination},
		{
			name:    "oversized input",
			data:    []byte("name: " + strings.Repeat("x", MaxInputSize)),
			dest:    &sample{},
			wantErr: ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := Unmarshal(tt.data, tt.dest); !errors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnmarshal_MalformedYAML(t *testing.T) {
	t.Parallel()

	var s sample
	if err := Unmarshal([]byte("name: [unclosed"), &s); err == nil {
		t.Fatal("Unmarshal() accepted malformed input")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	in := sample{Name: "widget", Count: 3}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var out sample
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
