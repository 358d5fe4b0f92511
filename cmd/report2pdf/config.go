package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jfeld/go-report2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds all configuration for a report run. It is passed explicitly
// into the run; there is no ambient process-wide state, so concurrent runs
// with different configs cannot interfere.
type Config struct {
	Data     DataConfig   `yaml:"data"`
	Template string       `yaml:"template"` // template path; empty = built-in report template
	Output   string       `yaml:"output"`   // destination PDF path
	Engine   EngineConfig `yaml:"engine"`
	Page     PageConfig   `yaml:"page"`
}

// DataConfig selects and configures the data provider.
type DataConfig struct {
	// Record is a YAML record file path.
	Record string `yaml:"record"`

	// CSV configures the tabular provider; ignored when Record is set.
	CSV CSVConfig `yaml:"csv"`
}

// CSVConfig mirrors report2pdf.CSVProvider.
type CSVConfig struct {
	Path      string            `yaml:"path"`
	Fields    map[string]any    `yaml:"fields"`
	Required  []string          `yaml:"required"`
	Defaults  map[string]string `yaml:"defaults"`
	DateCol   string            `yaml:"dateColumn"`
	DateStart string            `yaml:"dateStart"`
	DateEnd   string            `yaml:"dateEnd"`
	TagCol    string            `yaml:"tagColumn"`
	Tags      []string          `yaml:"tags"`
}

// EngineConfig selects the rendering engine.
type EngineConfig struct {
	// Kind is "chrome" (default) or "wkhtmltopdf".
	Kind string `yaml:"kind"`
	// BinaryPath locates the wkhtmltopdf binary when Kind is "wkhtmltopdf".
	BinaryPath string `yaml:"binaryPath"`
	// TempDir stages per-run temp files ("" = system temp dir).
	TempDir string `yaml:"tempDir"`
	// Timeout bounds one engine invocation, e.g. "45s".
	Timeout time.Duration `yaml:"timeout"`
}

// PageConfig mirrors report2pdf.RenderOptions page geometry.
type PageConfig struct {
	Size         string  `yaml:"size"`
	Orientation  string  `yaml:"orientation"`
	Margin       float64 `yaml:"margin"` // inches, all sides; 0 = default
	Title        string  `yaml:"title"`
	HeaderHTML   string  `yaml:"headerHtml"`
	FooterHTML   string  `yaml:"footerHtml"`
	AllowNetwork bool    `yaml:"allowNetwork"`
}

// DefaultConfig returns a neutral configuration: built-in template, Chrome
// engine, portrait letter pages.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{Kind: "chrome"},
		Page:   PageConfig{Size: "letter", Orientation: "portrait"},
	}
}

// LoadConfig reads and strictly parses a YAML config file over the
// defaults. A missing file is an error, never a silent fallback.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}
