// Package assets ships the built-in report templates and stylesheets.
// The template schema is a versioned artifact: pipelines reference templates
// by name, never by hard-coded markup.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed styles/*.css
var styles embed.FS

// Sentinel errors for asset loading.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// DefaultTemplateName is the built-in general report template.
const DefaultTemplateName = "report"

// Template returns a built-in template by name, without extension.
func Template(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// Style returns a built-in stylesheet by name, without extension.
func Style(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// validateName rejects names that could escape the embedded tree.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
