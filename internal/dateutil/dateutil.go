// Package dateutil converts friendly date format strings to Go time layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length to prevent abuse.
const MaxFormatLength = 50

// DefaultFormat is the ISO date layout used when no format is declared.
const DefaultFormat = "YYYY-MM-DD"

// tokens maps friendly tokens to Go time format components, ordered by
// length descending for greedy matching.
var tokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"hh", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// Presets provides named shortcuts for common date formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseFormat converts a friendly format string to Go's time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, hh, mm, ss.
// Bracketed text is copied literally: "[Date:] YYYY" keeps "Date:".
// Preset names ("iso", "us", ...) are expanded first.
func ParseFormat(format string) (string, error) {
	if preset, ok := Presets[format]; ok {
		format = preset
	}
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// Format renders t with a friendly format string.
func Format(t time.Time, format string) (string, error) {
	layout, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
