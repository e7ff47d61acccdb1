package report

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies a report output format.
type Format string

// Supported report formats.
const (
	FormatText     Format = Format("text")
	FormatJSON     Format = Format("json")
	FormatYAML     Format = Format("yaml")
	FormatMarkdown Format = Format("markdown")
)

const unsupportedFormatErrorTemplateConstant = "%w: %q (supported: %s)"

// ErrUnsupportedFormat indicates that a format name is not recognised.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// SupportedFormats lists the recognised format names.
func SupportedFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatMarkdown)}
}

// ParseFormat resolves a case-insensitive format name. An empty name selects FormatText.
func ParseFormat(value string) (Format, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	switch Format(normalizedValue) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf(unsupportedFormatErrorTemplateConstant, ErrUnsupportedFormat, value, strings.Join(SupportedFormats(), ", "))
	}
}
