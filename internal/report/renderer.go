package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/temirov/devhealth/internal/deps"
	"github.com/temirov/devhealth/internal/gitscan"
)

const (
	jsonIndentConstant                  = "  "
	yamlIndentConstant                  = 2
	encodeErrorTemplateConstant         = "unable to encode %s report: %w"
	systemMessageTemplateConstant       = "%s\n"
	noticeTemplateConstant              = "%s\n"
	unsupportedRendererTemplateConstant = "%w: %q"
)

// Renderer writes a health report to a destination.
type Renderer interface {
	Render(destination io.Writer, healthReport HealthReport) error
}

// RendererOptions tune renderer output.
type RendererOptions struct {
	ListedDependencyLimit int
}

// NewRenderer returns the renderer for format.
func NewRenderer(format Format, options RendererOptions) (Renderer, error) {
	switch format {
	case FormatText:
		return TextRenderer{ListedDependencyLimit: options.ListedDependencyLimit}, nil
	case FormatJSON:
		return JSONRenderer{}, nil
	case FormatYAML:
		return YAMLRenderer{}, nil
	case FormatMarkdown:
		return MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf(unsupportedRendererTemplateConstant, ErrUnsupportedFormat, format)
	}
}

// TextRenderer writes the sections present in a report with the terminal presenters.
type TextRenderer struct {
	ListedDependencyLimit int
}

// Render writes the git, dependency and system sections followed by the notice.
func (renderer TextRenderer) Render(destination io.Writer, healthReport HealthReport) error {
	if healthReport.Git != nil {
		if presentError := (gitscan.TextPresenter{}).Present(destination, *healthReport.Git); presentError != nil {
			return presentError
		}
	}
	if healthReport.Dependencies != nil {
		presenter := deps.TextPresenter{ListedDependencyLimit: renderer.ListedDependencyLimit}
		if presentError := presenter.Present(destination, *healthReport.Dependencies); presentError != nil {
			return presentError
		}
	}
	if healthReport.System != nil {
		if _, writeError := fmt.Fprintf(destination, systemMessageTemplateConstant, healthReport.System.Message); writeError != nil {
			return writeError
		}
	}
	if len(healthReport.Notice) > 0 {
		if _, writeError := fmt.Fprintf(destination, noticeTemplateConstant, healthReport.Notice); writeError != nil {
			return writeError
		}
	}
	return nil
}

// JSONRenderer writes reports as indented JSON.
type JSONRenderer struct{}

// Render encodes the report as JSON.
func (renderer JSONRenderer) Render(destination io.Writer, healthReport HealthReport) error {
	encoder := json.NewEncoder(destination)
	encoder.SetIndent("", jsonIndentConstant)
	if encodeError := encoder.Encode(newReportDocument(healthReport)); encodeError != nil {
		return fmt.Errorf(encodeErrorTemplateConstant, FormatJSON, encodeError)
	}
	return nil
}

// YAMLRenderer writes reports as YAML.
type YAMLRenderer struct{}

// Render encodes the report as YAML.
func (renderer YAMLRenderer) Render(destination io.Writer, healthReport HealthReport) error {
	encoder := yaml.NewEncoder(destination)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(newReportDocument(healthReport)); encodeError != nil {
		return fmt.Errorf(encodeErrorTemplateConstant, FormatYAML, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(encodeErrorTemplateConstant, FormatYAML, closeError)
	}
	return nil
}
