package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	successColorConstant = lipgloss.Color("2")
	warningColorConstant = lipgloss.Color("3")
	failureColorConstant = lipgloss.Color("1")
	accentColorConstant  = lipgloss.Color("6")
	mutedColorConstant   = lipgloss.Color("8")
)

// Palette holds the styles used by text presenters. Styles are bound to the
// destination writer, so writers that are not terminals receive plain text.
type Palette struct {
	Heading lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Failure lipgloss.Style
	Accent  lipgloss.Style
	Muted   lipgloss.Style
}

// NewPalette builds a palette whose color profile is detected from destination.
func NewPalette(destination io.Writer) Palette {
	renderer := lipgloss.NewRenderer(destination)
	return Palette{
		Heading: renderer.NewStyle().Bold(true),
		Success: renderer.NewStyle().Foreground(successColorConstant),
		Warning: renderer.NewStyle().Foreground(warningColorConstant),
		Failure: renderer.NewStyle().Foreground(failureColorConstant),
		Accent:  renderer.NewStyle().Foreground(accentColorConstant).Bold(true),
		Muted:   renderer.NewStyle().Foreground(mutedColorConstant),
	}
}
