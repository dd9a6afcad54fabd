package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme groups the styles used for console output
type Theme struct {
	Title   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Prompt  lipgloss.Style
}

// NewTheme builds the styles for w. Color is dropped automatically when w is
// not a terminal.
func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimary)),
		Info:    r.NewStyle(),
		Success: r.NewStyle().Foreground(lipgloss.Color(ColorSuccess)),
		Warning: r.NewStyle().Foreground(lipgloss.Color(ColorWarning)),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorError)),
		Muted:   r.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
		Prompt:  r.NewStyle().Bold(true),
	}
}
