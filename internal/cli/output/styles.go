package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles bound to one renderer's color profile.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Value   lipgloss.Style
}

// NewStyles builds the palette for lr.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    lr.NewStyle().Bold(true),
		Value:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
	}
}
