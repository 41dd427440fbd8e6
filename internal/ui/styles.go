package ui

import (
	"io"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used for command output. Colors follow the
// catppuccin palette used by the prompts.
type Styles struct {
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Branch  lipgloss.Style
	Header  lipgloss.Style
}

// NewStyles builds styles for output written to w. With color disabled, or
// when w is not a terminal, the styles render plain text.
func NewStyles(w io.Writer, color bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return &Styles{
			Success: plain, Warn: plain, Error: plain, Info: plain,
			Muted: plain, Branch: plain, Header: plain,
		}
	}

	flavor := catppuccin.Mocha
	if !r.HasDarkBackground() {
		flavor = catppuccin.Latte
	}
	fg := func(c catppuccin.Color) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c.Hex))
	}

	return &Styles{
		Success: fg(flavor.Green()),
		Warn:    fg(flavor.Yellow()),
		Error:   fg(flavor.Red()).Bold(true),
		Info:    fg(flavor.Blue()),
		Muted:   fg(flavor.Overlay1()),
		Branch:  fg(flavor.Mauve()).Bold(true),
		Header:  fg(flavor.Text()).Bold(true),
	}
}
