// Package ui holds the terminal palette and styles shared by the report
// output and the outline browser.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines a color palette.
type Theme struct {
	Accent lipgloss.Color
	Text   lipgloss.Color
	Dim    lipgloss.Color
	Border lipgloss.Color
	OK     lipgloss.Color
	Warn   lipgloss.Color
	Error  lipgloss.Color
}

// DefaultTheme returns the default color palette (catppuccin-inspired).
func DefaultTheme() Theme {
	return Theme{
		Accent: lipgloss.Color("#cba6f7"),
		Text:   lipgloss.Color("#cdd6f4"),
		Dim:    lipgloss.Color("#585b70"),
		Border: lipgloss.Color("#45475a"),
		OK:     lipgloss.Color("#a6e3a1"),
		Warn:   lipgloss.Color("#f9e2af"),
		Error:  lipgloss.Color("#f38ba8"),
	}
}

// Styles are the rendered forms of a Theme.
type Styles struct {
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Dim      lipgloss.Style
	OK       lipgloss.Style
	Warn     lipgloss.Style
	Error    lipgloss.Style
}

func NewStyles(th Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent),
		Selected: lipgloss.NewStyle().
			Foreground(th.Accent).
			Bold(true),
		Normal: lipgloss.NewStyle().Foreground(th.Text),
		Dim:    lipgloss.NewStyle().Foreground(th.Dim),
		OK:     lipgloss.NewStyle().Foreground(th.OK),
		Warn:   lipgloss.NewStyle().Foreground(th.Warn),
		Error:  lipgloss.NewStyle().Foreground(th.Error).Bold(true),
	}
}

// DefaultStyles renders DefaultTheme.
func DefaultStyles() Styles {
	return NewStyles(DefaultTheme())
}
