package theme

import "github.com/charmbracelet/lipgloss"

// Colors groups the palette used across the TUI.
type Colors struct {
	Orange lipgloss.Color
	Green  lipgloss.Color
	Blue   lipgloss.Color
	Red    lipgloss.Color
	Gray   lipgloss.Color
}

// Theme bundles the shared styles for the selection TUI.
type Theme struct {
	Colors Colors

	Header    lipgloss.Style
	Info      lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

// DefaultTheme is the theme used by all TUI components.
var DefaultTheme = func() Theme {
	colors := Colors{
		Orange: lipgloss.Color("214"),
		Green:  lipgloss.Color("78"),
		Blue:   lipgloss.Color("39"),
		Red:    lipgloss.Color("203"),
		Gray:   lipgloss.Color("245"),
	}
	return Theme{
		Colors:    colors,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(colors.Blue),
		Info:      lipgloss.NewStyle().Foreground(colors.Orange),
		Highlight: lipgloss.NewStyle().Foreground(colors.Orange),
		Selected:  lipgloss.NewStyle().Foreground(colors.Green),
		Muted:     lipgloss.NewStyle().Foreground(colors.Gray).Faint(true),
		Error:     lipgloss.NewStyle().Foreground(colors.Red),
	}
}()
