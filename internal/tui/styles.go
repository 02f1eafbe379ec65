package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the rendered look of the layout.
type Styles struct {
	Title        lipgloss.Style
	FocusedTitle lipgloss.Style
	Handle       lipgloss.Style
	HoverHandle  lipgloss.Style
	ActiveHandle lipgloss.Style
	StatusBar    lipgloss.Style
	StatusError  lipgloss.Style
	Help         lipgloss.Style
	HelpBox      lipgloss.Style
	Prompt       lipgloss.Style
}

// NewStyles builds the styles for scheme.
func NewStyles(scheme ColorScheme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(scheme.TextMuted).
			Bold(true),

		FocusedTitle: lipgloss.NewStyle().
			Foreground(scheme.Primary).
			Bold(true).
			Underline(true),

		Handle: lipgloss.NewStyle().
			Foreground(scheme.Border),

		HoverHandle: lipgloss.NewStyle().
			Foreground(scheme.Secondary).
			Bold(true),

		ActiveHandle: lipgloss.NewStyle().
			Foreground(scheme.Accent).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(scheme.Text),

		StatusError: lipgloss.NewStyle().
			Foreground(scheme.Error).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(scheme.TextMuted).
			Italic(true),

		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(scheme.Primary).
			Padding(1, 2),

		Prompt: lipgloss.NewStyle().
			Foreground(scheme.Warning).
			Bold(true),
	}
}
