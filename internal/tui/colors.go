// Package tui hosts a split-view container in a bubbletea program. Handles
// are dragged with the mouse, views are resized from the keyboard or the
// command bar and every pane shows markdown content rendered with glamour.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber

	ColorSuccess = lipgloss.Color("#10B981")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorError   = lipgloss.Color("#EF4444")

	ColorText      = lipgloss.Color("#E5E7EB")
	ColorTextMuted = lipgloss.Color("#9CA3AF")
	ColorBorder    = lipgloss.Color("#374151")
)

// ColorScheme groups the colors panes and handles are drawn with.
type ColorScheme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Border    lipgloss.Color
}

// DarkScheme is the default scheme.
var DarkScheme = ColorScheme{
	Primary:   ColorPrimary,
	Secondary: ColorSecondary,
	Accent:    ColorAccent,
	Warning:   ColorWarning,
	Error:     ColorError,
	Text:      ColorText,
	TextMuted: ColorTextMuted,
	Border:    ColorBorder,
}

// LightScheme suits light terminal backgrounds.
var LightScheme = ColorScheme{
	Primary:   lipgloss.Color("#6D28D9"),
	Secondary: lipgloss.Color("#0891B2"),
	Accent:    lipgloss.Color("#D97706"),
	Warning:   lipgloss.Color("#D97706"),
	Error:     lipgloss.Color("#DC2626"),
	Text:      lipgloss.Color("#1F2937"),
	TextMuted: lipgloss.Color("#6B7280"),
	Border:    lipgloss.Color("#D1D5DB"),
}

// SchemeFor returns the scheme for a ui.theme value. "light" picks the
// light scheme, everything else the dark one.
func SchemeFor(theme string) ColorScheme {
	if theme == "light" {
		return LightScheme
	}
	return DarkScheme
}
