package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// Pane is the scrollable markdown content of one view.
type Pane struct {
	content  string
	theme    string
	width    int
	rendered bool
	viewport viewport.Model
}

// NewPane creates a pane showing markdown content. theme is a glamour
// standard style name; "auto" is treated as "dark" because the terminal
// cannot be queried once the program owns it.
func NewPane(content, theme string) *Pane {
	if theme == "" || theme == "auto" {
		theme = "dark"
	}
	return &Pane{
		content:  content,
		theme:    theme,
		viewport: viewport.New(0, 0),
	}
}

// Resize sets the pane's content area. The markdown is rendered again only
// when the width changes.
func (p *Pane) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if !p.rendered || width != p.width {
		p.width = width
		p.rendered = true
		p.viewport.SetContent(p.render(width))
	}
	p.viewport.Width = width
	p.viewport.Height = height
}

// SetContent replaces the markdown source.
func (p *Pane) SetContent(content string) {
	p.content = content
	p.rendered = false
}

func (p *Pane) render(width int) string {
	if p.content == "" || width < 1 {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(p.theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return p.content
	}
	out, err := renderer.Render(p.content)
	if err != nil {
		return p.content
	}
	return strings.TrimSuffix(out, "\n")
}

// ScrollUp scrolls the pane up by n lines.
func (p *Pane) ScrollUp(n int) {
	p.viewport.LineUp(n)
}

// ScrollDown scrolls the pane down by n lines.
func (p *Pane) ScrollDown(n int) {
	p.viewport.LineDown(n)
}

// View renders the visible part of the pane.
func (p *Pane) View() string {
	return p.viewport.View()
}
