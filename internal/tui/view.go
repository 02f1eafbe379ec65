package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	host := m.host.Size()
	body := m.renderPanes(host)
	if m.showFullHelp {
		box := m.styles.HelpBox.Render(m.help.FullHelpView(m.keys.FullHelp()))
		body = lipgloss.Place(host.Width, host.Height, lipgloss.Center, lipgloss.Center, box)
	}

	lines := []string{body, m.renderStatus()}
	if m.showHelp {
		lines = append(lines, m.styles.Help.MaxWidth(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderPanes(host splitview.Size) string {
	dir := m.container.Direction()
	focused := m.focusedView()

	var blocks []string
	for _, p := range m.container.Layout() {
		if p.Size <= 0 {
			continue
		}
		blocks = append(blocks, m.renderPane(p, dir, host, p.View == focused))
	}
	if len(blocks) == 0 {
		return lipgloss.Place(host.Width, host.Height, lipgloss.Center, lipgloss.Center,
			m.styles.Help.Render("no views"))
	}

	var joined string
	if dir == splitview.Row {
		joined = lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	} else {
		joined = lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return fit(joined, host.Width, host.Height)
}

func (m Model) renderPane(p splitview.Placement, dir splitview.Direction, host splitview.Size, focused bool) string {
	handleStyle := m.styles.Handle
	switch {
	case m.drag != nil && m.drag.Active() && m.drag.View() == p.View:
		handleStyle = m.styles.ActiveHandle
	case p.Highlighted:
		handleStyle = m.styles.HoverHandle
	}

	titleStyle := m.styles.Title
	if focused {
		titleStyle = m.styles.FocusedTitle
	}
	title := fmt.Sprintf("%s %d", viewLabel(p.View), p.Size)
	pane := m.pane(p.View)

	if dir == splitview.Row {
		width, height := p.Size, host.Height
		handle := 0
		if p.HandleVisible {
			handle = 1
		}
		contentW := width - handle
		pane.Resize(contentW, height-1)
		body := fit(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.MaxWidth(contentW).Render(title),
			pane.View()), contentW, height)
		if handle == 0 {
			return body
		}
		bar := handleStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
		return lipgloss.JoinHorizontal(lipgloss.Top, bar, body)
	}

	width, height := host.Width, p.Size
	handle := 0
	if p.HandleVisible {
		handle = 1
	}
	contentH := height - handle
	pane.Resize(width, contentH-1)
	body := fit(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.MaxWidth(width).Render(title),
		pane.View()), width, contentH)
	if handle == 0 {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, handleStyle.Render(strings.Repeat("─", width)), body)
}

func (m Model) renderStatus() string {
	if m.commandMode {
		return m.input.View()
	}

	c := m.container
	left := fmt.Sprintf(" %s · %d cells · free %d · %s",
		c.Direction(), c.Axis().Main(m.host.Size()), c.FreeSize(), FormatSizes(c))
	if cursor := c.Cursor(); cursor != "default" {
		left += " · " + cursor
	}

	line := m.styles.StatusBar.Render(left)
	if m.status != "" {
		style := m.styles.StatusBar
		if m.statusErr {
			style = m.styles.StatusError
		}
		line += "  " + style.Render(m.status)
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// fit cuts s to w×h and pads it to exactly that size.
func fit(s string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	s = lipgloss.NewStyle().MaxWidth(w).MaxHeight(h).Render(s)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, s)
}
