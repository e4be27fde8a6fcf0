package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/tui/overlay"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	removeHint = "[x] remove"
)

// View renders the active list, then any dialog or help page on top.
func (m *Model) View() string {
	width, height := m.size()
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		"",
		m.renderList(width),
		"",
		m.theme.List.Trigger.Render(fmt.Sprintf("+ Add %s (a)", m.Active().Kind())),
		"",
		m.renderFooter(),
	)

	switch m.mode {
	case modeDialog:
		fg := m.dialog.view(m.state.Alpha, m.theme.Background, m.theme.Accent)
		p := overlay.Centered
		p.OffsetY = rise(m.state.Alpha)
		return overlay.Compose(body, width, height, fg, p)
	case modeHelp:
		return overlay.Compose(body, width, height, m.help.View(), overlay.Centered)
	}
	return body
}

func (m *Model) size() (int, int) {
	width, height := m.termWidth, m.termHeight
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m *Model) helpSize() (int, int) {
	width, height := m.size()
	return width * 3 / 4, height * 3 / 4
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(record.All))
	for i, c := range record.All {
		label := fmt.Sprintf("%d %s (%d)", i+1, c.Title(), len(m.snap.List(c)))
		style := m.theme.Tabs.Inactive
		if i == m.active {
			style = m.theme.Tabs.Active
		}
		tabs = append(tabs, m.theme.Tabs.Gap.Render(style.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderList(width int) string {
	c := m.Active()
	list := m.snap.List(c)
	if len(list) == 0 {
		return m.theme.List.Empty.Render(fmt.Sprintf("  No %s yet", strings.ToLower(c.Title())))
	}

	lines := make([]string, 0, len(list))
	for i, r := range list {
		lines = append(lines, m.renderRow(c, r, i == m.cursor[c], width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(c record.Collection, r record.Record, selected bool, width int) string {
	pointer := "  "
	if selected {
		pointer = "› "
	}

	marker := "•"
	if c.HasCompletion() {
		marker = "[ ]"
		if r.Done() {
			marker = "[✓]"
		}
	}
	prefix := pointer + marker + " "

	room := width - lipgloss.Width(prefix)
	if selected {
		room -= len(removeHint) + 2
	}
	text := truncate.StringWithTail(r.Text, uint(max(room, 1)), "…")

	style := m.theme.List.Row
	switch {
	case selected:
		style = m.theme.List.Selected
	case r.Done():
		style = m.theme.List.Done
	}
	line := style.Render(prefix + text)
	if selected {
		line += "  " + m.theme.List.Control.Render(removeHint)
	}
	return line
}

func (m *Model) renderFooter() string {
	status := m.theme.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Footer.Error.Render(m.status)
	}
	keys := "a add · e edit · space toggle · x remove · r refresh · ? help · q quit"
	if m.mode == modeDialog {
		keys = "enter save · esc cancel"
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.theme.Footer.Help.Render(keys))
}
