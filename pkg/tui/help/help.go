// Package help renders the key reference overlay.
package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var helpMarkdown string

// Model renders the Glamour help page inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	style    string
	width    int
	height   int

	frame lipgloss.Style
	err   error
}

// New constructs a help overlay. style is a glamour standard style name such
// as "dark", "light" or "notty".
func New(style string, width, height int) *Model {
	if style == "" {
		style = "dark"
	}
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	m := &Model{
		viewport: vp,
		style:    style,
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
	m.SetSize(width, height)
	return m
}

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return cmd
}

// View renders the help content inside a rounded frame.
func (m *Model) View() string {
	return m.frame.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// Err reports why the markdown could not be rendered, if it could not.
func (m *Model) Err() error { return m.err }

// SetSize configures the overlay dimensions and re-renders to fit.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 32), max(height, 8)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height

	innerWidth := max(width-m.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-m.frame.GetVerticalFrameSize(), 1)
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)
	m.render(innerWidth)
}

func (m *Model) render(wrap int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err == nil {
		var content string
		if content, err = renderer.Render(strings.TrimSpace(helpMarkdown)); err == nil {
			m.err = nil
			m.viewport.SetContent(content)
			m.viewport.SetYOffset(0)
			return
		}
	}
	m.err = err
	m.viewport.SetContent("help unavailable: " + err.Error())
}
