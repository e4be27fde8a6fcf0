// Package overlay draws a modal view on top of a rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Placement controls where the foreground lands.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	// OffsetY shifts the foreground down after alignment.
	OffsetY int
}

// Centered places the foreground in the middle of the screen.
var Centered = Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}

// Compose renders foreground over background, a width x height screen. Cells
// of the background outside the foreground box are kept, styling included.
func Compose(background string, width, height int, foreground string, p Placement) string {
	bg := fit(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n")
	}

	fg := strings.Split(foreground, "\n")
	fgWidth := 0
	for _, line := range fg {
		fgWidth = max(fgWidth, ansi.StringWidth(line))
	}
	fgWidth = min(fgWidth, width)
	if len(fg) > height {
		fg = fg[:height]
	}

	x := offset(width, fgWidth, p.Horizontal)
	y := offset(height, len(fg), p.Vertical) + p.OffsetY
	y = clamp(y, 0, height-len(fg))

	for i, line := range fg {
		row := y + i
		base := bg[row]
		left := ansi.Truncate(base, x, "")
		right := ansi.TruncateLeft(base, x+fgWidth, "")
		bg[row] = left + pad(ansi.Truncate(line, fgWidth, ""), fgWidth) + right
	}
	return strings.Join(bg, "\n")
}

// fit pads or trims view to exactly height lines of width cells.
func fit(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = pad(ansi.Truncate(line, width, ""), width)
	}
	return lines
}

func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func offset(outer, inner int, pos lipgloss.Position) int {
	return clamp(int(float64(outer-inner)*float64(pos)), 0, max(outer-inner, 0))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
