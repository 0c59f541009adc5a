package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vanderheijden86/wordtree/pkg/treelayout"
	"github.com/vanderheijden86/wordtree/pkg/view"
)

// renderPreview draws the hover card for a tree node: its full word and
// the path that identifies it.
func (m Model) renderPreview(n treelayout.PositionedNode) string {
	state := "leaf"
	if n.HasChildren {
		state = "collapsed"
		if n.Expanded {
			state = "expanded"
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(n.Title),
		m.theme.MutedText.Render(n.Path.String()),
		m.theme.MutedText.Render(fmt.Sprintf("depth %d · %s", n.Depth, state)),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1).
		Render(body)
}

// previewOrigin returns the cell where the preview card's top-left corner
// goes. The cursor row's label end acts as the pointer; the card sits above
// and to the left of it and flips when it would leave the body.
func (m Model) previewOrigin(n treelayout.PositionedNode, card string) (x, y int) {
	row := m.treeCursor - m.treeOffset
	col := 2*n.Depth + 2 + lipgloss.Width(n.Label)
	p := view.PositionTooltip(view.TooltipRequest{
		Pointer: view.Point{
			X: float64(col * CellWidth),
			Y: float64(row*CellHeight + CellHeight/2),
		},
		Width:     float64(lipgloss.Width(card) * CellWidth),
		Height:    float64(lipgloss.Height(card) * CellHeight),
		Container: view.Rect{Width: float64(m.width * CellWidth), Height: float64(m.bodyHeight() * CellHeight)},
		Gap:       CellHeight / 2,
	})
	return int(p.X) / CellWidth, int(p.Y) / CellHeight
}

// overlay draws fg over bg with its top-left corner at cell (x, y).
func overlay(bg, fg string, x, y int) string {
	lines := strings.Split(bg, "\n")
	for i, fl := range strings.Split(fg, "\n") {
		row := y + i
		for row >= len(lines) {
			lines = append(lines, "")
		}
		line := lines[row]
		left := ansi.Cut(line, 0, x)
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.Cut(line, x+ansi.StringWidth(fl), ansi.StringWidth(line))
		lines[row] = left + fl + right
	}
	return strings.Join(lines, "\n")
}
