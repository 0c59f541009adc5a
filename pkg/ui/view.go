package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/wordtree/pkg/cloud"
	"github.com/vanderheijden86/wordtree/pkg/view"
)

func (m Model) View() string {
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(m.coord.Status()),
			m.help.View(),
		)
	}

	st := m.coord.Status()
	var body string
	switch st.State {
	case view.StateCloud:
		body = m.renderCloud(st)
	case view.StateTreeLoading:
		body = m.centered(m.theme.MutedText.Render(fmt.Sprintf("Loading tree for %q...", st.Selected)))
	case view.StateTreeEmpty:
		body = m.centered(lipgloss.JoinVertical(lipgloss.Center,
			m.theme.MutedText.Render(st.ErrorMessage),
			"",
			RenderKey("r", "refetch")+"   "+RenderKey("esc", "back to cloud"),
		))
	case view.StateTreeError:
		body = m.centered(lipgloss.JoinVertical(lipgloss.Center,
			m.theme.ErrorText.Render(st.ErrorMessage),
			"",
			RenderKey("r", "retry")+"   "+RenderKey("esc", "back to cloud"),
		))
	case view.StateTreeReady:
		if st.RenderError != "" {
			body = m.centered(lipgloss.JoinVertical(lipgloss.Center,
				m.theme.ErrorText.Render("Could not draw the tree"),
				m.theme.MutedText.Render(st.RenderError),
				"",
				RenderKey("r", "reset and retry")+"   "+RenderKey("esc", "back to cloud"),
			))
		} else {
			body = m.renderTree()
			if m.showPreview && m.treeCursor < len(m.nodes) {
				n := m.nodes[m.treeCursor]
				card := m.renderPreview(n)
				x, y := m.previewOrigin(n, card)
				body = overlay(body, card, x, y)
			}
		}
	}

	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(st), body, m.renderFooter(st))
}

func (m Model) centered(s string) string {
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, s)
}

func (m Model) renderHeader(st view.Status) string {
	title := "wt"
	switch {
	case st.Selected != "":
		title += " · " + st.Selected
	case st.Cloud == view.CloudReady:
		title += fmt.Sprintf(" · %d words", st.Words)
	}
	if key := st.Filter.Key(); key != "" {
		title += " · " + key
	}
	if st.Fullscreen {
		title += " · fullscreen"
	}
	return m.theme.Header.Width(m.width).Render(padRight(title, max(0, m.width-2)))
}

func (m Model) renderFooter(st view.Status) string {
	var left string
	switch {
	case m.statusMsg != "" && m.statusIsError:
		left = lipgloss.NewStyle().Foreground(ColorDanger).Render(m.statusMsg)
	case m.statusMsg != "":
		left = lipgloss.NewStyle().Foreground(ColorSuccess).Render(m.statusMsg)
	case !m.diff.Empty():
		left = m.theme.MutedText.Render("Δ " + m.diff.String())
	}

	var hints []string
	if st.State == view.StateCloud {
		hints = []string{RenderKey("←→", "move"), RenderKey("enter", "open")}
	} else {
		hints = []string{RenderKey("↑↓", "move"), RenderKey("enter", "toggle"), RenderKey("y", "copy"), RenderKey("esc", "back")}
	}
	hints = append(hints, RenderKey("f", "fullscreen"), RenderKey("s", "save"), RenderKey("?", "help"))
	right := strings.Join(hints, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return m.theme.Footer.Render(left)
	}
	return m.theme.Footer.Render(left + strings.Repeat(" ", gap) + right)
}

// renderCloud flows the words in layout order, largest first, wrapping at
// the terminal width.
func (m Model) renderCloud(st view.Status) string {
	switch st.Cloud {
	case view.CloudLoading:
		return m.centered(m.theme.MutedText.Render("Loading words..."))
	case view.CloudEmpty:
		return m.centered(m.theme.MutedText.Render("No words for this filter"))
	case view.CloudError:
		return m.centered(lipgloss.JoinVertical(lipgloss.Center,
			m.theme.ErrorText.Render("Failed to load words"),
			m.theme.MutedText.Render(st.CloudError),
			"",
			RenderKey("r", "retry"),
		))
	}

	width := max(10, m.width-2*SpaceSM)
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for i, w := range m.words {
		text := w.Text
		if w.FontSize >= cloud.MaxFontSize*0.75 {
			text = strings.ToUpper(text)
		}
		style := m.theme.WordStyle(w.ColorIndex, w.FontSize)
		if i == m.cloudCursor {
			style = style.Reverse(true)
		}
		cell := style.Render(text)
		cw := runewidth.StringWidth(text)

		if lineWidth > 0 && lineWidth+SpaceSM+cw > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(strings.Repeat(" ", SpaceSM))
			lineWidth += SpaceSM
		}
		line.WriteString(cell)
		lineWidth += cw
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, block)
}

// renderTree draws the visible nodes as an indented outline, scrolled so
// the cursor stays on screen.
func (m Model) renderTree() string {
	h := m.bodyHeight()
	end := min(len(m.nodes), m.treeOffset+h)

	var b strings.Builder
	for i := m.treeOffset; i < end; i++ {
		n := m.nodes[i]

		glyph := "•"
		if n.Indicator != nil {
			glyph = n.Indicator.Glyph
		}
		indent := strings.Repeat("  ", n.Depth)
		prefix := m.theme.Connector.Render(indent) + m.theme.GlyphStyle.Render(glyph) + " "

		label := lipgloss.NewStyle().Foreground(m.theme.NodeColor(n.Expanded, n.HasChildren))
		if n.Depth == 0 {
			label = label.Bold(true)
		}
		text := n.Label
		if i == m.treeCursor {
			text = m.theme.Selected.Render(text)
		} else {
			text = label.Render(text)
		}
		b.WriteString(prefix + text)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
