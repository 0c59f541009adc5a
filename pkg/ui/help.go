package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# wt

## Cloud

| Key | Action |
|-----|--------|
| ←/→ h/l | previous / next word |
| g / G | first / last word |
| enter, space | open the sentiment tree for the word |
| r | refetch the word list |

## Tree

| Key | Action |
|-----|--------|
| ↑/↓ k/j | move between visible nodes |
| enter, space | expand or collapse the node |
| → / ← | expand / collapse (or go to parent) |
| p | show or hide the node preview card |
| y | copy the node path to the clipboard |
| r | retry a failed load, or reset after a draw failure |
| esc, backspace | back to the cloud |

## Anywhere

| Key | Action |
|-----|--------|
| f | toggle fullscreen layout |
| s | save the current view as SVG/PNG |
| ? | toggle this help |
| q, ctrl+c | quit |

Collapsing a node also collapses everything below it.
`

// renderHelp renders the key reference for the given width. Falls back to
// the raw markdown when glamour cannot render.
func renderHelp(width int) string {
	wrap := max(40, min(width-4, 100))
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n ")
}
