package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/wordtree/pkg/scene"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Tree nodes
	Expanded  lipgloss.AdaptiveColor
	Collapsed lipgloss.AdaptiveColor
	Leaf      lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Footer   lipgloss.Style

	MutedText  lipgloss.Style
	ErrorText  lipgloss.Style
	GlyphStyle lipgloss.Style
	Connector  lipgloss.Style

	// Words holds one style per cloud palette entry.
	Words [len(scene.Palette)]lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Expanded:  lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Collapsed: lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"},
		Leaf:      lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Error:     lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Footer = r.NewStyle().Foreground(t.Subtext).Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.ErrorText = r.NewStyle().Foreground(t.Error).Bold(true)
	t.GlyphStyle = r.NewStyle().Foreground(t.Collapsed).Bold(true)
	t.Connector = r.NewStyle().Foreground(t.Border)

	for i, hex := range scene.Palette {
		t.Words[i] = r.NewStyle().Foreground(ThemeFg(hex))
	}
	return t
}

// WordStyle returns the style for a cloud word. Words at or above
// boldSize are rendered bold.
func (t Theme) WordStyle(colorIndex int, fontSize float64) lipgloss.Style {
	if colorIndex < 0 {
		colorIndex = -colorIndex
	}
	s := t.Words[colorIndex%len(t.Words)]
	if fontSize >= boldSize {
		s = s.Bold(true)
	}
	return s
}

// NodeColor returns the label color for a tree node.
func (t Theme) NodeColor(expanded, hasChildren bool) lipgloss.AdaptiveColor {
	switch {
	case expanded:
		return t.Expanded
	case hasChildren:
		return t.Collapsed
	default:
		return t.Leaf
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
