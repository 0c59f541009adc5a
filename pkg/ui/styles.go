package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// Terminal cells are mapped to layout pixels with these factors, so the
// tree geometry sees a container comparable to a browser window.
const (
	CellWidth  = 8
	CellHeight = 16
)

// boldSize is the cloud font size from which words are drawn bold.
const boldSize = 24.0

var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// RenderKey renders a key hint like "enter expand".
func RenderKey(key, desc string) string {
	k := lipgloss.NewStyle().Foreground(ColorInfo).Bold(true).Render(key)
	return k + " " + lipgloss.NewStyle().Foreground(ColorMuted).Render(desc)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("─", width))
}

// padRight pads s with spaces to the given display width, truncating with
// an ellipsis when it is wider.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
