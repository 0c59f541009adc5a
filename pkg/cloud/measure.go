package cloud

import "github.com/mattn/go-runewidth"

// glyphAspect approximates the advance width of one terminal cell of text
// relative to the font size for the sans-serif faces the renderers use.
const glyphAspect = 0.6

// MeasureLabel returns the box a horizontal label occupies at fontSize.
// Width is based on display cells so CJK words get double-width glyphs.
func MeasureLabel(text string, fontSize float64) (width, height float64) {
	cells := runewidth.StringWidth(text)
	if cells < 1 {
		cells = 1
	}
	return float64(cells) * fontSize * glyphAspect, fontSize
}
