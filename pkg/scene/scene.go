// Package scene describes what to draw as a flat list of keyed elements.
//
// Views build a Scene from a layout and hand it to a renderer; successive
// scenes are compared with Compare so hosts update only what changed.
package scene

import (
	"fmt"

	"github.com/vanderheijden86/wordtree/pkg/cloud"
	"github.com/vanderheijden86/wordtree/pkg/metrics"
	"github.com/vanderheijden86/wordtree/pkg/treelayout"
)

// Kind is the shape of an element.
type Kind uint8

const (
	KindText Kind = iota
	KindCircle
	KindCurve
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCircle:
		return "circle"
	case KindCurve:
		return "curve"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Point is a position in scene coordinates.
type Point struct{ X, Y float64 }

// Element is one drawable. Key is stable across re-renders of the same
// logical item. Element is comparable.
type Element struct {
	Key  string
	Kind Kind

	X, Y   float64
	DX, DY float64 // text offset from X,Y to the baseline start point
	R      float64

	Text     string
	Title    string // hover text
	FontSize float64
	Anchor   string // start, middle or end
	Bold     bool

	Fill        string
	Stroke      string
	StrokeWidth float64

	Curve [4]Point // start, control 1, control 2, end
	Path  string   // SVG path data for curves
}

// Scene is a drawable frame. The view box starts at (MinX, MinY).
type Scene struct {
	Width, Height float64
	MinX, MinY    float64
	Background    string
	Elements      []Element
}

// Colors shared by the scene builders.
const (
	Background  = "#ffffff"
	LinkColor   = "#c7cdd6"
	NodeStroke  = "#4a6fa5"
	NodeOpen    = "#ffffff"
	NodeClosed  = "#b0c4de"
	LabelColor  = "#1f2933"
	GlyphColor  = "#6b7280"
	linkWidth   = 1.5
	strokeWidth = 1.5
)

// Palette is the categorical word colour palette, indexed by
// LayoutWord.ColorIndex.
var Palette = [cloud.PaletteSize]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// PaletteColor returns the palette entry for a colour index.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// FromCloud builds the scene for a cloud layout. The view box is centred on
// the origin, matching the layout's coordinates.
func FromCloud(l cloud.Layout) Scene {
	defer metrics.Timer(metrics.SceneRender)()

	s := Scene{
		Width:      l.Width,
		Height:     l.Height,
		MinX:       -l.Width / 2,
		MinY:       -l.Height / 2,
		Background: Background,
		Elements:   make([]Element, 0, len(l.Words)),
	}
	for _, w := range l.Words {
		s.Elements = append(s.Elements, Element{
			Key:      "word:" + w.Text,
			Kind:     KindText,
			X:        w.X,
			Y:        w.Y,
			DY:       w.FontSize * 0.35,
			Text:     w.Text,
			Title:    fmt.Sprintf("%s: %g", w.Text, w.Frequency),
			FontSize: w.FontSize,
			Anchor:   "middle",
			Bold:     true,
			Fill:     PaletteColor(w.ColorIndex),
		})
	}
	return s
}

// FromTree builds the scene for a positioned tree: links first so nodes
// and labels draw on top.
func FromTree(t treelayout.TreeLayout) Scene {
	defer metrics.Timer(metrics.SceneRender)()

	g := t.Geometry
	s := Scene{
		Width:      g.Canvas.Width,
		Height:     g.Canvas.Height,
		Background: Background,
		Elements:   make([]Element, 0, len(t.Links)+3*len(t.Nodes)),
	}
	for _, l := range t.Links {
		s.Elements = append(s.Elements, Element{
			Key:         "link:" + l.TargetID,
			Kind:        KindCurve,
			Stroke:      LinkColor,
			StrokeWidth: linkWidth,
			Curve: [4]Point{
				{l.X1, l.Y1}, {l.C1X, l.C1Y}, {l.C2X, l.C2Y}, {l.X2, l.Y2},
			},
			Path: l.PathData(),
		})
	}
	for _, n := range t.Nodes {
		fill := NodeOpen
		if n.HasChildren && !n.Expanded {
			fill = NodeClosed
		}
		s.Elements = append(s.Elements,
			Element{
				Key:         "node:" + n.ID,
				Kind:        KindCircle,
				X:           n.X,
				Y:           n.Y,
				R:           treelayout.NodeRadius,
				Title:       n.Title,
				Fill:        fill,
				Stroke:      NodeStroke,
				StrokeWidth: strokeWidth,
			},
			Element{
				Key:      "label:" + n.ID,
				Kind:     KindText,
				X:        n.X,
				Y:        n.Y,
				DX:       n.LabelDX,
				DY:       n.LabelDY,
				Text:     n.Label,
				Title:    n.Title,
				FontSize: n.FontSize,
				Anchor:   string(n.Anchor),
				Bold:     n.Depth == 0,
				Fill:     LabelColor,
			},
		)
		if ind := n.Indicator; ind != nil {
			s.Elements = append(s.Elements, Element{
				Key:      "glyph:" + n.ID,
				Kind:     KindText,
				X:        n.X,
				Y:        n.Y,
				DX:       ind.DX,
				DY:       ind.DY,
				Text:     ind.Glyph,
				FontSize: ind.FontSize,
				Anchor:   "middle",
				Fill:     GlyphColor,
			})
		}
	}
	return s
}

// Find returns the element with key.
func (s Scene) Find(key string) (Element, bool) {
	for _, e := range s.Elements {
		if e.Key == key {
			return e, true
		}
	}
	return Element{}, false
}
