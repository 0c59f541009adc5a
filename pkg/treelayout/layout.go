package treelayout

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/wordtree/pkg/expansion"
	"github.com/vanderheijden86/wordtree/pkg/metrics"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Anchor is the horizontal text anchor of a node label.
type Anchor string

const (
	AnchorStart Anchor = "start"
	AnchorEnd   Anchor = "end"
)

// Glyphs drawn above expandable nodes.
const (
	GlyphCollapsed = "+"
	GlyphExpanded  = "−"
)

const (
	NodeRadius       = 4.5
	labelOffset      = 10.0
	rootLabelOffset  = 16.0
	glyphSize        = 12.0
	glyphGap         = 4.0
	fullscreenBoost  = 4.0
	minTreeFontSize  = 13.0
	minLabelChars    = 18
	labelEllipsis    = "…"
	baselineFraction = 0.35
)

var (
	fontSizes  = []float64{22, 19, 16, 14}
	labelChars = []int{32, 26, 22}
)

// FontSize returns the label font size for a node at depth.
func FontSize(depth int, fullscreen bool) float64 {
	size := minTreeFontSize
	if depth >= 0 && depth < len(fontSizes) {
		size = fontSizes[depth]
	}
	if fullscreen {
		size += fullscreenBoost
	}
	return size
}

// MaxLabelChars returns how many display cells a label at depth may use
// before it is truncated.
func MaxLabelChars(depth int) int {
	if depth >= 0 && depth < len(labelChars) {
		return labelChars[depth]
	}
	return minLabelChars
}

// TruncateLabel shortens word to max display cells, ending in an ellipsis.
func TruncateLabel(word string, max int) string {
	if max <= 0 || runewidth.StringWidth(word) <= max {
		return word
	}
	return runewidth.Truncate(word, max, labelEllipsis)
}

// Indicator is the expand/collapse glyph, offset from the node centre.
type Indicator struct {
	Glyph    string
	DX, DY   float64
	FontSize float64
}

// PositionedNode is a visible node with canvas coordinates and label styling.
type PositionedNode struct {
	ID          string
	Word        string
	Label       string // possibly truncated
	Title       string // full word, shown on hover
	Path        expansion.Path
	Depth       int
	X, Y        float64
	FontSize    float64
	Anchor      Anchor
	LabelDX     float64
	LabelDY     float64
	Expanded    bool
	HasChildren bool
	Indicator   *Indicator
}

// Link is a horizontal cubic curve from a parent to a child.
type Link struct {
	SourceID, TargetID string
	X1, Y1             float64
	C1X, C1Y           float64
	C2X, C2Y           float64
	X2, Y2             float64
}

// PathData returns the SVG path data for the link.
func (l Link) PathData() string {
	return fmt.Sprintf("M%.2f,%.2fC%.2f,%.2f %.2f,%.2f %.2f,%.2f",
		l.X1, l.Y1, l.C1X, l.C1Y, l.C2X, l.C2Y, l.X2, l.Y2)
}

// TreeLayout is a fully positioned tree ready for rendering.
type TreeLayout struct {
	Geometry Geometry
	Nodes    []PositionedNode // pre-order, root first
	Links    []Link
}

// Node returns the positioned node with id.
func (t TreeLayout) Node(id string) (PositionedNode, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Layout builds the visible hierarchy of root under set and positions it.
func Layout(root *model.TreeNode, set expansion.Set, container Size, fullscreen bool) TreeLayout {
	return LayoutVisible(BuildVisible(root, set), container, fullscreen)
}

// LayoutVisible positions an already built visible hierarchy.
func LayoutVisible(v *VisibleNode, container Size, fullscreen bool) TreeLayout {
	if v == nil {
		return TreeLayout{}
	}
	geo := ComputeGeometry(v, container, fullscreen)

	defer metrics.Timer(metrics.TreeLayout)()

	placed := tidy(v, geo.Inner.Height, geo.Inner.Width, Separation)
	out := TreeLayout{
		Geometry: geo,
		Nodes:    make([]PositionedNode, 0, geo.NodeCount),
		Links:    make([]Link, 0, geo.NodeCount),
	}

	pos := func(n *VisibleNode) (float64, float64) {
		p := placed[n]
		return p.Depth + geo.Margins.Left, p.Breadth + geo.Margins.Top
	}

	v.Walk(func(n *VisibleNode) bool {
		x, y := pos(n)
		out.Nodes = append(out.Nodes, positionNode(n, x, y, fullscreen))
		if n.Parent != nil {
			px, py := pos(n.Parent)
			mx := (px + x) / 2
			out.Links = append(out.Links, Link{
				SourceID: n.Parent.ID,
				TargetID: n.ID,
				X1:       px,
				Y1:       py,
				C1X:      mx,
				C1Y:      py,
				C2X:      mx,
				C2Y:      y,
				X2:       x,
				Y2:       y,
			})
		}
		return true
	})
	return out
}

func positionNode(n *VisibleNode, x, y float64, fullscreen bool) PositionedNode {
	size := FontSize(n.Depth, fullscreen)
	p := PositionedNode{
		ID:          n.ID,
		Word:        n.Word,
		Label:       TruncateLabel(n.Word, MaxLabelChars(n.Depth)),
		Title:       n.Word,
		Path:        n.Path,
		Depth:       n.Depth,
		X:           x,
		Y:           y,
		FontSize:    size,
		LabelDY:     size * baselineFraction,
		Expanded:    n.Expanded,
		HasChildren: n.HasChildren,
	}

	switch {
	case n.Parent == nil:
		p.Anchor = AnchorEnd
		p.LabelDX = -rootLabelOffset
	case len(n.Children) > 0:
		p.Anchor = AnchorEnd
		p.LabelDX = -labelOffset
	default:
		p.Anchor = AnchorStart
		p.LabelDX = labelOffset
	}

	if n.HasChildren {
		glyph := GlyphCollapsed
		if n.Expanded {
			glyph = GlyphExpanded
		}
		gs := glyphSize
		if fullscreen {
			gs += fullscreenBoost
		}
		// Baseline sits above the label's cap height.
		p.Indicator = &Indicator{
			Glyph:    glyph,
			DX:       0,
			DY:       p.LabelDY - size - glyphGap,
			FontSize: gs,
		}
	}
	return p
}
