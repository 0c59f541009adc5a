package treelayout

import (
	"math"

	"github.com/vanderheijden86/wordtree/pkg/metrics"
)

// Canvas sizing constants in pixels.
const (
	MinCanvasWidth  = 1400.0
	MinCanvasHeight = 1000.0
	LevelWidth      = 350.0
	NodeHeight      = 80.0

	fullscreenScale = 1.25
	siblingSpacing  = 1.0
	cousinSpacing   = 1.5
	depthBoost      = 0.15
	boostedLevels   = 4
)

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// Margins around the tree drawing area. The left margin is the widest so
// long root labels anchored left of the root fit.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins are the fixed tree margins.
var DefaultMargins = Margins{Top: 80, Right: 150, Bottom: 60, Left: 200}

// Geometry is the canvas sizing for one visible hierarchy.
type Geometry struct {
	NodeCount    int
	VisibleDepth int
	MinWidth     float64
	MinHeight    float64
	Inner        Size // drawing area; depth runs along Width, siblings along Height
	Canvas       Size // Inner plus Margins
	Margins      Margins
	Fullscreen   bool
}

// ComputeGeometry sizes the canvas for the visible hierarchy v inside a
// container. The drawing area is never smaller than the container nor than
// the minimums derived from the visible node count and depth.
func ComputeGeometry(v *VisibleNode, container Size, fullscreen bool) Geometry {
	defer metrics.Timer(metrics.TreeGeometry)()

	count := v.Count()
	depth := v.Levels()

	level, node := LevelWidth, NodeHeight
	if fullscreen {
		level *= fullscreenScale
		node *= fullscreenScale
	}
	minW := math.Max(MinCanvasWidth, float64(depth)*level)
	minH := math.Max(MinCanvasHeight, float64(count)*node)

	inner := Size{
		Width:  math.Max(container.Width, minW),
		Height: math.Max(container.Height, minH),
	}
	m := DefaultMargins
	return Geometry{
		NodeCount:    count,
		VisibleDepth: depth,
		MinWidth:     minW,
		MinHeight:    minH,
		Inner:        inner,
		Canvas: Size{
			Width:  inner.Width + m.Left + m.Right,
			Height: inner.Height + m.Top + m.Bottom,
		},
		Margins:    m,
		Fullscreen: fullscreen,
	}
}

// Separation returns the spacing between two adjacent nodes of the same
// level, in tidy-tree units. Cousins get more room than siblings, and
// shallow levels get more room than deep ones because their labels use
// larger fonts.
func Separation(a, b *VisibleNode) float64 {
	base := cousinSpacing
	if a.Parent != nil && a.Parent == b.Parent {
		base = siblingSpacing
	}
	depth := a.Depth
	if b.Depth < depth {
		depth = b.Depth
	}
	boost := boostedLevels - depth
	if boost < 0 {
		boost = 0
	}
	return base * (1 + depthBoost*float64(boost))
}
