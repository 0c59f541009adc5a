package treelayout

import (
	"math"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/wordtree/pkg/expansion"
	"github.com/vanderheijden86/wordtree/pkg/model"
	"github.com/vanderheijden86/wordtree/pkg/testutil"
)

const eps = 1e-6

func tasteLayout(t *testing.T) (TreeLayout, *model.TreeNode) {
	t.Helper()
	tree := testutil.TasteTree()
	root := expansion.RootPath(tree)
	set := expansion.NewSet(root.Key())
	set = expansion.ToggleAt(set, tree.Children[1], root.Child("sweet", 1))
	return Layout(tree, set, Size{Width: 1000, Height: 700}, false), tree
}

func TestLayoutTasteScenario(t *testing.T) {
	l, _ := tasteLayout(t)
	if len(l.Nodes) != 4 || len(l.Links) != 3 {
		t.Fatalf("nodes=%d links=%d, want 4/3", len(l.Nodes), len(l.Links))
	}

	root, sweet0, sweet1, strong := l.Nodes[0], l.Nodes[1], l.Nodes[2], l.Nodes[3]
	if root.Word != "taste" || strong.Word != "strong" {
		t.Fatalf("unexpected order: %q %q", root.Word, strong.Word)
	}
	if sweet0.ID == sweet1.ID {
		t.Fatal("sibling sweet nodes must have distinct ids")
	}

	// Depth runs left to right.
	if !(root.X < sweet0.X && sweet0.X == sweet1.X && sweet1.X < strong.X) {
		t.Errorf("x by depth: root=%v sweet=%v/%v strong=%v", root.X, sweet0.X, sweet1.X, strong.X)
	}
	if sweet0.Y >= sweet1.Y {
		t.Errorf("siblings out of order: %v >= %v", sweet0.Y, sweet1.Y)
	}
	if math.Abs(strong.Y-sweet1.Y) > eps {
		t.Errorf("only child should line up with its parent: %v vs %v", strong.Y, sweet1.Y)
	}
}

func TestLayoutNodeStyling(t *testing.T) {
	l, _ := tasteLayout(t)
	root, sweet0, sweet1, strong := l.Nodes[0], l.Nodes[1], l.Nodes[2], l.Nodes[3]

	if root.Anchor != AnchorEnd || root.LabelDX != -rootLabelOffset {
		t.Errorf("root anchor=%s dx=%v", root.Anchor, root.LabelDX)
	}
	if sweet1.Anchor != AnchorEnd || sweet1.LabelDX >= 0 {
		t.Errorf("expanded node anchor=%s dx=%v", sweet1.Anchor, sweet1.LabelDX)
	}
	if sweet0.Anchor != AnchorStart || strong.Anchor != AnchorStart {
		t.Errorf("leaves should anchor start: %s %s", sweet0.Anchor, strong.Anchor)
	}

	if sweet0.Indicator != nil || strong.Indicator != nil {
		t.Error("nodes without children carry no glyph")
	}
	if root.Indicator == nil || root.Indicator.Glyph != GlyphExpanded {
		t.Errorf("root glyph = %+v", root.Indicator)
	}
	if sweet1.Indicator == nil || sweet1.Indicator.Glyph != GlyphExpanded {
		t.Errorf("sweet#1 glyph = %+v", sweet1.Indicator)
	}
	// The glyph baseline sits above the label's top edge.
	labelTop := sweet1.LabelDY - sweet1.FontSize
	if sweet1.Indicator.DY >= labelTop {
		t.Errorf("glyph dy %v should be above label top %v", sweet1.Indicator.DY, labelTop)
	}

	if root.FontSize != 22 || sweet0.FontSize != 19 || strong.FontSize != 16 {
		t.Errorf("font sizes %v %v %v", root.FontSize, sweet0.FontSize, strong.FontSize)
	}
}

func TestLayoutCollapsedGlyph(t *testing.T) {
	tree := testutil.TasteTree()
	l := Layout(tree, expansion.NewSet(expansion.RootPath(tree).Key()), Size{}, false)
	sweet1 := l.Nodes[2]
	if sweet1.Indicator == nil || sweet1.Indicator.Glyph != GlyphCollapsed {
		t.Errorf("collapsed node with children should show %q, got %+v", GlyphCollapsed, sweet1.Indicator)
	}
	if sweet1.Anchor != AnchorStart {
		t.Errorf("collapsed node is a visible leaf, anchor = %s", sweet1.Anchor)
	}
}

func TestLayoutSingleRootCentered(t *testing.T) {
	tree := &model.TreeNode{Word: "alone"}
	l := Layout(tree, expansion.NewSet(), Size{}, false)
	g := l.Geometry
	n := l.Nodes[0]
	if n.X != g.Margins.Left {
		t.Errorf("root x = %v, want %v", n.X, g.Margins.Left)
	}
	if math.Abs(n.Y-(g.Margins.Top+g.Inner.Height/2)) > eps {
		t.Errorf("root y = %v, want centred", n.Y)
	}
	if len(l.Links) != 0 {
		t.Errorf("links = %d", len(l.Links))
	}
}

func TestLinksAreHorizontalCurves(t *testing.T) {
	l, _ := tasteLayout(t)
	for _, ln := range l.Links {
		src, ok := l.Node(ln.SourceID)
		if !ok {
			t.Fatalf("missing source %q", ln.SourceID)
		}
		dst, _ := l.Node(ln.TargetID)
		if ln.X1 != src.X || ln.Y1 != src.Y || ln.X2 != dst.X || ln.Y2 != dst.Y {
			t.Errorf("link endpoints %+v", ln)
		}
		if ln.C1Y != ln.Y1 || ln.C2Y != ln.Y2 || ln.C1X != ln.C2X {
			t.Errorf("control points not horizontal: %+v", ln)
		}
		if d := ln.PathData(); !strings.HasPrefix(d, "M") || !strings.Contains(d, "C") {
			t.Errorf("path data %q", d)
		}
	}
}

func TestFontSizeAndLabelChars(t *testing.T) {
	tests := []struct {
		depth      int
		fullscreen bool
		size       float64
		chars      int
	}{
		{0, false, 22, 32},
		{1, false, 19, 26},
		{2, false, 16, 22},
		{3, false, 14, 18},
		{4, false, 13, 18},
		{9, false, 13, 18},
		{0, true, 26, 32},
		{9, true, 17, 18},
	}
	for _, tt := range tests {
		if got := FontSize(tt.depth, tt.fullscreen); got != tt.size {
			t.Errorf("FontSize(%d, %v) = %v, want %v", tt.depth, tt.fullscreen, got, tt.size)
		}
		if got := MaxLabelChars(tt.depth); got != tt.chars {
			t.Errorf("MaxLabelChars(%d) = %d, want %d", tt.depth, got, tt.chars)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"abcdefghij", 5, "abcd…"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := TruncateLabel(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateLabel(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestLongLabelKeepsTitle(t *testing.T) {
	long := strings.Repeat("x", 40)
	tree := &model.TreeNode{Word: long}
	n := Layout(tree, expansion.NewSet(), Size{}, false).Nodes[0]
	if n.Title != long {
		t.Error("title must keep the full word")
	}
	if !strings.HasSuffix(n.Label, labelEllipsis) || len([]rune(n.Label)) != 32 {
		t.Errorf("label = %q", n.Label)
	}
}

// Tidy-tree invariants on random trees: within each level nodes keep their
// left-to-right order without touching, parents sit midway between their
// first and last visible child, and everything stays inside the drawing area.
func TestLayoutTidyProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		depth := rapid.IntRange(1, 4).Draw(rt, "depth")
		breadth := rapid.IntRange(1, 4).Draw(rt, "breadth")
		expand := rapid.IntRange(0, depth).Draw(rt, "expand")
		fullscreen := rapid.Bool().Draw(rt, "fullscreen")

		tree := testutil.New(seed).Tree("root", depth, breadth)
		set := expansion.ExpandToDepth(tree, expand)
		v := BuildVisible(tree, set)
		l := LayoutVisible(v, Size{Width: 900, Height: 700}, fullscreen)
		g := l.Geometry

		if len(l.Nodes) != v.Count() || len(l.Links) != v.Count()-1 {
			rt.Fatalf("nodes=%d links=%d visible=%d", len(l.Nodes), len(l.Links), v.Count())
		}

		lastY := map[int]float64{}
		for _, n := range l.Nodes {
			if prev, ok := lastY[n.Depth]; ok && n.Y <= prev+eps {
				rt.Fatalf("depth %d: %q at y=%v not below previous %v", n.Depth, n.Word, n.Y, prev)
			}
			lastY[n.Depth] = n.Y
			if n.Y < g.Margins.Top-eps || n.Y > g.Margins.Top+g.Inner.Height+eps {
				rt.Fatalf("y=%v outside drawing area", n.Y)
			}
			if n.X < g.Margins.Left-eps || n.X > g.Margins.Left+g.Inner.Width+eps {
				rt.Fatalf("x=%v outside drawing area", n.X)
			}
		}

		byID := make(map[string]PositionedNode, len(l.Nodes))
		for _, n := range l.Nodes {
			byID[n.ID] = n
		}
		v.Walk(func(vn *VisibleNode) bool {
			if len(vn.Children) == 0 {
				return true
			}
			first := byID[vn.Children[0].ID]
			last := byID[vn.Children[len(vn.Children)-1].ID]
			if mid := (first.Y + last.Y) / 2; math.Abs(byID[vn.ID].Y-mid) > 1e-3 {
				rt.Fatalf("%q at y=%v, children midpoint %v", vn.Word, byID[vn.ID].Y, mid)
			}
			return true
		})
	})
}

func TestCacheMemoizes(t *testing.T) {
	tree := testutil.TasteTree()
	set := expansion.NewSet(expansion.RootPath(tree).Key())
	c := NewCache(2)

	a := c.Layout(tree, set, Size{Width: 800}, false)
	b := c.Layout(tree, set, Size{Width: 800}, false)
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	if len(a.Nodes) != len(b.Nodes) || a.Geometry != b.Geometry {
		t.Error("cached layout differs")
	}

	c.Layout(tree, expansion.NewSet(), Size{Width: 800}, false)
	c.Layout(tree, set, Size{Width: 800}, true)
	if c.Len() != 2 {
		t.Errorf("len = %d, want capacity 2", c.Len())
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("len after purge = %d", c.Len())
	}
}
