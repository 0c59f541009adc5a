package treelayout

import (
	"testing"

	"github.com/vanderheijden86/wordtree/pkg/expansion"
	"github.com/vanderheijden86/wordtree/pkg/testutil"
)

func TestBuildVisibleRootOnly(t *testing.T) {
	tree := testutil.TasteTree()
	v := BuildVisible(tree, expansion.NewSet())

	if v.Count() != 1 || v.Levels() != 1 {
		t.Fatalf("collapsed root: count=%d levels=%d, want 1/1", v.Count(), v.Levels())
	}
	if v.Expanded || !v.HasChildren {
		t.Errorf("root: expanded=%v hasChildren=%v", v.Expanded, v.HasChildren)
	}
}

func TestBuildVisibleDuplicateSiblings(t *testing.T) {
	tree := testutil.TasteTree()
	root := expansion.RootPath(tree)
	set := expansion.NewSet(root.Key())
	set = expansion.ToggleAt(set, tree.Children[1], root.Child("sweet", 1))

	v := BuildVisible(tree, set)
	if got := v.Count(); got != 4 {
		t.Fatalf("count = %d, want 4", got)
	}
	if got := v.Levels(); got != 3 {
		t.Errorf("levels = %d, want 3", got)
	}

	first, second := v.Children[0], v.Children[1]
	if first.ID == second.ID {
		t.Fatalf("duplicate siblings share id %q", first.ID)
	}
	if first.Expanded || len(first.Children) != 0 {
		t.Error("first sweet should stay collapsed")
	}
	if !second.Expanded || len(second.Children) != 1 || second.Children[0].Word != "strong" {
		t.Errorf("second sweet should show strong, got %+v", second.Children)
	}
	if second.Children[0].Parent != second || second.Parent != v {
		t.Error("parent links not set")
	}
	if second.Children[0].Depth != 2 {
		t.Errorf("strong depth = %d, want 2", second.Children[0].Depth)
	}
}

func TestBuildVisibleSkipsDescendantsOfCollapsed(t *testing.T) {
	tree := testutil.NewDefault().Tree("root", 4, 3)
	// Expand a grandchild id without its parent: it must not surface.
	root := expansion.RootPath(tree)
	childPath := root.Child(tree.Children[0].Word, 0)
	grand := expansion.ChildPaths(tree.Children[0], childPath)[0]
	set := expansion.NewSet(root.Key(), grand.Key())

	v := BuildVisible(tree, set)
	if got, want := v.Count(), 1+len(tree.Children); got != want {
		t.Errorf("count = %d, want %d", got, want)
	}
}

func TestFlattenPreOrder(t *testing.T) {
	tree := testutil.TasteTree()
	v := BuildVisible(tree, expansion.ExpandToDepth(tree, 5))

	var words []string
	for _, n := range v.Flatten() {
		words = append(words, n.Word)
	}
	want := []string{"taste", "sweet", "sweet", "strong"}
	if len(words) != len(want) {
		t.Fatalf("flatten = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("flatten = %v, want %v", words, want)
		}
	}
}

func TestBuildVisibleNil(t *testing.T) {
	if v := BuildVisible(nil, expansion.NewSet()); v != nil {
		t.Errorf("expected nil, got %+v", v)
	}
	var v *VisibleNode
	if v.Count() != 0 || v.Levels() != 0 {
		t.Error("nil hierarchy should be empty")
	}
}
