package expansion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/wordtree/pkg/model"
	"github.com/vanderheijden86/wordtree/pkg/testutil"
)

func TestResetYieldsOnlyRoot(t *testing.T) {
	tree := testutil.TasteTree()
	st := NewStore()
	st.Load(&model.TreeNode{Word: "old", Children: []*model.TreeNode{{Word: "x"}}})
	st.ToggleAt(&model.TreeNode{Word: "x"}, Path{{Word: "old"}, {Word: "x"}})

	set := st.Reset("taste")
	if set.Len() != 1 || !set.Has(NodeID("taste", nil)) {
		t.Errorf("expected exactly the root id, got %q", set.IDs())
	}

	st.Load(tree)
	st.Toggle(tree.Children[0], RootPath(tree))
	set = st.Reset("taste")
	if set.Len() != 1 || !set.Has(NodeID("taste", nil)) {
		t.Errorf("expected exactly the root id, got %q", set.IDs())
	}
	if !st.IsExpanded(tree, nil) {
		t.Error("root should be expanded after reset")
	}
}

func TestToggleExpandsOnlyTheNode(t *testing.T) {
	tree := testutil.NewDefault().Tree("root", 3, 2)
	st := NewStore()
	st.Load(tree)

	child := tree.Children[0]
	st.Toggle(child, RootPath(tree))
	if !st.IsExpanded(child, RootPath(tree)) {
		t.Fatal("child should be expanded")
	}
	for _, gp := range ChildPaths(child, RootPath(tree).Child(child.Word, 0)) {
		if st.IsExpandedAt(gp) {
			t.Errorf("grandchild %v should start collapsed", gp)
		}
	}
}

func TestCollapseRemovesDescendantsAlongPath(t *testing.T) {
	tree := &model.TreeNode{Word: "taste", Children: []*model.TreeNode{
		{Word: "sweet", Children: []*model.TreeNode{
			{Word: "strong", Children: []*model.TreeNode{{Word: "aroma"}}},
		}},
		{Word: "strong", Children: []*model.TreeNode{{Word: "aroma"}}},
	}}
	root := RootPath(tree)
	sweetPath := root.Child("sweet", 0)
	innerStrong := sweetPath.Child("strong", 0)
	outerStrong := root.Child("strong", 0)

	s := NewSet(root.Key())
	s = ToggleAt(s, tree.Children[0], sweetPath)
	s = ToggleAt(s, tree.Children[0].Children[0], innerStrong)
	s = ToggleAt(s, tree.Children[1], outerStrong)

	s = ToggleAt(s, tree.Children[0], sweetPath) // collapse sweet
	if s.Has(sweetPath.Key()) || s.Has(innerStrong.Key()) {
		t.Error("collapse must remove the node and its descendants")
	}
	if !s.Has(outerStrong.Key()) {
		t.Error("collapse must not touch the same-named node elsewhere")
	}

	s = ToggleAt(s, tree.Children[0], sweetPath) // re-expand
	if s.Has(innerStrong.Key()) {
		t.Error("re-expanding must start descendants collapsed")
	}
}

func TestSameWordDifferentPathsAreIndependent(t *testing.T) {
	tree := &model.TreeNode{Word: "taste", Children: []*model.TreeNode{
		{Word: "sweet", Children: []*model.TreeNode{{Word: "fruit"}}},
		{Word: "bitter", Children: []*model.TreeNode{
			{Word: "sweet", Children: []*model.TreeNode{{Word: "after"}}},
		}},
	}}
	st := NewStore()
	st.Load(tree)
	st.Toggle(tree.Children[0], RootPath(tree))

	bitter := RootPath(tree).Child("bitter", 0)
	if st.IsExpanded(tree.Children[1].Children[0], bitter) {
		t.Error("expanding taste>sweet must not expand taste>bitter>sweet")
	}
	if !st.IsExpanded(tree.Children[0], RootPath(tree)) {
		t.Error("taste>sweet should be expanded")
	}
}

func TestDuplicateSiblingsAreIndependent(t *testing.T) {
	tree := testutil.TasteTree()
	paths := ChildPaths(tree, RootPath(tree))
	st := NewStore()
	st.Reset("taste")
	st.ToggleAt(tree.Children[0], paths[0])

	if !st.IsExpandedAt(paths[0]) {
		t.Fatal("first sweet should be expanded")
	}
	if st.IsExpandedAt(paths[1]) {
		t.Error("second sweet must stay collapsed")
	}
}

func TestToggleResolvesDuplicateSiblingByPosition(t *testing.T) {
	tree := testutil.TasteTree()
	root := RootPath(tree)
	first, second := tree.Children[0], tree.Children[1]
	st := NewStore()
	st.Load(tree)

	st.Toggle(second, root)
	if !st.IsExpanded(second, root) {
		t.Fatal("second sweet should be expanded")
	}
	if st.IsExpanded(first, root) {
		t.Fatal("first sweet must stay collapsed")
	}
	if !st.IsExpandedAt(root.Child("sweet", 1)) {
		t.Errorf("expected the ordinal 1 id, got %q", st.Set().IDs())
	}

	// Expand the second sweet's child, then collapse the first sweet: the
	// second subtree is untouched.
	secondPath := root.Child("sweet", 1)
	st.Toggle(second.Children[0], secondPath)
	st.Toggle(first, root)
	st.Toggle(first, root)
	if !st.IsExpanded(second.Children[0], secondPath) || !st.IsExpanded(second, root) {
		t.Errorf("toggling the first sweet touched the second: %q", st.Set().IDs())
	}

	st.Toggle(second, root)
	if st.IsExpandedAt(secondPath.Child("strong", 0)) {
		t.Error("collapsing the second sweet must drop its descendants")
	}
}

func TestToggleIgnoresNodesOutsidePrefix(t *testing.T) {
	tree := testutil.TasteTree()
	s := NewSet(RootPath(tree).Key())
	stray := &model.TreeNode{Word: "sweet"}
	if got := Toggle(s, tree, stray, RootPath(tree)); !got.Equal(s) {
		t.Errorf("a node that is not a child must not change the set, got %q", got.IDs())
	}
	if got := Toggle(s, tree, tree.Children[0], Path{{Word: "nope"}}); !got.Equal(s) {
		t.Errorf("an unknown prefix must not change the set, got %q", got.IDs())
	}
}

func TestSetKeyIsUnambiguous(t *testing.T) {
	a := NewSet("x\ny", "z")
	b := NewSet("x", "y\nz")
	if a.Key() == b.Key() {
		t.Errorf("different sets share key %q", a.Key())
	}
	if NewSet("a", "b").Key() != NewSet("b", "a").Key() {
		t.Error("key must not depend on insertion order")
	}
}

func TestSetsAreImmutable(t *testing.T) {
	tree := testutil.TasteTree()
	st := NewStore()
	before := st.Reset("taste")
	after := st.ToggleAt(tree.Children[1], ChildPaths(tree, RootPath(tree))[1])
	if before.Len() != 1 {
		t.Errorf("old snapshot changed: %v", before.IDs())
	}
	if after.Equal(before) {
		t.Error("expected a different set after toggle")
	}
}

func TestExpandToDepth(t *testing.T) {
	tree := testutil.NewDefault().Tree("root", 3, 2)
	if got := ExpandToDepth(tree, 0).Len(); got != 1 {
		t.Errorf("depth 0: expected 1 id, got %d", got)
	}
	if got := ExpandToDepth(tree, 1).Len(); got != 3 {
		t.Errorf("depth 1: expected 3 ids, got %d", got)
	}
	// Level 3 nodes are leaves and never need expanding.
	if got := ExpandToDepth(tree, 5).Len(); got != 7 {
		t.Errorf("depth 5: expected 7 ids, got %d", got)
	}
}

// allPaths lists every node in tree with its path.
func allPaths(tree *model.TreeNode) ([]*model.TreeNode, []Path) {
	var nodes []*model.TreeNode
	var paths []Path
	var walk func(n *model.TreeNode, p Path)
	walk = func(n *model.TreeNode, p Path) {
		nodes = append(nodes, n)
		paths = append(paths, p)
		for i, cp := range ChildPaths(n, p) {
			walk(n.Children[i], cp)
		}
	}
	walk(tree, RootPath(tree))
	return nodes, paths
}

func TestToggleTwiceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		tree := testutil.New(seed).Tree("root", rapid.IntRange(1, 4).Draw(t, "depth"), rapid.IntRange(1, 3).Draw(t, "breadth"))
		nodes, paths := allPaths(tree)

		s := NewSet(RootPath(tree).Key())
		for i := rapid.IntRange(0, 10).Draw(t, "warmup"); i > 0; i-- {
			k := rapid.IntRange(0, len(nodes)-1).Draw(t, "warm")
			s = ToggleAt(s, nodes[k], paths[k])
		}

		k := rapid.IntRange(0, len(nodes)-1).Draw(t, "target")
		id := paths[k].Key()
		once := ToggleAt(s, nodes[k], paths[k])
		twice := ToggleAt(once, nodes[k], paths[k])

		if twice.Has(id) != s.Has(id) {
			t.Fatalf("membership of %q not restored", id)
		}
		if once.Has(id) == s.Has(id) {
			t.Fatalf("single toggle did not flip %q", id)
		}

		descendants := map[string]struct{}{}
		collectDescendants(nodes[k], paths[k], descendants)
		var want []string
		for _, prior := range s.IDs() {
			if _, isDesc := descendants[prior]; !isDesc {
				want = append(want, prior)
			}
		}
		if diff := cmp.Diff(want, twice.IDs(), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("toggle twice changed more than descendants (-want +got):\n%s", diff)
		}
	})
}
