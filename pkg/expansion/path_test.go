package expansion

import (
	"testing"

	"github.com/vanderheijden86/wordtree/pkg/testutil"
)

func TestNodeIDCombinesPrefixAndWord(t *testing.T) {
	root := NodeID("taste", nil)
	child := NodeID("sweet", Path{{Word: "taste"}})
	if root == child {
		t.Fatal("root and child ids must differ")
	}
	if NodeID("sweet", Path{{Word: "taste"}}) != child {
		t.Error("NodeID must be deterministic")
	}
	if NodeID("sweet", Path{{Word: "smell"}}) == child {
		t.Error("same word under different prefixes must differ")
	}
}

func TestPathChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Segment{Word: "taste"}
	a := base.Child("sweet", 0)
	b := base.Child("bitter", 0)
	if a.Leaf() != "sweet" || b.Leaf() != "bitter" {
		t.Errorf("children alias each other: %v %v", a, b)
	}
}

func TestChildPathsOrdinals(t *testing.T) {
	tree := testutil.TasteTree()
	paths := ChildPaths(tree, RootPath(tree))
	if len(paths) != 2 {
		t.Fatalf("expected 2 child paths, got %d", len(paths))
	}
	if paths[0].Key() == paths[1].Key() {
		t.Fatal("duplicate sibling words must get distinct keys")
	}
	if paths[0][1].Ordinal != 0 || paths[1][1].Ordinal != 1 {
		t.Errorf("unexpected ordinals: %v %v", paths[0], paths[1])
	}
	if paths[1].String() != "taste > sweet#2" {
		t.Errorf("String() = %q", paths[1].String())
	}
}

func TestFind(t *testing.T) {
	tree := testutil.TasteTree()
	second := ChildPaths(tree, RootPath(tree))[1]
	node := Find(tree, second)
	if node == nil || len(node.Children) != 1 {
		t.Fatalf("expected to find the second sweet, got %+v", node)
	}
	strong := ChildPaths(node, second)[0]
	if got := Find(tree, strong); got == nil || got.Word != "strong" {
		t.Errorf("expected strong, got %+v", got)
	}
	if Find(tree, Path{{Word: "smell"}}) != nil {
		t.Error("expected nil for wrong root")
	}
	if Find(tree, RootPath(tree).Child("sweet", 5)) != nil {
		t.Error("expected nil for missing ordinal")
	}
}

func TestLocate(t *testing.T) {
	tree := testutil.TasteTree()
	root := RootPath(tree)

	if p, ok := Locate(tree, tree, nil); !ok || p.Key() != root.Key() {
		t.Errorf("root: got %v, %v", p, ok)
	}
	p, ok := Locate(tree, tree.Children[1], root)
	if !ok || p.Key() != root.Child("sweet", 1).Key() {
		t.Errorf("second sweet: got %v, %v", p, ok)
	}
	if _, ok := Locate(tree, tree.Children[0], nil); ok {
		t.Error("a child with an empty prefix is not the root")
	}
	if _, ok := Locate(nil, tree, nil); ok {
		t.Error("nil root must not resolve")
	}
}
