package model

import "testing"

func TestFilterCriteriaKeyIgnoresOrderAndCase(t *testing.T) {
	a := FilterCriteria{Sources: []string{"Amazon", "tmall "}, Category: "Coffee"}
	b := FilterCriteria{Sources: []string{"tmall", "amazon"}, Category: "coffee"}
	if a.Key() != b.Key() {
		t.Errorf("expected equal keys, got %q and %q", a.Key(), b.Key())
	}
	c := FilterCriteria{Sources: []string{"amazon"}}
	if a.Key() == c.Key() {
		t.Errorf("expected different keys for different criteria")
	}
}

func TestFilterCriteriaMatching(t *testing.T) {
	f := FilterCriteria{Sources: []string{"amazon"}, Category: "coffee"}
	if !f.MatchesSource("Amazon") || f.MatchesSource("tmall") {
		t.Error("source matching is wrong")
	}
	if !f.MatchesCategory("COFFEE") || f.MatchesCategory("tea") {
		t.Error("category matching is wrong")
	}
	var empty FilterCriteria
	if !empty.MatchesSource("anything") || !empty.MatchesCategory("anything") {
		t.Error("empty criteria should match everything")
	}
}

func TestTreeNodeCountAndDepth(t *testing.T) {
	root := &TreeNode{Word: "taste", Children: []*TreeNode{
		{Word: "sweet"},
		{Word: "sweet", Children: []*TreeNode{{Word: "strong"}}},
	}}
	if got := root.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if got := root.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	var nilNode *TreeNode
	if nilNode.Count() != 0 || nilNode.Depth() != 0 {
		t.Error("nil node should have zero count and depth")
	}
}
