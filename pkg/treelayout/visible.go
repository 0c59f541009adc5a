// Package treelayout sizes and positions the visible part of a word tree.
//
// The pipeline is: BuildVisible filters the full tree down to the nodes
// reachable through expanded nodes, ComputeGeometry sizes the canvas from
// that subset, and Layout runs a tidy-tree pass to assign coordinates.
package treelayout

import (
	"github.com/vanderheijden86/wordtree/pkg/expansion"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

// VisibleNode is a node of the visible hierarchy. It is rebuilt from the
// source tree and the expansion set on every change.
type VisibleNode struct {
	Word        string
	Path        expansion.Path
	ID          string
	Depth       int
	Expanded    bool
	HasChildren bool // the source node has children, visible or not
	Source      *model.TreeNode
	Parent      *VisibleNode
	Children    []*VisibleNode
}

// BuildVisible returns the visible hierarchy of root under set: children are
// included only for nodes whose path is in set.
func BuildVisible(root *model.TreeNode, set expansion.Set) *VisibleNode {
	if root == nil {
		return nil
	}
	return buildVisible(root, expansion.RootPath(root), nil, 0, set)
}

func buildVisible(n *model.TreeNode, path expansion.Path, parent *VisibleNode, depth int, set expansion.Set) *VisibleNode {
	id := path.Key()
	v := &VisibleNode{
		Word:        n.Word,
		Path:        path,
		ID:          id,
		Depth:       depth,
		Expanded:    set.Has(id),
		HasChildren: len(n.Children) > 0,
		Source:      n,
		Parent:      parent,
	}
	if !v.Expanded {
		return v
	}
	for i, cp := range expansion.ChildPaths(n, path) {
		child := n.Children[i]
		if child == nil {
			continue
		}
		v.Children = append(v.Children, buildVisible(child, cp, v, depth+1, set))
	}
	return v
}

// Walk visits v and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (v *VisibleNode) Walk(fn func(*VisibleNode) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	for _, c := range v.Children {
		c.Walk(fn)
	}
}

// Flatten returns the visible nodes in pre-order.
func (v *VisibleNode) Flatten() []*VisibleNode {
	var out []*VisibleNode
	v.Walk(func(n *VisibleNode) bool {
		out = append(out, n)
		return true
	})
	return out
}

// Count returns the number of visible nodes.
func (v *VisibleNode) Count() int {
	if v == nil {
		return 0
	}
	total := 1
	for _, c := range v.Children {
		total += c.Count()
	}
	return total
}

// Levels returns the number of visible levels (1 for a lone root).
func (v *VisibleNode) Levels() int {
	if v == nil {
		return 0
	}
	deepest := 0
	for _, c := range v.Children {
		if l := c.Levels(); l > deepest {
			deepest = l
		}
	}
	return deepest + 1
}
