package expansion

import (
	"sync"

	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Toggle flips node's expansion state given its path prefix (the path of
// its parent within root) and returns the new set. The node's ordinal comes
// from its position among its parent's children, so a second sibling with
// the same word gets its own identity. A node that is not a child of the
// node at prefix leaves s unchanged.
func Toggle(s Set, root, node *model.TreeNode, prefix Path) Set {
	path, ok := Locate(root, node, prefix)
	if !ok {
		return s
	}
	return ToggleAt(s, node, path)
}

// ToggleAt flips the expansion state of node, whose own path is path.
//
// Expanding adds only the node; its children stay collapsed. Collapsing
// removes the node and every descendant reached by walking node.Children
// with extended paths, so same-named nodes elsewhere in the tree keep their
// state and re-expanding later starts with the descendants collapsed.
func ToggleAt(s Set, node *model.TreeNode, path Path) Set {
	if node == nil || len(path) == 0 {
		return s
	}
	id := path.Key()
	if !s.Has(id) {
		return s.with(id, nil)
	}
	drop := map[string]struct{}{id: {}}
	collectDescendants(node, path, drop)
	return s.with("", drop)
}

func collectDescendants(node *model.TreeNode, path Path, into map[string]struct{}) {
	for i, cp := range ChildPaths(node, path) {
		into[cp.Key()] = struct{}{}
		collectDescendants(node.Children[i], cp, into)
	}
}

// Store holds the current expansion set for one loaded tree. Each mutation
// swaps in a new immutable Set, so callers may keep and diff old snapshots.
type Store struct {
	mu   sync.RWMutex
	root *model.TreeNode
	set  Set
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{set: NewSet()}
}

// Set returns the current snapshot.
func (st *Store) Set() Set {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.set
}

// Load binds the store to root and resets the set to the root's identity.
func (st *Store) Load(root *model.TreeNode) Set {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.root = root
	if root == nil {
		st.set = NewSet()
		return st.set
	}
	st.set = NewSet(NodeID(root.Word, nil))
	return st.set
}

// Reset replaces the set with just the root's identity. The bound tree is
// kept only if its root has that word.
func (st *Store) Reset(rootWord string) Set {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.root != nil && st.root.Word != rootWord {
		st.root = nil
	}
	st.set = NewSet(NodeID(rootWord, nil))
	return st.set
}

// Clear empties the set and unbinds the tree.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.root = nil
	st.set = NewSet()
}

// Toggle flips node under prefix within the loaded tree; see the
// package-level Toggle. Without a loaded tree nothing changes.
func (st *Store) Toggle(node *model.TreeNode, prefix Path) Set {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.set = Toggle(st.set, st.root, node, prefix)
	return st.set
}

// ToggleAt flips node at its full path; see the package-level ToggleAt.
func (st *Store) ToggleAt(node *model.TreeNode, path Path) Set {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.set = ToggleAt(st.set, node, path)
	return st.set
}

// IsExpanded reports whether node, a child of the node at prefix in the
// loaded tree, is expanded. The root is addressed with an empty prefix.
func (st *Store) IsExpanded(node *model.TreeNode, prefix Path) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	path, ok := Locate(st.root, node, prefix)
	return ok && st.set.Has(path.Key())
}

// IsExpandedAt reports whether the node at path is expanded.
func (st *Store) IsExpandedAt(path Path) bool {
	return st.Set().Has(path.Key())
}

// ExpandToDepth returns a set where every node with children is expanded down
// to the given number of levels below the root.
func ExpandToDepth(root *model.TreeNode, levels int) Set {
	if root == nil {
		return NewSet()
	}
	var ids []string
	var walk func(n *model.TreeNode, p Path, depth int)
	walk = func(n *model.TreeNode, p Path, depth int) {
		if depth > levels {
			return
		}
		ids = append(ids, p.Key())
		for i, cp := range ChildPaths(n, p) {
			if len(n.Children[i].Children) > 0 {
				walk(n.Children[i], cp, depth+1)
			}
		}
	}
	walk(root, RootPath(root), 0)
	return NewSet(ids...)
}
