// Package expansion tracks which nodes of a word tree are expanded.
//
// Nodes are identified by their path from the root, never by their word,
// because the same word may appear at many positions in one tree. A path
// segment is the node's word plus its ordinal among earlier siblings with
// the same word, so two sibling "sweet" nodes get distinct identities while
// paths of uniquely named nodes read as plain word paths.
package expansion

import (
	"strconv"
	"strings"

	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Separators used in path keys. Neither is expected in word text.
const (
	segmentSep = "\x1f"
	ordinalSep = "\x1e"
)

// Segment is one step of a Path.
type Segment struct {
	Word    string
	Ordinal int // index among earlier siblings sharing Word
}

// Path is the ordered list of segments from the root to a node, inclusive.
type Path []Segment

// Child returns a new path extended by one segment. p is not modified.
func (p Path) Child(word string, ordinal int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Word: word, Ordinal: ordinal})
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Leaf returns the last segment's word, or "" for the empty path.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1].Word
}

// Words returns the words along the path.
func (p Path) Words() []string {
	words := make([]string, len(p))
	for i, s := range p {
		words[i] = s.Word
	}
	return words
}

// Key encodes the path as a stable string.
func (p Path) Key() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteString(segmentSep)
		}
		sb.WriteString(s.Word)
		if s.Ordinal > 0 {
			sb.WriteString(ordinalSep)
			sb.WriteString(strconv.Itoa(s.Ordinal))
		}
	}
	return sb.String()
}

// String renders the path for humans, e.g. "taste > sweet#2".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.Word
		if s.Ordinal > 0 {
			parts[i] += "#" + strconv.Itoa(s.Ordinal+1)
		}
	}
	return strings.Join(parts, " > ")
}

// NodeID returns the identity of the first node named word under prefix.
// Use Locate for nodes that may have same-named earlier siblings.
func NodeID(word string, prefix Path) string {
	return prefix.Child(word, 0).Key()
}

// ChildPaths returns the path of each child of node, where path is node's
// own path. Ordinals count earlier siblings with the same word.
func ChildPaths(node *model.TreeNode, path Path) []Path {
	if node == nil || len(node.Children) == 0 {
		return nil
	}
	seen := make(map[string]int, len(node.Children))
	out := make([]Path, len(node.Children))
	for i, c := range node.Children {
		word := ""
		if c != nil {
			word = c.Word
		}
		out[i] = path.Child(word, seen[word])
		seen[word]++
	}
	return out
}

// Locate returns node's own path, given the path of its parent within root.
// An empty prefix addresses root itself. Nodes are matched by identity, so
// same-named siblings resolve to their own ordinals.
func Locate(root, node *model.TreeNode, prefix Path) (Path, bool) {
	if root == nil || node == nil {
		return nil, false
	}
	if len(prefix) == 0 {
		if node != root {
			return nil, false
		}
		return RootPath(root), true
	}
	parent := Find(root, prefix)
	if parent == nil {
		return nil, false
	}
	for i, cp := range ChildPaths(parent, prefix) {
		if parent.Children[i] == node {
			return cp, true
		}
	}
	return nil, false
}

// RootPath returns the path of a tree's root node.
func RootPath(root *model.TreeNode) Path {
	if root == nil {
		return nil
	}
	return Path{{Word: root.Word}}
}

// Find walks tree along path and returns the node it names, or nil.
func Find(root *model.TreeNode, path Path) *model.TreeNode {
	if root == nil || len(path) == 0 || path[0].Word != root.Word || path[0].Ordinal != 0 {
		return nil
	}
	node := root
	for _, seg := range path[1:] {
		var next *model.TreeNode
		n := 0
		for _, c := range node.Children {
			if c == nil || c.Word != seg.Word {
				continue
			}
			if n == seg.Ordinal {
				next = c
				break
			}
			n++
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}
