package treelayout

// Buchheim, Jünger and Leipert's linear-time variant of the Reingold-Tilford
// tidy tree. Coordinates come out in separation units; tidy rescales them
// into the drawing area afterwards.

type tidyNode struct {
	v        *VisibleNode
	parent   *tidyNode
	children []*tidyNode
	index    int

	ancestor *tidyNode // default ancestor, only meaningful on parents
	a        *tidyNode
	thread   *tidyNode
	prelim   float64
	mod      float64
	change   float64
	shift    float64
	x        float64
}

type separationFunc func(a, b *VisibleNode) float64

// tidyPlacement is the breadth and depth position of one node inside a
// drawing area of the given size.
type tidyPlacement struct {
	Breadth float64
	Depth   float64
}

// tidy positions every node of root. Depth grows along depthSize and
// siblings spread along breadth.
func tidy(root *VisibleNode, breadth, depthSize float64, sep separationFunc) map[*VisibleNode]tidyPlacement {
	if root == nil {
		return nil
	}
	sentinel := &tidyNode{}
	sentinel.a = sentinel
	t := buildTidy(root, sentinel, 0)
	sentinel.children = []*tidyNode{t}

	postOrder(t, func(n *tidyNode) { firstWalk(n, sep) })
	sentinel.mod = -t.prelim
	preOrder(t, secondWalk)

	left, right := t, t
	maxDepth := 0
	preOrder(t, func(n *tidyNode) {
		if n.x < left.x {
			left = n
		}
		if n.x > right.x {
			right = n
		}
		if n.v.Depth > maxDepth {
			maxDepth = n.v.Depth
		}
	})

	s := 1.0
	if left != right {
		s = sep(left.v, right.v) / 2
	}
	tx := s - left.x
	kx := breadth / (right.x + s + tx)
	levels := maxDepth
	if levels < 1 {
		levels = 1
	}
	ky := depthSize / float64(levels)

	out := make(map[*VisibleNode]tidyPlacement, root.Count())
	preOrder(t, func(n *tidyNode) {
		out[n.v] = tidyPlacement{
			Breadth: (n.x + tx) * kx,
			Depth:   float64(n.v.Depth) * ky,
		}
	})
	return out
}

func buildTidy(v *VisibleNode, parent *tidyNode, index int) *tidyNode {
	t := &tidyNode{v: v, parent: parent, index: index}
	t.a = t
	if len(v.Children) > 0 {
		t.children = make([]*tidyNode, len(v.Children))
		for i, c := range v.Children {
			t.children[i] = buildTidy(c, t, i)
		}
	}
	return t
}

func postOrder(n *tidyNode, fn func(*tidyNode)) {
	for _, c := range n.children {
		postOrder(c, fn)
	}
	fn(n)
}

func preOrder(n *tidyNode, fn func(*tidyNode)) {
	fn(n)
	for _, c := range n.children {
		preOrder(c, fn)
	}
}

func firstWalk(v *tidyNode, sep separationFunc) {
	siblings := v.parent.children
	var w *tidyNode
	if v.index > 0 {
		w = siblings[v.index-1]
	}
	if len(v.children) > 0 {
		executeShifts(v)
		mid := (v.children[0].prelim + v.children[len(v.children)-1].prelim) / 2
		if w != nil {
			v.prelim = w.prelim + sep(v.v, w.v)
			v.mod = v.prelim - mid
		} else {
			v.prelim = mid
		}
	} else if w != nil {
		v.prelim = w.prelim + sep(v.v, w.v)
	}
	def := v.parent.ancestor
	if def == nil {
		def = siblings[0]
	}
	v.parent.ancestor = apportion(v, w, def, sep)
}

func secondWalk(v *tidyNode) {
	v.x = v.prelim + v.parent.mod
	v.mod += v.parent.mod
}

// apportion pushes the subtree rooted at v right until its left contour
// clears the right contour of the subtrees to its left.
func apportion(v, w, ancestor *tidyNode, sep separationFunc) *tidyNode {
	if w == nil {
		return ancestor
	}
	vip, vop := v, v
	vim := w
	vom := v.parent.children[0]
	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod

	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.a = v
		shift := vim.prelim + sim - vip.prelim - sip + sep(vim.v, vip.v)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}

	if vim != nil && nextRight(vop) == nil {
		vop.thread = vim
		vop.mod += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.thread = vip
		vom.mod += sip - som
		ancestor = v
	}
	return ancestor
}

func nextLeft(v *tidyNode) *tidyNode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func nextRight(v *tidyNode) *tidyNode {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.thread
}

func moveSubtree(wm, wp *tidyNode, shift float64) {
	change := shift / float64(wp.index-wm.index)
	wp.change -= change
	wp.shift += shift
	wm.change += change
	wp.prelim += shift
	wp.mod += shift
}

func executeShifts(v *tidyNode) {
	shift, change := 0.0, 0.0
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.prelim += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}

func nextAncestor(vim, v, ancestor *tidyNode) *tidyNode {
	if vim.a.parent == v.parent {
		return vim.a
	}
	return ancestor
}
