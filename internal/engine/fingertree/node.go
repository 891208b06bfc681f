package fingertree

// Tree structure constants
const (
	// MaxDigit is the maximum number of nodes in a digit.
	MaxDigit = 4

	// MinArity and MaxArity bound the children of an inner node.
	MinArity = 2
	MaxArity = 3
)

// node is a node of the finger tree.
// Leaves (children == nil) hold exactly one element.
// Inner nodes hold 2 or 3 children of equal depth.
//
// Nodes of every depth share this one type: the middle tree of a depth-d
// tree holds depth-(d+1) nodes, so depth is implied by where a node sits.
type node[T any] struct {
	size     int        // Leaf count of the subtree
	children []*node[T] // Child nodes (inner only)
	value    T          // Stored element (leaf only)
}

// newLeaf creates a leaf holding v.
func newLeaf[T any](v T) *node[T] {
	return &node[T]{size: 1, value: v}
}

// newNode2 creates an inner node with two children.
func newNode2[T any](a, b *node[T]) *node[T] {
	return &node[T]{
		size:     a.size + b.size,
		children: []*node[T]{a, b},
	}
}

// newNode3 creates an inner node with three children.
func newNode3[T any](a, b, c *node[T]) *node[T] {
	return &node[T]{
		size:     a.size + b.size + c.size,
		children: []*node[T]{a, b, c},
	}
}

// isLeaf returns true if this is a leaf node.
func (n *node[T]) isLeaf() bool {
	return n.children == nil
}

// arity returns the number of children, or 1 for a leaf.
func (n *node[T]) arity() int {
	if n.isLeaf() {
		return 1
	}
	return len(n.children)
}

// findChild finds the child containing leaf position pos.
// Returns the child index and the position within that child.
func (n *node[T]) findChild(pos int) (int, int) {
	last := len(n.children) - 1
	for i := 0; i < last; i++ {
		sz := n.children[i].size
		if pos < sz {
			return i, pos
		}
		pos -= sz
	}
	return last, pos
}

// set returns a copy of the subtree with the element at pos replaced by v.
// Only the nodes on the path to the leaf are copied.
func (n *node[T]) set(pos int, v T) *node[T] {
	if n.isLeaf() {
		return newLeaf(v)
	}
	idx, sub := n.findChild(pos)
	children := make([]*node[T], len(n.children))
	copy(children, n.children)
	children[idx] = children[idx].set(sub, v)
	return &node[T]{size: n.size, children: children}
}

// reverse returns the subtree with its leaf order reversed.
func (n *node[T]) reverse() *node[T] {
	if n.isLeaf() {
		return n
	}
	k := len(n.children)
	children := make([]*node[T], k)
	for i, child := range n.children {
		children[k-1-i] = child.reverse()
	}
	return &node[T]{size: n.size, children: children}
}

// appendTo appends all elements of the subtree to dst.
func (n *node[T]) appendTo(dst []T) []T {
	if n.isLeaf() {
		return append(dst, n.value)
	}
	for _, child := range n.children {
		dst = child.appendTo(dst)
	}
	return dst
}

// groupNodes packs 2 or more nodes into a sequence of 2- and 3-nodes,
// preserving order. Three nodes are preferred; the tail is either a single
// 3-node, a 2-node, or two 2-nodes.
func groupNodes[T any](ns []*node[T]) []*node[T] {
	if len(ns) < MinArity {
		panic("fingertree: cannot group fewer than two nodes")
	}
	out := make([]*node[T], 0, (len(ns)+2)/3)
	for {
		switch len(ns) {
		case 2:
			return append(out, newNode2(ns[0], ns[1]))
		case 3:
			return append(out, newNode3(ns[0], ns[1], ns[2]))
		case 4:
			return append(out, newNode2(ns[0], ns[1]), newNode2(ns[2], ns[3]))
		}
		out = append(out, newNode3(ns[0], ns[1], ns[2]))
		ns = ns[3:]
	}
}
