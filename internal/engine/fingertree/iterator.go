package fingertree

// nodeFrame is an inner node on the iterator's descent path together with
// the index of the child currently selected.
type nodeFrame[T any] struct {
	node *node[T]
	pos  int
}

// Iterator is a bidirectional cursor over the elements of a Tree.
//
// It keeps an explicit stack of the deep trees it is inside and of the inner
// nodes above the current leaf, so stepping only touches the levels that
// actually change. Next and Previous are amortized O(1).
//
// An Iterator never modifies the tree and is not safe for concurrent use;
// any number of iterators may walk the same tree concurrently.
type Iterator[T any] struct {
	n     int // Size of the tree
	index int // Index of the element returned by the next call to Next

	// Stack of deep trees; the last entry is the innermost one.
	trees []*deepTree[T]
	// Position of the current node inside the innermost deep tree:
	// negative values select left[len(left)+deepPos], zero selects the single
	// node of a singleton middle tree, positive values select
	// right[deepPos-1].
	deepPos int

	// Inner nodes between the current digit node and the leaf.
	nodes []nodeFrame[T]

	leaf    *node[T] // Current leaf
	leafPos int      // Position inside the current leaf (0 or 1)
}

// Iterator returns a cursor positioned before the element at index start.
// The start index is clamped to [0, Len()], so Iterator(Len()) yields a
// cursor at the end whose Previous returns the last element.
func (t Tree[T]) Iterator(start int) *Iterator[T] {
	n := t.Len()
	index := max(0, min(start, n))
	it := &Iterator[T]{
		n:     n,
		index: index,
		trees: make([]*deepTree[T], 0, 8),
		nodes: make([]nodeFrame[T], 0, 8),
	}
	if n == 0 {
		return it
	}

	// Position of the leaf to stand on; at the end that is the last leaf.
	pos := min(index, n-1)

	var entry *node[T]
	switch root := t.root.(type) {
	case *singleTree[T]:
		entry = root.elem
	case *deepTree[T]:
		entry, pos = it.seekDeep(root, pos)
	}
	pos = it.descend(entry, pos)

	it.leafPos = pos
	if index == n {
		it.leafPos = pos + 1
	}
	return it
}

// seekDeep walks the deep-tree spine from root to the digit node or singleton
// middle node containing pos, pushing every deep tree it enters.
// Returns that node and the position within it.
func (it *Iterator[T]) seekDeep(root *deepTree[T], pos int) (*node[T], int) {
	it.trees = append(it.trees, root)
	for {
		curr := it.trees[len(it.trees)-1]

		if pos < curr.leftSize {
			i, p := curr.left.findNode(pos)
			it.deepPos = i - len(curr.left)
			return curr.left[i], p
		}
		pos -= curr.leftSize

		ms := curr.middle.size()
		if pos >= ms {
			i, p := curr.right.findNode(pos - ms)
			it.deepPos = i + 1
			return curr.right[i], p
		}

		switch mid := curr.middle.(type) {
		case *singleTree[T]:
			it.deepPos = 0
			return mid.elem, pos
		case *deepTree[T]:
			it.trees = append(it.trees, mid)
		}
	}
}

// descend walks from n down to the leaf containing pos, pushing every inner
// node with the index of the child taken. Returns the position in the leaf.
func (it *Iterator[T]) descend(n *node[T], pos int) int {
	for !n.isLeaf() {
		var idx int
		idx, pos = n.findChild(pos)
		it.nodes = append(it.nodes, nodeFrame[T]{node: n, pos: idx})
		n = n.children[idx]
	}
	it.leaf = n
	return pos
}

// HasNext returns true if Next would return an element.
func (it *Iterator[T]) HasNext() bool {
	return it.index < it.n
}

// HasPrevious returns true if Previous would return an element.
func (it *Iterator[T]) HasPrevious() bool {
	return it.index > 0
}

// NextIndex returns the index of the element the next call to Next returns,
// or Len() at the end.
func (it *Iterator[T]) NextIndex() int {
	return it.index
}

// PreviousIndex returns the index of the element the next call to Previous
// returns, or -1 at the start.
func (it *Iterator[T]) PreviousIndex() int {
	return it.index - 1
}

// Next returns the next element and advances the cursor.
// Returns ErrExhausted at the end of the tree.
func (it *Iterator[T]) Next() (T, error) {
	if it.index >= it.n {
		var zero T
		return zero, ErrExhausted
	}

	it.index++
	if it.leafPos < it.leaf.arity() {
		it.leafPos++
		return it.leaf.value, nil
	}

	// Leaf drained, backtrack to the closest inner node with a next child.
	for len(it.nodes) > 0 {
		top := it.nodes[len(it.nodes)-1]
		if top.pos < top.node.arity()-1 {
			break
		}
		it.nodes = it.nodes[:len(it.nodes)-1]
	}

	var start *node[T]
	if len(it.nodes) > 0 {
		top := &it.nodes[len(it.nodes)-1]
		top.pos++
		start = top.node.children[top.pos]
	} else {
		start = it.nextDigitNode()
	}

	for !start.isLeaf() {
		it.nodes = append(it.nodes, nodeFrame[T]{node: start, pos: 0})
		start = start.children[0]
	}
	it.leaf = start
	it.leafPos = 1
	return start.value, nil
}

// nextDigitNode moves to the node following the current one on the deep-tree
// spine, entering or leaving middle trees as needed.
func (it *Iterator[T]) nextDigitNode() *node[T] {
	curr := it.trees[len(it.trees)-1]
	switch {
	case it.deepPos < -1:
		// Next node in the left digit
		it.deepPos++
		return curr.left[len(curr.left)+it.deepPos]

	case it.deepPos == -1:
		// Left digit drained
		switch mid := curr.middle.(type) {
		case *singleTree[T]:
			it.deepPos = 0
			return mid.elem
		case *deepTree[T]:
			it.trees = append(it.trees, mid)
			it.deepPos = -len(mid.left)
			return mid.left[0]
		default:
			it.deepPos = 1
			return curr.right[0]
		}

	case it.deepPos == 0:
		// Single middle node drained
		it.deepPos = 1
		return curr.right[0]
	}

	if p := it.deepPos - 1; p < len(curr.right)-1 {
		it.deepPos++
		return curr.right[p+1]
	}

	// Right digit drained, back up into the enclosing tree's right digit.
	it.trees[len(it.trees)-1] = nil
	it.trees = it.trees[:len(it.trees)-1]
	it.deepPos = 1
	return it.trees[len(it.trees)-1].right[0]
}

// Previous returns the previous element and moves the cursor backward.
// Returns ErrExhausted at the start of the tree.
func (it *Iterator[T]) Previous() (T, error) {
	if it.index <= 0 {
		var zero T
		return zero, ErrExhausted
	}

	it.index--
	if it.leafPos > 0 {
		it.leafPos--
		return it.leaf.value, nil
	}

	// Leaf drained, backtrack to the closest inner node with a previous child.
	for len(it.nodes) > 0 && it.nodes[len(it.nodes)-1].pos == 0 {
		it.nodes = it.nodes[:len(it.nodes)-1]
	}

	var start *node[T]
	if len(it.nodes) > 0 {
		top := &it.nodes[len(it.nodes)-1]
		top.pos--
		start = top.node.children[top.pos]
	} else {
		start = it.prevDigitNode()
	}

	for !start.isLeaf() {
		last := len(start.children) - 1
		it.nodes = append(it.nodes, nodeFrame[T]{node: start, pos: last})
		start = start.children[last]
	}
	it.leaf = start
	it.leafPos = 0
	return start.value, nil
}

// prevDigitNode mirrors nextDigitNode.
func (it *Iterator[T]) prevDigitNode() *node[T] {
	curr := it.trees[len(it.trees)-1]
	switch {
	case it.deepPos > 1:
		// Previous node in the right digit
		it.deepPos--
		return curr.right[it.deepPos-1]

	case it.deepPos == 1:
		// Right digit drained
		switch mid := curr.middle.(type) {
		case *singleTree[T]:
			it.deepPos = 0
			return mid.elem
		case *deepTree[T]:
			it.trees = append(it.trees, mid)
			it.deepPos = len(mid.right)
			return mid.right.last()
		default:
			it.deepPos = -1
			return curr.left.last()
		}

	case it.deepPos == 0:
		it.deepPos = -1
		return curr.left.last()
	}

	if p := len(curr.left) + it.deepPos; p > 0 {
		it.deepPos--
		return curr.left[p-1]
	}

	// Left digit drained, back up into the enclosing tree's left digit.
	it.trees[len(it.trees)-1] = nil
	it.trees = it.trees[:len(it.trees)-1]
	it.deepPos = -1
	return it.trees[len(it.trees)-1].left.last()
}

// Set always fails: trees cannot be modified through an iterator.
func (it *Iterator[T]) Set(T) error {
	return ErrUnsupported
}

// Add always fails: trees cannot be modified through an iterator.
func (it *Iterator[T]) Add(T) error {
	return ErrUnsupported
}

// Remove always fails: trees cannot be modified through an iterator.
func (it *Iterator[T]) Remove() error {
	return ErrUnsupported
}
