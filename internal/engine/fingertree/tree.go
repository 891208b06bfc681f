package fingertree

// fingerTree is the closed set of finger tree shapes: emptyTree, singleTree
// and deepTree. The elements of a fingerTree are nodes; at the top level they
// are leaves, in a middle tree they are inner nodes one level deeper than the
// digits of the enclosing deep tree.
//
// All methods are pure. Methods that take a position require
// 0 <= pos < size(), and the view methods require a non-empty tree.
type fingerTree[T any] interface {
	size() int
	pushFront(n *node[T]) fingerTree[T]
	pushBack(n *node[T]) fingerTree[T]
	viewFront() (*node[T], fingerTree[T])
	viewBack() (fingerTree[T], *node[T])
	head() *node[T]
	last() *node[T]
	// lookup returns the element node containing leaf position pos and the
	// position within that node.
	lookup(pos int) (*node[T], int)
	// splitAt splits the tree around the element node containing pos.
	splitAt(pos int) (fingerTree[T], *node[T], fingerTree[T])
	set(pos int, v T) fingerTree[T]
	reverse() fingerTree[T]
	appendTo(dst []T) []T
}

// emptyTree is the tree without elements.
type emptyTree[T any] struct{}

// singleTree holds exactly one element node.
type singleTree[T any] struct {
	elem *node[T]
}

// deepTree is a tree with digits at both ends and a middle tree of nodes one
// level deeper.
type deepTree[T any] struct {
	left     digit[T]
	middle   fingerTree[T]
	right    digit[T]
	total    int // Leaf count of the whole tree
	leftSize int // Leaf count of the left digit
}

// newDeep creates a deep tree and caches its sizes.
func newDeep[T any](left digit[T], middle fingerTree[T], right digit[T]) *deepTree[T] {
	ls := left.size()
	return &deepTree[T]{
		left:     left,
		middle:   middle,
		right:    right,
		total:    ls + middle.size() + right.size(),
		leftSize: ls,
	}
}

// fromNodes builds a tree holding the given nodes in order.
// Runs in O(len(ns)); the middle is built from ns grouped into 2-3 nodes.
func fromNodes[T any](ns []*node[T]) fingerTree[T] {
	n := len(ns)
	switch {
	case n == 0:
		return emptyTree[T]{}
	case n == 1:
		return &singleTree[T]{elem: ns[0]}
	case n <= 2*MaxDigit:
		h := n / 2
		return newDeep(newDigit(ns[:h]...), fingerTree[T](emptyTree[T]{}), newDigit(ns[h:]...))
	default:
		return newDeep(newDigit(ns[:3]...), fromNodes(groupNodes(ns[3:n-3])), newDigit(ns[n-3:]...))
	}
}

// deepL builds a deep tree whose left digit may be empty, borrowing the
// first middle node when it is.
func deepL[T any](left []*node[T], middle fingerTree[T], right digit[T]) fingerTree[T] {
	if len(left) > 0 {
		return newDeep(newDigit(left...), middle, right)
	}
	if middle.size() == 0 {
		return fromNodes(right)
	}
	first, rest := middle.viewFront()
	return newDeep(newDigit(first.children...), rest, right)
}

// deepR builds a deep tree whose right digit may be empty, borrowing the
// last middle node when it is.
func deepR[T any](left digit[T], middle fingerTree[T], right []*node[T]) fingerTree[T] {
	if len(right) > 0 {
		return newDeep(left, middle, newDigit(right...))
	}
	if middle.size() == 0 {
		return fromNodes(left)
	}
	rest, last := middle.viewBack()
	return newDeep(left, rest, newDigit(last.children...))
}

// concatTrees concatenates a, the carried nodes ts, and b.
func concatTrees[T any](a fingerTree[T], ts []*node[T], b fingerTree[T]) fingerTree[T] {
	switch a := a.(type) {
	case emptyTree[T]:
		return prependNodes(ts, b)
	case *singleTree[T]:
		return prependNodes(ts, b).pushFront(a.elem)
	}
	switch b := b.(type) {
	case emptyTree[T]:
		return appendNodes(a, ts)
	case *singleTree[T]:
		return appendNodes(a, ts).pushBack(b.elem)
	}

	da, db := a.(*deepTree[T]), b.(*deepTree[T])
	mid := make([]*node[T], 0, len(da.right)+len(ts)+len(db.left))
	mid = append(mid, da.right...)
	mid = append(mid, ts...)
	mid = append(mid, db.left...)
	return newDeep(da.left, concatTrees(da.middle, groupNodes(mid), db.middle), db.right)
}

func prependNodes[T any](ts []*node[T], t fingerTree[T]) fingerTree[T] {
	for i := len(ts) - 1; i >= 0; i-- {
		t = t.pushFront(ts[i])
	}
	return t
}

func appendNodes[T any](t fingerTree[T], ts []*node[T]) fingerTree[T] {
	for _, n := range ts {
		t = t.pushBack(n)
	}
	return t
}

// emptyTree

func (emptyTree[T]) size() int { return 0 }

func (emptyTree[T]) pushFront(n *node[T]) fingerTree[T] {
	return &singleTree[T]{elem: n}
}

func (emptyTree[T]) pushBack(n *node[T]) fingerTree[T] {
	return &singleTree[T]{elem: n}
}

func (emptyTree[T]) viewFront() (*node[T], fingerTree[T]) {
	panic("fingertree: viewFront on empty tree")
}

func (emptyTree[T]) viewBack() (fingerTree[T], *node[T]) {
	panic("fingertree: viewBack on empty tree")
}

func (emptyTree[T]) head() *node[T] { return nil }
func (emptyTree[T]) last() *node[T] { return nil }

func (emptyTree[T]) lookup(int) (*node[T], int) {
	panic("fingertree: lookup on empty tree")
}

func (emptyTree[T]) splitAt(int) (fingerTree[T], *node[T], fingerTree[T]) {
	panic("fingertree: split on empty tree")
}

func (emptyTree[T]) set(int, T) fingerTree[T] {
	panic("fingertree: set on empty tree")
}

func (t emptyTree[T]) reverse() fingerTree[T] { return t }
func (emptyTree[T]) appendTo(dst []T) []T      { return dst }

// singleTree

func (s *singleTree[T]) size() int { return s.elem.size }

func (s *singleTree[T]) pushFront(n *node[T]) fingerTree[T] {
	return newDeep(newDigit(n), fingerTree[T](emptyTree[T]{}), newDigit(s.elem))
}

func (s *singleTree[T]) pushBack(n *node[T]) fingerTree[T] {
	return newDeep(newDigit(s.elem), fingerTree[T](emptyTree[T]{}), newDigit(n))
}

func (s *singleTree[T]) viewFront() (*node[T], fingerTree[T]) {
	return s.elem, emptyTree[T]{}
}

func (s *singleTree[T]) viewBack() (fingerTree[T], *node[T]) {
	return emptyTree[T]{}, s.elem
}

func (s *singleTree[T]) head() *node[T] { return s.elem }
func (s *singleTree[T]) last() *node[T] { return s.elem }

func (s *singleTree[T]) lookup(pos int) (*node[T], int) {
	return s.elem, pos
}

func (s *singleTree[T]) splitAt(int) (fingerTree[T], *node[T], fingerTree[T]) {
	return emptyTree[T]{}, s.elem, emptyTree[T]{}
}

func (s *singleTree[T]) set(pos int, v T) fingerTree[T] {
	return &singleTree[T]{elem: s.elem.set(pos, v)}
}

func (s *singleTree[T]) reverse() fingerTree[T] {
	return &singleTree[T]{elem: s.elem.reverse()}
}

func (s *singleTree[T]) appendTo(dst []T) []T {
	return s.elem.appendTo(dst)
}

// deepTree

func (d *deepTree[T]) size() int { return d.total }

func (d *deepTree[T]) pushFront(n *node[T]) fingerTree[T] {
	if d.left.full() {
		l := d.left
		return newDeep(newDigit(n, l[0]), d.middle.pushFront(newNode3(l[1], l[2], l[3])), d.right)
	}
	return newDeep(d.left.prepend(n), d.middle, d.right)
}

func (d *deepTree[T]) pushBack(n *node[T]) fingerTree[T] {
	if d.right.full() {
		r := d.right
		return newDeep(d.left, d.middle.pushBack(newNode3(r[0], r[1], r[2])), newDigit(r[3], n))
	}
	return newDeep(d.left, d.middle, d.right.append(n))
}

func (d *deepTree[T]) viewFront() (*node[T], fingerTree[T]) {
	return d.left.head(), deepL(d.left[1:], d.middle, d.right)
}

func (d *deepTree[T]) viewBack() (fingerTree[T], *node[T]) {
	return deepR(d.left, d.middle, d.right[:len(d.right)-1]), d.right.last()
}

func (d *deepTree[T]) head() *node[T] { return d.left.head() }
func (d *deepTree[T]) last() *node[T] { return d.right.last() }

func (d *deepTree[T]) lookup(pos int) (*node[T], int) {
	if pos < d.leftSize {
		i, p := d.left.findNode(pos)
		return d.left[i], p
	}
	pos -= d.leftSize

	ms := d.middle.size()
	if pos < ms {
		// The middle yields a node one level deeper; step into its child.
		outer, p := d.middle.lookup(pos)
		i, p := outer.findChild(p)
		return outer.children[i], p
	}
	pos -= ms

	i, p := d.right.findNode(pos)
	return d.right[i], p
}

func (d *deepTree[T]) splitAt(pos int) (fingerTree[T], *node[T], fingerTree[T]) {
	if pos < d.leftSize {
		i, _ := d.left.findNode(pos)
		return fromNodes(d.left[:i]), d.left[i], deepL(d.left[i+1:], d.middle, d.right)
	}
	pos -= d.leftSize

	ms := d.middle.size()
	if pos < ms {
		ml, outer, mr := d.middle.splitAt(pos)
		i, _ := outer.findChild(pos - ml.size())
		kids := outer.children
		return deepR(d.left, ml, kids[:i]), kids[i], deepL(kids[i+1:], mr, d.right)
	}
	pos -= ms

	i, _ := d.right.findNode(pos)
	return deepR(d.left, d.middle, d.right[:i]), d.right[i], fromNodes(d.right[i+1:])
}

func (d *deepTree[T]) set(pos int, v T) fingerTree[T] {
	out := *d
	if pos < d.leftSize {
		i, p := d.left.findNode(pos)
		out.left = newDigit(d.left...)
		out.left[i] = d.left[i].set(p, v)
		return &out
	}
	pos -= d.leftSize

	ms := d.middle.size()
	if pos < ms {
		out.middle = d.middle.set(pos, v)
		return &out
	}
	pos -= ms

	i, p := d.right.findNode(pos)
	out.right = newDigit(d.right...)
	out.right[i] = d.right[i].set(p, v)
	return &out
}

func (d *deepTree[T]) reverse() fingerTree[T] {
	return newDeep(d.right.reverse(), d.middle.reverse(), d.left.reverse())
}

func (d *deepTree[T]) appendTo(dst []T) []T {
	for _, n := range d.left {
		dst = n.appendTo(dst)
	}
	dst = d.middle.appendTo(dst)
	for _, n := range d.right {
		dst = n.appendTo(dst)
	}
	return dst
}
