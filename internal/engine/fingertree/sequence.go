package fingertree

// Tree is an immutable sequence backed by a finger tree.
// Operations return new Tree values; the original is never modified.
// This enables cheap snapshots and thread-safe concurrent read access.
//
// The zero value is an empty tree ready to use.
type Tree[T any] struct {
	root fingerTree[T]
}

// New creates an empty tree.
func New[T any]() Tree[T] {
	return Tree[T]{}
}

// Of creates a tree holding the given elements in order.
func Of[T any](items ...T) Tree[T] {
	return FromSlice(items)
}

// FromSlice creates a tree holding the elements of items in order.
// The slice is not retained.
func FromSlice[T any](items []T) Tree[T] {
	if len(items) == 0 {
		return New[T]()
	}
	leaves := make([]*node[T], len(items))
	for i, v := range items {
		leaves[i] = newLeaf(v)
	}
	return Tree[T]{root: fromNodes(leaves)}
}

// tree returns the root, substituting the empty tree for the zero value.
func (t Tree[T]) tree() fingerTree[T] {
	if t.root == nil {
		return emptyTree[T]{}
	}
	return t.root
}

// Len returns the number of elements.
func (t Tree[T]) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.size()
}

// IsEmpty returns true if the tree holds no elements.
func (t Tree[T]) IsEmpty() bool {
	return t.Len() == 0
}

// Get returns the element at index i.
// Returns ErrIndexOutOfRange unless 0 <= i < Len().
func (t Tree[T]) Get(i int) (T, error) {
	n := t.Len()
	if i < 0 || i >= n {
		var zero T
		return zero, indexError(i, n)
	}
	leaf, _ := t.root.lookup(i)
	return leaf.value, nil
}

// Head returns the first element.
func (t Tree[T]) Head() (T, error) {
	if t.IsEmpty() {
		var zero T
		return zero, indexError(0, 0)
	}
	return t.root.head().value, nil
}

// Last returns the last element.
func (t Tree[T]) Last() (T, error) {
	n := t.Len()
	if n == 0 {
		var zero T
		return zero, indexError(n-1, n)
	}
	return t.root.last().value, nil
}

// ToSlice returns all elements in order.
func (t Tree[T]) ToSlice() []T {
	return t.tree().appendTo(make([]T, 0, t.Len()))
}

// PushFront returns a tree with v prepended.
func (t Tree[T]) PushFront(v T) Tree[T] {
	return Tree[T]{root: t.tree().pushFront(newLeaf(v))}
}

// PushBack returns a tree with v appended.
func (t Tree[T]) PushBack(v T) Tree[T] {
	return Tree[T]{root: t.tree().pushBack(newLeaf(v))}
}

// PopFront removes the first element.
// Returns the element and the remaining tree.
func (t Tree[T]) PopFront() (T, Tree[T], error) {
	if t.IsEmpty() {
		var zero T
		return zero, t, indexError(0, 0)
	}
	first, rest := t.root.viewFront()
	return first.value, Tree[T]{root: rest}, nil
}

// PopBack removes the last element.
// Returns the remaining tree and the element.
func (t Tree[T]) PopBack() (Tree[T], T, error) {
	if t.IsEmpty() {
		var zero T
		return t, zero, indexError(-1, 0)
	}
	rest, last := t.root.viewBack()
	return Tree[T]{root: rest}, last.value, nil
}

// Concat returns the concatenation of t and other.
// Returns a new tree; originals are unchanged.
func (t Tree[T]) Concat(other Tree[T]) Tree[T] {
	if t.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return t
	}
	return Tree[T]{root: concatTrees(t.root, nil, other.root)}
}

// Split splits the tree at index i, returning two trees.
// Left contains [0, i), right contains [i, Len()).
// The index is clamped to [0, Len()].
func (t Tree[T]) Split(i int) (Tree[T], Tree[T]) {
	n := t.Len()
	if i <= 0 {
		return New[T](), t
	}
	if i >= n {
		return t, New[T]()
	}

	left, x, right := t.root.splitAt(i)
	return Tree[T]{root: left}, Tree[T]{root: right.pushFront(x)}
}

// Slice returns the elements in the index range [from, to).
// Both bounds are clamped to [0, Len()].
func (t Tree[T]) Slice(from, to int) Tree[T] {
	n := t.Len()
	from = max(0, min(from, n))
	to = max(from, min(to, n))
	if from == 0 && to == n {
		return t
	}
	if from == to {
		return New[T]()
	}

	rest, _ := t.Split(to)
	_, mid := rest.Split(from)
	return mid
}

// Set returns a tree with the element at index i replaced by v.
// Only the path from the root to the replaced leaf is copied.
func (t Tree[T]) Set(i int, v T) (Tree[T], error) {
	n := t.Len()
	if i < 0 || i >= n {
		return t, indexError(i, n)
	}
	return Tree[T]{root: t.root.set(i, v)}, nil
}

// Insert returns a tree with v inserted before index i.
// Accepts 0 <= i <= Len(); i == Len() appends.
func (t Tree[T]) Insert(i int, v T) (Tree[T], error) {
	n := t.Len()
	switch {
	case i < 0 || i > n:
		return t, indexError(i, n)
	case i == 0:
		return t.PushFront(v), nil
	case i == n:
		return t.PushBack(v), nil
	}

	left, right := t.Split(i)
	return left.PushBack(v).Concat(right), nil
}

// Remove returns a tree without the element at index i.
func (t Tree[T]) Remove(i int) (Tree[T], error) {
	n := t.Len()
	switch {
	case i < 0 || i >= n:
		return t, indexError(i, n)
	case i == 0:
		_, rest, err := t.PopFront()
		return rest, err
	case i == n-1:
		rest, _, err := t.PopBack()
		return rest, err
	}

	left, _, right := t.root.splitAt(i)
	return Tree[T]{root: left}.Concat(Tree[T]{root: right}), nil
}

// Reverse returns a tree with the elements in reverse order.
func (t Tree[T]) Reverse() Tree[T] {
	if t.Len() < 2 {
		return t
	}
	return Tree[T]{root: t.root.reverse()}
}
