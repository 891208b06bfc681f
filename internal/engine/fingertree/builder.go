package fingertree

// Builder provides efficient incremental construction of a tree.
// It buffers elements and builds the tree structure when Build() is called.
//
// The zero value is ready to use.
type Builder[T any] struct {
	leaves []*node[T]
	prefix Tree[T] // Trees appended with AppendTree, flushed in order
}

// NewBuilder creates a new builder with room for capacity elements.
func NewBuilder[T any](capacity int) *Builder[T] {
	return &Builder[T]{
		leaves: make([]*node[T], 0, capacity),
	}
}

// Append adds an element to the end.
func (b *Builder[T]) Append(v T) {
	b.leaves = append(b.leaves, newLeaf(v))
}

// AppendSlice adds all elements of items to the end.
func (b *Builder[T]) AppendSlice(items []T) {
	for _, v := range items {
		b.Append(v)
	}
}

// AppendTree adds all elements of t to the end.
// The tree's structure is shared, not copied.
func (b *Builder[T]) AppendTree(t Tree[T]) {
	if t.IsEmpty() {
		return
	}
	b.flush()
	b.prefix = b.prefix.Concat(t)
}

// flush moves buffered leaves into the prefix tree.
func (b *Builder[T]) flush() {
	if len(b.leaves) == 0 {
		return
	}
	b.prefix = b.prefix.Concat(Tree[T]{root: fromNodes(b.leaves)})
	b.leaves = nil
}

// Len returns the number of elements added so far.
func (b *Builder[T]) Len() int {
	return b.prefix.Len() + len(b.leaves)
}

// Reset clears the builder for reuse.
func (b *Builder[T]) Reset() {
	b.leaves = nil
	b.prefix = Tree[T]{}
}

// Build creates the tree from the accumulated elements.
// After calling Build, the builder is reset.
func (b *Builder[T]) Build() Tree[T] {
	b.flush()
	t := b.prefix
	b.Reset()
	return t
}
