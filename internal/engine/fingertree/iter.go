package fingertree

import "iter"

// All returns an iterator over index/element pairs in ascending order.
func (t Tree[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := t.Iterator(0)
		for it.HasNext() {
			i := it.NextIndex()
			v, _ := it.Next()
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in ascending order.
func (t Tree[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := t.Iterator(0)
		for it.HasNext() {
			v, _ := it.Next()
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs in descending order.
func (t Tree[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := t.Iterator(t.Len())
		for it.HasPrevious() {
			i := it.PreviousIndex()
			v, _ := it.Previous()
			if !yield(i, v) {
				return
			}
		}
	}
}

// FromSeq creates a tree holding the elements produced by seq in order.
func FromSeq[T any](seq iter.Seq[T]) Tree[T] {
	var b Builder[T]
	for v := range seq {
		b.Append(v)
	}
	return b.Build()
}
