// Package fingertree provides an immutable, persistent sequence built on a
// size-annotated 2-3 finger tree.
//
// A finger tree keeps short runs of nodes (digits) at both ends of every
// level and pushes everything else one level down into a middle tree whose
// elements are 2-3 nodes. Every node and tree caches the number of leaves it
// contains, which drives index-based navigation.
//
// Key features:
//   - Amortized O(1) push and pop at both ends
//   - O(log n) random access, split and concatenation
//   - Immutable operations return new trees; originals are never modified
//   - Unchanged subtrees are shared between versions
//   - Bidirectional cursor with amortized O(1) stepping
//   - Safe for concurrent read access from any number of goroutines
//
// Basic usage:
//
//	t := fingertree.Of("a", "b", "c")
//	t = t.PushBack("d")              // a b c d
//	left, right := t.Split(2)        // a b | c d
//	t = right.Concat(left)           // c d a b
//	v, _ := t.Get(1)                 // "d"
//
//	it := t.Iterator(0)
//	for it.HasNext() {
//		v, _ := it.Next()
//		fmt.Println(v)
//	}
//
// Elements are treated as opaque values. The tree never compares, hashes or
// copies beyond plain assignment the values it stores.
package fingertree
