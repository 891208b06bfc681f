package fingertree

// digit is an inline run of 1 to MaxDigit sibling nodes kept at either end
// of a deep tree.
//
// Digits are immutable: every method returning a digit allocates a fresh
// backing array, so slices of one digit can be shared freely.
type digit[T any] []*node[T]

// newDigit creates a digit from 1..MaxDigit nodes.
func newDigit[T any](ns ...*node[T]) digit[T] {
	if len(ns) == 0 || len(ns) > MaxDigit {
		panic("fingertree: digit must hold 1 to 4 nodes")
	}
	d := make(digit[T], len(ns))
	copy(d, ns)
	return d
}

// size returns the leaf count of all nodes in the digit.
func (d digit[T]) size() int {
	total := 0
	for _, n := range d {
		total += n.size
	}
	return total
}

// full returns true if no node can be added.
func (d digit[T]) full() bool {
	return len(d) == MaxDigit
}

func (d digit[T]) head() *node[T] {
	return d[0]
}

func (d digit[T]) last() *node[T] {
	return d[len(d)-1]
}

// prepend returns a new digit with n in front.
func (d digit[T]) prepend(n *node[T]) digit[T] {
	if d.full() {
		panic("fingertree: prepend to full digit")
	}
	out := make(digit[T], len(d)+1)
	out[0] = n
	copy(out[1:], d)
	return out
}

// append returns a new digit with n at the back.
func (d digit[T]) append(n *node[T]) digit[T] {
	if d.full() {
		panic("fingertree: append to full digit")
	}
	out := make(digit[T], len(d)+1)
	copy(out, d)
	out[len(d)] = n
	return out
}

// findNode finds the node containing leaf position pos.
// Returns the node index and the position within that node.
func (d digit[T]) findNode(pos int) (int, int) {
	last := len(d) - 1
	for i := 0; i < last; i++ {
		sz := d[i].size
		if pos < sz {
			return i, pos
		}
		pos -= sz
	}
	return last, pos
}

// reverse returns the digit with node order and every node reversed.
func (d digit[T]) reverse() digit[T] {
	k := len(d)
	out := make(digit[T], k)
	for i, n := range d {
		out[k-1-i] = n.reverse()
	}
	return out
}
