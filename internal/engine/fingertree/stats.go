package fingertree

import (
	"fmt"
	"strconv"

	"github.com/xlab/treeprint"
)

// Stats describes the shape of a tree.
// Useful for debugging and testing balance.
type Stats struct {
	// Len is the number of elements.
	Len int

	// Depth is the number of deep trees on the spine, i.e. how many levels
	// of middle trees are nested. Zero for empty and singleton trees.
	Depth int

	// Leaves is the number of leaf nodes found by a full walk.
	Leaves int

	// Node2 and Node3 count inner nodes by arity.
	Node2 int
	Node3 int

	// Digits is the number of digits, DigitNodes the nodes they hold.
	Digits     int
	DigitNodes int
}

// Stats walks the whole tree and reports its shape.
func (t Tree[T]) Stats() Stats {
	s := Stats{Len: t.Len()}
	walkTree(t.tree(), &s)
	return s
}

func walkTree[T any](ft fingerTree[T], s *Stats) {
	switch ft := ft.(type) {
	case *singleTree[T]:
		walkNode(ft.elem, s)
	case *deepTree[T]:
		s.Depth++
		for _, d := range []digit[T]{ft.left, ft.right} {
			s.Digits++
			s.DigitNodes += len(d)
			for _, n := range d {
				walkNode(n, s)
			}
		}
		walkTree(ft.middle, s)
	}
}

func walkNode[T any](n *node[T], s *Stats) {
	switch n.arity() {
	case 1:
		s.Leaves++
		return
	case 2:
		s.Node2++
	case 3:
		s.Node3++
	}
	for _, child := range n.children {
		walkNode(child, s)
	}
}

// Validate checks every structural invariant of the tree: cached sizes
// match the leaves below them, digits hold 1 to 4 nodes, inner nodes hold
// 2 or 3 children, and all element nodes of a level have the same height.
// Returns an *InvariantError describing the first violation found.
func (t Tree[T]) Validate() error {
	return validateTree(t.tree(), 0, "root")
}

func validateTree[T any](ft fingerTree[T], height int, path string) error {
	switch ft := ft.(type) {
	case emptyTree[T]:
		return nil
	case *singleTree[T]:
		return validateNode(ft.elem, height, path+".elem")
	case *deepTree[T]:
		ls, err := validateDigit(ft.left, height, path+".left")
		if err != nil {
			return err
		}
		if ls != ft.leftSize {
			return &InvariantError{Path: path, Message: fmt.Sprintf("cached left size %d, counted %d", ft.leftSize, ls)}
		}
		rs, err := validateDigit(ft.right, height, path+".right")
		if err != nil {
			return err
		}
		if err := validateTree(ft.middle, height+1, path+".middle"); err != nil {
			return err
		}
		if total := ls + ft.middle.size() + rs; total != ft.total {
			return &InvariantError{Path: path, Message: fmt.Sprintf("cached size %d, counted %d", ft.total, total)}
		}
		return nil
	case nil:
		return &InvariantError{Path: path, Message: "nil tree"}
	default:
		return &InvariantError{Path: path, Message: fmt.Sprintf("unknown tree type %T", ft)}
	}
}

func validateDigit[T any](d digit[T], height int, path string) (int, error) {
	if len(d) < 1 || len(d) > MaxDigit {
		return 0, &InvariantError{Path: path, Message: fmt.Sprintf("digit holds %d nodes", len(d))}
	}
	total := 0
	for i, n := range d {
		if err := validateNode(n, height, path+"["+strconv.Itoa(i)+"]"); err != nil {
			return 0, err
		}
		total += n.size
	}
	return total, nil
}

func validateNode[T any](n *node[T], height int, path string) error {
	if n == nil {
		return &InvariantError{Path: path, Message: "nil node"}
	}
	if height == 0 {
		if !n.isLeaf() {
			return &InvariantError{Path: path, Message: "expected leaf, found inner node"}
		}
		if n.size != 1 {
			return &InvariantError{Path: path, Message: fmt.Sprintf("leaf size %d", n.size)}
		}
		return nil
	}

	if n.isLeaf() {
		return &InvariantError{Path: path, Message: fmt.Sprintf("expected inner node of height %d, found leaf", height)}
	}
	if k := len(n.children); k < MinArity || k > MaxArity {
		return &InvariantError{Path: path, Message: fmt.Sprintf("inner node has %d children", k)}
	}
	total := 0
	for i, child := range n.children {
		if err := validateNode(child, height-1, path+"/"+strconv.Itoa(i)); err != nil {
			return err
		}
		total += child.size
	}
	if total != n.size {
		return &InvariantError{Path: path, Message: fmt.Sprintf("cached size %d, counted %d", n.size, total)}
	}
	return nil
}

// Dump renders the structure of the tree, one line per tree, digit and
// node. Leaves are rendered with format; after maxLeaves leaves (if
// positive) the remaining ones are elided.
func (t Tree[T]) Dump(format func(T) string, maxLeaves int) string {
	d := dumper[T]{format: format, budget: maxLeaves}
	root := treeprint.NewWithRoot(fmt.Sprintf("tree (len %d)", t.Len()))
	d.tree(root, t.tree())
	return root.String()
}

type dumper[T any] struct {
	format func(T) string
	budget int // Remaining leaves to render; <= 0 at start means unlimited
	shown  int
	elided bool
}

func (d *dumper[T]) tree(branch treeprint.Tree, ft fingerTree[T]) {
	switch ft := ft.(type) {
	case emptyTree[T]:
		branch.AddNode("empty")
	case *singleTree[T]:
		d.node(branch.AddBranch(fmt.Sprintf("single (size %d)", ft.size())), ft.elem)
	case *deepTree[T]:
		deep := branch.AddBranch(fmt.Sprintf("deep (size %d)", ft.total))
		d.digit(deep.AddMetaBranch("left", fmt.Sprintf("digit (size %d)", ft.leftSize)), ft.left)
		d.tree(deep.AddMetaBranch("middle", fmt.Sprintf("size %d", ft.middle.size())), ft.middle)
		d.digit(deep.AddMetaBranch("right", fmt.Sprintf("digit (size %d)", ft.right.size())), ft.right)
	}
}

func (d *dumper[T]) digit(branch treeprint.Tree, dg digit[T]) {
	for _, n := range dg {
		d.node(branch, n)
	}
}

func (d *dumper[T]) node(branch treeprint.Tree, n *node[T]) {
	if n.isLeaf() {
		if d.budget > 0 && d.shown >= d.budget {
			if !d.elided {
				branch.AddNode("...")
				d.elided = true
			}
			return
		}
		d.shown++
		branch.AddNode(d.format(n.value))
		return
	}
	inner := branch.AddBranch(fmt.Sprintf("node%d (size %d)", len(n.children), n.size))
	for _, child := range n.children {
		d.node(inner, child)
	}
}
