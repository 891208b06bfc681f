package fingertree

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	tests := []struct {
		name  string
		tree  Tree[int]
		depth int
	}{
		{"empty", New[int](), 0},
		{"single", Of(1), 0},
		{"two", Of(1, 2), 1},
		{"eight", FromSlice(ints(8)), 1},
		{"nine", FromSlice(ints(9)), 1},
		{"large", FromSlice(ints(10000)), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.tree.Stats()
			assert.Equal(t, tt.tree.Len(), s.Len)
			assert.Equal(t, tt.tree.Len(), s.Leaves)
			if tt.name == "large" {
				// Depth grows logarithmically
				assert.LessOrEqual(t, s.Depth, tt.depth)
				assert.Greater(t, s.Depth, 5)
			} else {
				assert.Equal(t, tt.depth, s.Depth)
			}
		})
	}
}

func TestStatsNineUsesSingletonMiddle(t *testing.T) {
	s := FromSlice(ints(9)).Stats()
	assert.Equal(t, 1, s.Node3)
	assert.Equal(t, 0, s.Node2)
	assert.Equal(t, 2, s.Digits)
	assert.Equal(t, 6, s.DigitNodes)
}

func TestValidateDetectsCorruption(t *testing.T) {
	tests := []struct {
		name string
		tree Tree[int]
		path string
	}{
		{
			name: "bad cached size",
			tree: Tree[int]{root: &deepTree[int]{
				left: digit[int]{newLeaf(1)}, middle: emptyTree[int]{}, right: digit[int]{newLeaf(2)},
				total: 3, leftSize: 1,
			}},
			path: "root",
		},
		{
			name: "bad left size",
			tree: Tree[int]{root: &deepTree[int]{
				left: digit[int]{newLeaf(1)}, middle: emptyTree[int]{}, right: digit[int]{newLeaf(2)},
				total: 2, leftSize: 0,
			}},
			path: "root",
		},
		{
			name: "overfull digit",
			tree: Tree[int]{root: &deepTree[int]{
				left:   digit[int]{newLeaf(1), newLeaf(2), newLeaf(3), newLeaf(4), newLeaf(5)},
				middle: emptyTree[int]{}, right: digit[int]{newLeaf(6)},
				total: 6, leftSize: 5,
			}},
			path: "root.left",
		},
		{
			name: "mixed heights",
			tree: Tree[int]{root: &deepTree[int]{
				left: digit[int]{newLeaf(1)}, middle: emptyTree[int]{},
				right: digit[int]{newNode2(newLeaf(2), newLeaf(3))},
				total: 3, leftSize: 1,
			}},
			path: "root.right[0]",
		},
		{
			name: "leaf in middle",
			tree: Tree[int]{root: &deepTree[int]{
				left: digit[int]{newLeaf(1)}, middle: &singleTree[int]{elem: newLeaf(2)},
				right: digit[int]{newLeaf(3)},
				total: 3, leftSize: 1,
			}},
			path: "root.middle.elem",
		},
		{
			name: "bad node size",
			tree: Tree[int]{root: &singleTree[int]{elem: &node[int]{
				size: 5, children: []*node[int]{newLeaf(1), newLeaf(2)},
			}}},
			path: "root.elem",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tree.Validate()
			require.ErrorIs(t, err, ErrInvariant)

			var ie *InvariantError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.path, ie.Path)
		})
	}
}

func TestDump(t *testing.T) {
	out := FromSlice(ints(9)).Dump(strconv.Itoa, 0)
	assert.Contains(t, out, "tree (len 9)")
	assert.Contains(t, out, "deep (size 9)")
	assert.Contains(t, out, "single (size 3)")
	assert.Contains(t, out, "node3 (size 3)")
	for i := 0; i < 9; i++ {
		assert.Contains(t, out, strconv.Itoa(i))
	}

	assert.Contains(t, New[int]().Dump(strconv.Itoa, 0), "empty")
}

func TestDumpElidesLeaves(t *testing.T) {
	out := FromSlice([]string{"alpha", "beta", "gamma", "delta"}).Dump(strings.ToUpper, 2)
	assert.Contains(t, out, "ALPHA")
	assert.Contains(t, out, "BETA")
	assert.NotContains(t, out, "GAMMA")
	assert.NotContains(t, out, "DELTA")
	assert.Equal(t, 1, strings.Count(out, "..."))
}
