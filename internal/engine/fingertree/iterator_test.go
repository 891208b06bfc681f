package fingertree

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorSevenElements(t *testing.T) {
	labels := []string{"e0", "e1", "e2", "e3", "e4", "e5", "e6"}
	tr := FromSlice(labels)
	it := tr.Iterator(0)

	var forward []string
	for i := 0; i < 7; i++ {
		v, err := it.Next()
		require.NoError(t, err)
		forward = append(forward, v)
	}
	assert.Equal(t, labels, forward)
	assert.False(t, it.HasNext())

	var backward []string
	for i := 0; i < 7; i++ {
		v, err := it.Previous()
		require.NoError(t, err)
		backward = append(backward, v)
	}
	assert.Equal(t, []string{"e6", "e5", "e4", "e3", "e2", "e1", "e0"}, backward)
	assert.False(t, it.HasPrevious())
}

func TestIteratorEmpty(t *testing.T) {
	for _, start := range []int{-1, 0, 1} {
		it := New[int]().Iterator(start)
		assert.False(t, it.HasNext())
		assert.False(t, it.HasPrevious())
		assert.Equal(t, 0, it.NextIndex())
		assert.Equal(t, -1, it.PreviousIndex())

		_, err := it.Next()
		assert.ErrorIs(t, err, ErrExhausted)
		_, err = it.Previous()
		assert.ErrorIs(t, err, ErrExhausted)
	}
}

func TestIteratorSingle(t *testing.T) {
	tr := Of("e0")

	it := tr.Iterator(0)
	v, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "e0", v)
	assert.False(t, it.HasNext())

	it = tr.Iterator(1)
	assert.True(t, it.HasPrevious())
	assert.False(t, it.HasNext())
	v, err = it.Previous()
	require.NoError(t, err)
	assert.Equal(t, "e0", v)
	assert.False(t, it.HasPrevious())
}

func TestIteratorForwardFromEveryStart(t *testing.T) {
	for _, n := range testSizes {
		for name, tr := range shapes(n) {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				for k := 0; k <= n; k++ {
					it := tr.Iterator(k)
					require.Equal(t, k, it.NextIndex())
					for i := k; i < n; i++ {
						require.True(t, it.HasNext())
						v, err := it.Next()
						require.NoError(t, err)
						require.Equal(t, i, v)
						require.Equal(t, i+1, it.NextIndex())
					}
					require.False(t, it.HasNext())
					_, err := it.Next()
					require.ErrorIs(t, err, ErrExhausted)
				}
			})
		}
	}
}

func TestIteratorBackwardFromEveryStart(t *testing.T) {
	for _, n := range testSizes {
		for name, tr := range shapes(n) {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				for k := 0; k <= n; k++ {
					it := tr.Iterator(k)
					require.Equal(t, k-1, it.PreviousIndex())
					for i := k - 1; i >= 0; i-- {
						require.True(t, it.HasPrevious())
						v, err := it.Previous()
						require.NoError(t, err)
						require.Equal(t, i, v)
						require.Equal(t, i-1, it.PreviousIndex())
					}
					require.False(t, it.HasPrevious())
					_, err := it.Previous()
					require.ErrorIs(t, err, ErrExhausted)
				}
			})
		}
	}
}

func TestIteratorMatchesGet(t *testing.T) {
	for _, n := range testSizes {
		for name, tr := range shapes(n) {
			it := tr.Iterator(0)
			for i := 0; i < n; i++ {
				want, err := tr.Get(i)
				require.NoError(t, err)
				got, err := it.Next()
				require.NoError(t, err)
				require.Equal(t, want, got, "%s n=%d i=%d", name, n, i)
			}
		}
	}
}

func TestIteratorClampsStart(t *testing.T) {
	tr := FromSlice(ints(20))

	it := tr.Iterator(-5)
	assert.Equal(t, 0, it.NextIndex())
	v, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	it = tr.Iterator(500)
	assert.Equal(t, 20, it.NextIndex())
	assert.False(t, it.HasNext())
	v, err = it.Previous()
	require.NoError(t, err)
	assert.Equal(t, 19, v)
}

func TestIteratorInverseLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range testSizes[1:] {
		for name, tr := range shapes(n) {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				it := tr.Iterator(rng.Intn(n + 1))
				for step := 0; step < 4*n; step++ {
					if it.HasNext() && it.HasPrevious() {
						require.Equal(t, it.PreviousIndex()+1, it.NextIndex())
					}

					if rng.Intn(2) == 0 && it.HasNext() {
						idx := it.NextIndex()
						v, err := it.Next()
						require.NoError(t, err)
						require.Equal(t, idx, v)

						back, err := it.Previous()
						require.NoError(t, err)
						require.Equal(t, v, back)
						require.Equal(t, idx, it.NextIndex())

						_, err = it.Next()
						require.NoError(t, err)
					} else if it.HasPrevious() {
						idx := it.PreviousIndex()
						v, err := it.Previous()
						require.NoError(t, err)
						require.Equal(t, idx, v)

						fwd, err := it.Next()
						require.NoError(t, err)
						require.Equal(t, v, fwd)

						_, err = it.Previous()
						require.NoError(t, err)
					}
				}
			})
		}
	}
}

func TestIteratorUnsupported(t *testing.T) {
	it := FromSlice(ints(3)).Iterator(1)
	assert.ErrorIs(t, it.Set(9), ErrUnsupported)
	assert.ErrorIs(t, it.Add(9), ErrUnsupported)
	assert.ErrorIs(t, it.Remove(), ErrUnsupported)

	v, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestIteratorConcurrent(t *testing.T) {
	tr := FromSlice(ints(2000))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			it := tr.Iterator(start)
			for want := start; it.HasNext(); want++ {
				v, err := it.Next()
				if err != nil {
					errs <- err
					return
				}
				if v != want {
					errs <- fmt.Errorf("start %d: got %d, want %d", start, v, want)
					return
				}
			}
		}(g * 100)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestRangeAdapters(t *testing.T) {
	tr := FromSlice(ints(30))

	var idx, vals []int
	for i, v := range tr.All() {
		idx = append(idx, i)
		vals = append(vals, v)
	}
	assert.Equal(t, ints(30), idx)
	assert.Equal(t, ints(30), vals)

	var back []int
	for i, v := range tr.Backward() {
		require.Equal(t, i, v)
		back = append(back, v)
	}
	require.Len(t, back, 30)
	assert.Equal(t, 29, back[0])
	assert.Equal(t, 0, back[29])

	var firstFive []int
	for v := range tr.Values() {
		if len(firstFive) == 5 {
			break
		}
		firstFive = append(firstFive, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, firstFive)
}
