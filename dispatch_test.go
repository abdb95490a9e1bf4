package taskgraph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatch_rejectsZeroExtent(t *testing.T) {
	b := NewBuilder()
	for _, grid := range [][3]int{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}} {
		err := b.Dispatch(grid[0], grid[1], grid[2], func(int, int, int) error { return nil })
		require.ErrorAs(t, err, new(*InvalidArgumentError))
	}
}

func TestDispatch_singlePointInvokesOnce(t *testing.T) {
	b := NewBuilder()
	var calls int
	var gotIx, gotIy, gotIz int
	require.NoError(t, b.Dispatch(1, 1, 1, func(ix, iy, iz int) error {
		calls++
		gotIx, gotIy, gotIz = ix, iy, iz
		return nil
	}))

	list, err := b.Build()
	require.NoError(t, err)
	drive(t, list)

	require.Equal(t, 1, calls)
	require.Equal(t, 0, gotIx)
	require.Equal(t, 0, gotIy)
	require.Equal(t, 0, gotIz)
}

func TestDispatch_coversEveryGridPointExactlyOnce_belowThreshold(t *testing.T) {
	b := NewBuilder(WithDispatchThreads(64))
	const x, y, z = 2, 3, 4
	var mu sync.Mutex
	seen := map[[3]int]int{}
	require.NoError(t, b.Dispatch(x, y, z, func(ix, iy, iz int) error {
		mu.Lock()
		seen[[3]int{ix, iy, iz}]++
		mu.Unlock()
		return nil
	}))

	list, err := b.Build()
	require.NoError(t, err)
	drive(t, list)

	require.Len(t, seen, x*y*z)
	for ix := 0; ix < x; ix++ {
		for iy := 0; iy < y; iy++ {
			for iz := 0; iz < z; iz++ {
				require.Equal(t, 1, seen[[3]int{ix, iy, iz}])
			}
		}
	}
}

func TestDispatch_coversEveryGridPointExactlyOnce_shardedRegime(t *testing.T) {
	b := NewBuilder(WithDispatchThreads(3))
	const x, y, z = 5, 2, 2 // N=20, threads=3 -> shards of 7,7,6
	var mu sync.Mutex
	seen := map[[3]int]int{}
	require.NoError(t, b.Dispatch(x, y, z, func(ix, iy, iz int) error {
		mu.Lock()
		seen[[3]int{ix, iy, iz}]++
		mu.Unlock()
		return nil
	}))

	list, err := b.Build()
	require.NoError(t, err)
	drive(t, list)

	require.Len(t, seen, x*y*z)
	for ix := 0; ix < x; ix++ {
		for iy := 0; iy < y; iy++ {
			for iz := 0; iz < z; iz++ {
				require.Equal(t, 1, seen[[3]int{ix, iy, iz}])
			}
		}
	}
}

func TestDispatch_shardRemainderDistribution(t *testing.T) {
	// N=10, threads=3 -> base=3, rem=1: linear index ranges [0,4) [4,7) [7,10).
	b := NewBuilder(WithDispatchThreads(3))
	var mu sync.Mutex
	var linear []int
	require.NoError(t, b.Dispatch(10, 1, 1, func(ix, iy, iz int) error {
		mu.Lock()
		linear = append(linear, ix)
		mu.Unlock()
		return nil
	}))

	list, err := b.Build()
	require.NoError(t, err)

	// Run each shard task on its own, in list order, to see which linear
	// indices it covers.
	list.reset(func() {})
	var shards [][]int
	for _, it := range list.items {
		if it.kind != itemTask {
			continue
		}
		start := len(linear)
		it.task.execute(noOpLog{})
		shards = append(shards, append([]int(nil), linear[start:]...))
	}
	require.Equal(t, [][]int{{0, 1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, shards)

	seen := map[int]bool{}
	for _, v := range linear {
		seen[v] = true
	}
	require.Len(t, seen, 10)
}
