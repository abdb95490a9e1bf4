package taskgraph

// Dispatch appends N = x*y*z fire-and-forget task shards, each invoking fn
// over a slice of the 3D grid 0<=ix<x, 0<=iy<y, 0<=iz<z. x, y, and z must
// all be >= 1; otherwise Dispatch returns an [*InvalidArgumentError]
// without recording anything (spec.md §8 scenario 5).
//
// Below the builder's dispatch-thread threshold, one task is emitted per
// grid point. At or above it, the N linear indices are split as evenly as
// possible across that many shards: base, rem := N/threads, N%threads; the
// first rem shards get base+1 indices, the rest get base. Each shard
// recovers 3D coordinates from its linear index i as
// ix = i%x, iy = (i/x)%y, iz = i/(x*y), and invokes fn across its
// contiguous range in ascending order; shards themselves are recorded in
// ascending linear-index order.
//
// A callable error from any shard is logged and dropped like any
// fire-and-forget task (spec.md §4.4, §7); it never aborts sibling shards.
func (b *Builder) Dispatch(x, y, z int, fn func(ix, iy, iz int) error) error {
	if x < 1 || y < 1 || z < 1 {
		return &InvalidArgumentError{Message: "dispatch: extents must all be >= 1"}
	}

	n := x * y * z
	threads := b.dispatchThreads
	if threads < 1 {
		threads = 1
	}

	if n < threads {
		for i := 0; i < n; i++ {
			ix, iy, iz := dispatchCoords(i, x, y)
			if err := b.appendDispatchPoint(ix, iy, iz, fn); err != nil {
				return err
			}
		}
		return nil
	}

	base, rem := n/threads, n%threads
	start := 0
	for shard := 0; shard < threads; shard++ {
		count := base
		if shard < rem {
			count++
		}
		if count == 0 {
			continue
		}
		lo, hi := start, start+count
		if err := b.appendDispatchRange(lo, hi, x, y, fn); err != nil {
			return err
		}
		start = hi
	}
	return nil
}

func dispatchCoords(i, x, y int) (ix, iy, iz int) {
	ix = i % x
	iy = (i / x) % y
	iz = i / (x * y)
	return
}

// appendDispatchPoint appends a single task invoking fn once at (ix, iy,
// iz), for the below-threshold regime where each grid point is its own
// task.
func (b *Builder) appendDispatchPoint(ix, iy, iz int, fn func(ix, iy, iz int) error) error {
	return b.appendTask(&taskEntry{
		category: "dispatch",
		invoke: func() (any, error) {
			return nil, fn(ix, iy, iz)
		},
	})
}

// appendDispatchRange appends a single shard task iterating the contiguous
// linear index range [lo, hi) over the x*y*z grid, invoking fn once per
// index in ascending order.
func (b *Builder) appendDispatchRange(lo, hi, x, y int, fn func(ix, iy, iz int) error) error {
	return b.appendTask(&taskEntry{
		category: "dispatch",
		invoke: func() (any, error) {
			for i := lo; i < hi; i++ {
				ix, iy, iz := dispatchCoords(i, x, y)
				if err := fn(ix, iy, iz); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	})
}
