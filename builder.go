package taskgraph

import "golang.org/x/exp/slices"

// Builder is a single-use assembler for a [*TaskList]: it records
// tasks/checkpoints/fences in submission order, and on [Builder.Build]
// partitions the recorded stream into barrier-delimited segments, wiring
// each task's checkpoint range. A Builder must not be used concurrently
// from multiple goroutines, and must not be reused after Build (doing so
// returns a [*BuilderExhaustedError]).
type Builder struct {
	dispatchThreads int
	items           []builderItem
	built           bool
}

type builderItem struct {
	kind       itemKind
	task       *taskEntry
	checkpoint *checkpointEntry
	fence      *fenceEntry
}

// NewBuilder constructs a Builder. opts may override the dispatch shard
// count (see [WithDispatchThreads]); without it, [Builder.Dispatch] shards
// across [defaultWorkerCount] goroutines' worth of work once a grid
// reaches that size.
func NewBuilder(opts ...BuilderOption) *Builder {
	cfg := resolveBuilderConfig(opts)
	return &Builder{dispatchThreads: cfg.dispatchThreads}
}

func (b *Builder) appendTask(te *taskEntry) error {
	if b.built {
		return &BuilderExhaustedError{}
	}
	b.items = append(b.items, builderItem{kind: itemTask, task: te})
	return nil
}

// Execute appends a fire-and-forget task invoking fn. If fn returns a
// non-nil error, it is wrapped in a [*TaskCallableFailedError] and logged
// via the owning Pool's logger (see [WithLogger]); it is never returned to
// any caller, and the task's checkpoints are still decremented (spec.md
// §4.4, §7).
func (b *Builder) Execute(fn func() error) error {
	return b.appendTask(&taskEntry{
		category: "execute",
		invoke:   func() (any, error) { return nil, fn() },
	})
}

// Invoke appends a value-returning task invoking fn, returning a [*Future]
// that resolves to fn's result once the task completes. Unlike
// [Builder.Execute], a callable error here is captured into the Future and
// surfaced by [Future.Get] rather than logged and dropped.
//
// Invoke is a free function, not a Builder method, because Go methods
// cannot introduce their own type parameters independent of the
// receiver's.
func Invoke[T any](b *Builder, fn func() (T, error)) (*Future[T], error) {
	fut := newFuture[T]()
	te := &taskEntry{
		category: "invoke",
		invoke: func() (any, error) {
			v, err := fn()
			return v, err
		},
		deliver: func(val any, err error) {
			v, _ := val.(T)
			fut.set(v, err)
		},
	}
	if err := b.appendTask(te); err != nil {
		return nil, err
	}
	return fut, nil
}

// Checkpoint appends a plain (observer-only) checkpoint, returning a
// handle that becomes ready once every task recorded before it in its
// segment has completed; tasks recorded after it in the same segment are
// not waited for. Unlike [Builder.Barrier], a plain checkpoint never blocks
// list progression.
func (b *Builder) Checkpoint() (*Checkpoint, error) {
	if b.built {
		return nil, &BuilderExhaustedError{}
	}
	e := newCheckpointEntry(false)
	b.items = append(b.items, builderItem{kind: itemCheckpoint, checkpoint: e})
	return &Checkpoint{entry: e}, nil
}

// Barrier appends a barrier: a checkpoint that, in addition to being
// awaitable, blocks the scheduler from advancing past it until every task
// before it (back to the previous barrier, or the start of the list) has
// completed.
func (b *Builder) Barrier() (*Checkpoint, error) {
	if b.built {
		return nil, &BuilderExhaustedError{}
	}
	e := newCheckpointEntry(true)
	b.items = append(b.items, builderItem{kind: itemCheckpoint, checkpoint: e})
	return &Checkpoint{entry: e}, nil
}

// Fence appends a fence: list progression past this point requires the
// outside world to call [Fence.Signal] on the returned handle.
func (b *Builder) Fence() (*Fence, error) {
	if b.built {
		return nil, &BuilderExhaustedError{}
	}
	e := newFenceEntry()
	b.items = append(b.items, builderItem{kind: itemFence, fence: e})
	return &Fence{entry: e}, nil
}

// segment is the per-build bookkeeping for one barrier-delimited span of
// the recorded item stream: the span from the previous barrier (exclusive)
// through, and including, the barrier that ends it (or the implicit
// terminal barrier Build appends, for the final span).
type segment struct {
	checkpoints []*checkpointEntry
	// precedingTasks[i] is the count of tasks recorded in this segment
	// strictly before checkpoints[i] — i.e. the segment's task count as it
	// stood at the moment checkpoints[i] was appended. A barrier is always
	// a segment's last checkpoint, and nothing follows it in the same
	// segment, so its precedingTasks entry always equals the segment's
	// final task count; a plain checkpoint with tasks after it does not
	// share that property, which is why this is tracked per-checkpoint
	// rather than once per segment.
	precedingTasks []int64
	taskCount      int64
}

// Build finalizes the recording into a [*TaskList]. It appends an implicit
// terminal barrier (which the Pool's scheduler uses to detect list
// completion), then partitions the recorded items into segments at every
// barrier (including the terminal one). For each checkpoint, the
// reset-value is set to the count of tasks preceding it within its own
// segment, plus one (the scheduler's own "+1 caller slot" — see
// DESIGN.md); this is the segment's full task count only for a
// segment-closing barrier; a plain checkpoint with tasks after it only
// ever accumulates decrements from the tasks before it (see
// [Builder.Build]'s second pass), so its reset-value must match. Every
// task is assigned a checkpoint range covering every checkpoint positioned
// at or after it within its segment (so that, per spec.md §4.1's
// tie-break policy, a task decrements every checkpoint whose range
// contains it, not just the next one).
//
// Build may only be called once per Builder; a second call returns
// [*BuilderExhaustedError].
func (b *Builder) Build() (*TaskList, error) {
	if b.built {
		return nil, &BuilderExhaustedError{}
	}
	b.built = true

	terminal := newCheckpointEntry(true)
	b.items = append(b.items, builderItem{kind: itemCheckpoint, checkpoint: terminal})

	// Pass 1: assign each item to a segment, collecting that segment's
	// ordered checkpoint list and, per checkpoint, the task count
	// preceding it within the segment (not the segment's eventual total).
	segIndex := make([]int, len(b.items))
	segs := []*segment{{}}
	for i, it := range b.items {
		segIndex[i] = len(segs) - 1
		cur := segs[len(segs)-1]
		switch it.kind {
		case itemTask:
			cur.taskCount++
		case itemCheckpoint:
			cur.checkpoints = append(cur.checkpoints, it.checkpoint)
			cur.precedingTasks = append(cur.precedingTasks, cur.taskCount)
			if it.checkpoint.barrier {
				segs = append(segs, &segment{})
			}
		}
	}
	for _, s := range segs {
		for idx, c := range s.checkpoints {
			c.resetValue = s.precedingTasks[idx] + 1
		}
	}

	// Pass 2: walk the items again, now that every segment's full
	// checkpoint list is known, assigning each task the suffix of its
	// segment's checkpoints not yet passed (i.e. every checkpoint still
	// ahead of it), and building the TaskList's own item/checkpoint
	// vectors in original order.
	passed := make([]int, len(segs))
	list := &TaskList{items: make([]listItem, len(b.items))}
	for i, it := range b.items {
		si := segIndex[i]
		switch it.kind {
		case itemTask:
			// Clone rather than reslice: segs is function-local and
			// discarded once Build returns, but cloning keeps each
			// task's checkpoint range independent of the segment's
			// backing array on principle, matching spec.md §9's
			// "checkpoint-range as a borrowed view" guidance without
			// tying task lifetime to segment lifetime.
			it.task.ckpts = slices.Clone(segs[si].checkpoints[passed[si]:])
			list.items[i] = listItem{kind: itemTask, task: it.task}
		case itemCheckpoint:
			passed[si]++
			list.items[i] = listItem{kind: itemCheckpoint, checkpoint: it.checkpoint}
			list.checkpoints = append(list.checkpoints, it.checkpoint)
		case itemFence:
			list.items[i] = listItem{kind: itemFence, fence: it.fence}
		}
	}

	b.items = nil
	return list, nil
}
