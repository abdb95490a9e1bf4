package taskgraph

// itemKind tags the variant a listItem holds. Modeling entries as a tagged
// variant rather than an inheritance hierarchy (spec.md §9 "Heterogeneous
// entries") keeps TaskList.next a single switch, dispatching on tag.
type itemKind uint8

const (
	itemTask itemKind = iota
	itemCheckpoint
	itemFence
)

type listItem struct {
	kind       itemKind
	task       *taskEntry
	checkpoint *checkpointEntry
	fence      *fenceEntry
}

// TaskList is an ordered, finalized sequence of entries produced by
// [Builder.Build]: the unit a [*Pool] consumes via [Pool.Push].
//
// A TaskList's checkpoint-range pointers (inside each task) remain valid
// for the list's lifetime; the list is never relocated after Build, so
// tasks may safely hold borrowed (non-owning) pointers into checkpoints
// owned by segments within this list (spec.md §9 "Checkpoint-range as a
// borrowed view").
type TaskList struct {
	items       []listItem
	cursor      int
	checkpoints []*checkpointEntry
}

// reset seeds every checkpoint's counter and rebinds every fence's wake
// path, in preparation for a single Pool.Push submission. Called exactly
// once, by Pool.Push, before the list is registered as active.
func (l *TaskList) reset(wake func()) {
	l.cursor = 0
	for _, c := range l.checkpoints {
		c.reset()
	}
	for i := range l.items {
		if l.items[i].kind == itemFence {
			l.items[i].fence.reset(wake)
		}
	}
}

// next walks forward from the cursor, appending every TaskEntry it passes
// to out, until it either reaches the end of the list or is blocked by an
// unsatisfied barrier or unsignaled fence. It returns whether the list is
// now fully consumed (atEnd) and how many tasks were appended in this
// call.
//
// Per spec.md §4.5:
//   - a CheckpointEntry that is a barrier with counter != 1 blocks
//     (returns without advancing past it);
//   - any other CheckpointEntry (a barrier with counter == 1, or any
//     plain checkpoint regardless of counter) is decremented — possibly
//     firing it — and the cursor advances past it;
//   - a FenceEntry that is not yet signaled blocks;
//   - a TaskEntry is appended to out and the cursor advances.
func (l *TaskList) next(out *[]*taskEntry) (atEnd bool, emitted int) {
	for l.cursor < len(l.items) {
		it := &l.items[l.cursor]
		switch it.kind {
		case itemCheckpoint:
			c := it.checkpoint
			if c.barrier && c.counter.Load() != 1 {
				return false, emitted
			}
			c.decrement()
			l.cursor++

		case itemTask:
			*out = append(*out, it.task)
			emitted++
			l.cursor++

		case itemFence:
			if !it.fence.signaled.Load() {
				return false, emitted
			}
			l.cursor++
		}
	}
	return true, emitted
}
