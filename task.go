package taskgraph

import "github.com/joeycumines/go-taskgraph/internal/tglog"

// taskEntry is a unit of work recorded by a [*Builder]: a callable,
// optionally a delivery closure writing into a [*Future], and the
// checkpoint range it must decrement on completion.
//
// Per spec.md's design notes (§9 "Callable captures"), arguments are
// captured by ordinary Go closures rather than a variadic-capture scheme —
// a closure over local variables already avoids re-evaluating arguments
// per shard, which is the property the original design note is protecting.
type taskEntry struct {
	// invoke runs the callable exactly once, returning its result (nil for
	// fire-and-forget tasks) and any error it returned.
	invoke func() (any, error)
	// deliver writes invoke's result into the task's Future. nil for
	// fire-and-forget tasks (Builder.Execute, Builder.Dispatch).
	deliver func(val any, err error)
	// category labels the task for diagnostics ("execute", "invoke",
	// "dispatch").
	category string
	// ckpts is the checkpoint range assigned by Builder.Build: a
	// contiguous suffix of the owning segment's checkpoint slice,
	// containing every checkpoint positioned at or after this task within
	// the segment.
	ckpts []*checkpointEntry
}

// execute runs the task's callable, delivers its result (or logs and
// drops it, for fire-and-forget tasks whose callable failed), then
// decrements every checkpoint in range. The checkpoint decrement always
// runs, even on callable failure, so a failing task never deadlocks
// downstream progress (spec.md §4.4).
func (t *taskEntry) execute(log tglog.Logger) {
	val, err := t.invoke()
	if err != nil {
		err = &TaskCallableFailedError{Err: err}
	}
	if t.deliver != nil {
		t.deliver(val, err)
	} else if err != nil {
		log.Dropped(t.category, err, nil)
	}
	for _, c := range t.ckpts {
		c.decrement()
	}
}
