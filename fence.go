package taskgraph

import "sync/atomic"

// fenceEntry is the internal externally-signaled latch backing a [*Fence]
// handle. wake is bound by TaskList.reset (on Pool.Push) to the owning
// Pool's worker-wake path, so that Fence.Signal — called from an arbitrary
// goroutine outside the pool — can nudge the scheduler without the caller
// needing to know anything about the pool's internals.
type fenceEntry struct {
	signaled atomic.Bool
	wake     func()
}

func newFenceEntry() *fenceEntry {
	return &fenceEntry{}
}

// reset rebinds the wake path for a new submission. The signaled flag is
// never cleared here: spec.md §3 grants a Fence at most one signal per
// submission, and §4.2 states a pre-signaled fence is valid and
// transparent, so resetting a boolean that was set before push would
// silently discard a legitimate pre-signal.
func (f *fenceEntry) reset(wake func()) {
	f.wake = wake
}

// signal transitions the fence from unsignaled to signaled exactly once,
// notifying the bound wake path only on that transition. A double-signal
// is a no-op, per spec.md §4.2.
func (f *fenceEntry) signal() {
	if f.signaled.CompareAndSwap(false, true) && f.wake != nil {
		f.wake()
	}
}

// Fence is an externally-signaled gate embedded in a task list. Obtained
// from [Builder.Fence]. The zero value is not usable; Fence values are
// always obtained from a Builder.
type Fence struct {
	entry *fenceEntry
}

// Signal raises the fence's flag, permitting the scheduler to advance the
// owning list past it. Safe to call before the list is even pushed to a
// Pool (spec.md §4.2: pre-signaled fences are transparent); safe to call
// more than once (subsequent calls are no-ops); safe for concurrent use.
func (f Fence) Signal() {
	f.entry.signal()
}

// Signaled reports whether Signal has already been called.
func (f Fence) Signaled() bool {
	return f.entry.signaled.Load()
}
