// Package taskgraph implements a worker pool that executes pre-built lists
// of heterogeneous work items — individual tasks, N-dimensional parallel
// dispatches, programmatic checkpoints, implicit barriers, and
// externally-signaled fences — honoring dependency ordering and suspension
// conditions between them.
//
// A [Builder] assembles an ordered task-graph, handing back observer/signal
// handles ([*Checkpoint], [*Fence], [*Future]) as work is recorded.
// [Builder.Build] finalizes the recording into a [*TaskList].
// Submitting that list to a [*Pool] via [Pool.Push] returns a [*Future] that
// resolves to the list once every item in it has been consumed. A TaskList
// is consumed by a single Push; its checkpoints fire once and are not
// re-armed, so the same list cannot be pushed again.
//
// The six external collaborators this repository also ships — shared
// library loading, process spawning, pipe and shared-memory IPC, named
// synchronization primitives, and hashing, in the sharedlib, process, pipe,
// shm, namedsync and fnvhash packages — contribute nothing to task-graph
// semantics and do not depend on this package, or vice versa.
package taskgraph
