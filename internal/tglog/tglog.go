// Package tglog is the structured-logging seam used internally by
// [github.com/joeycumines/go-taskgraph] to report the one class of error
// the task-graph contract allows to be lost asynchronously: a
// fire-and-forget task's callable error (see the package docs for
// TaskCallableFailedError). It mirrors the shape of go-eventloop's logging
// seam (a minimal Logger interface, a no-op default), but is backed by
// [github.com/joeycumines/logiface] rather than a hand-rolled writer, since
// logiface is already the structured-logging library this author's modules
// standardize on.
package tglog

// Logger receives task-graph diagnostic events. Implementations must be
// safe for concurrent use; Dropped is called from arbitrary worker
// goroutines.
type Logger interface {
	// Dropped reports a fire-and-forget task's callable error, before the
	// task's checkpoints are decremented. category
	// identifies the call site ("execute", "dispatch"); fields are additional
	// structured context (e.g. segment position).
	Dropped(category string, err error, fields map[string]any)
}

// NoOp returns a Logger that discards everything. It is the default for a
// [*Pool] constructed without [WithLogger].
func NoOp() Logger { return noopLogger{} }

type noopLogger struct{}

func (noopLogger) Dropped(string, error, map[string]any) {}
