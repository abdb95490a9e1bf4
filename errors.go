package taskgraph

import "fmt"

// InvalidArgumentError indicates a precondition on an argument was
// violated, e.g. a zero dispatch extent, or an empty name where one is
// forbidden.
type InvalidArgumentError struct {
	// Message describes which argument, and why it was rejected.
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("taskgraph: invalid argument: %s", e.Message)
}

// BuilderExhaustedError indicates a [*Builder] was used after
// [Builder.Build]: Build called a second time, or any further task,
// checkpoint, barrier, fence or dispatch recorded. A Builder is single-use.
type BuilderExhaustedError struct{}

// Error implements the error interface.
func (e *BuilderExhaustedError) Error() string {
	return "taskgraph: builder already built"
}

// SubmissionClosedError indicates an attempt to submit work ([Pool.Push],
// [Pool.Execute], [PoolInvoke]) to a [*Pool] that is shutting down or has
// already shut down.
type SubmissionClosedError struct{}

// Error implements the error interface.
func (e *SubmissionClosedError) Error() string {
	return "taskgraph: pool is not accepting submissions"
}

// TaskCallableFailedError wraps an error returned by caller-supplied task
// code. For a value-returning task, it is captured into the task's
// [*Future] and surfaced by [Future.Get]. For a fire-and-forget task, it is
// logged and dropped — see [Builder.Execute] for the swallow policy.
type TaskCallableFailedError struct {
	// Err is the error the task's callable returned.
	Err error
}

// Error implements the error interface.
func (e *TaskCallableFailedError) Error() string {
	return fmt.Sprintf("taskgraph: task callable failed: %v", e.Err)
}

// Unwrap returns the wrapped callable error, for use with [errors.Is] and
// [errors.As].
func (e *TaskCallableFailedError) Unwrap() error {
	return e.Err
}

// DestroyedWhileActiveError is returned by [Pool.Close] when the [*Pool]
// still has active task lists or queued work. Close then shuts nothing
// down: the pool keeps running with its work intact, and Close may be
// called again once that work has drained (see [Pool.WaitIdle]).
type DestroyedWhileActiveError struct {
	// ActiveLists is the number of task lists still registered.
	ActiveLists int
	// ReadyItems is the number of ready-queue items not yet executed.
	ReadyItems int
}

// Error implements the error interface.
func (e *DestroyedWhileActiveError) Error() string {
	return fmt.Sprintf(
		"taskgraph: pool destroyed while active: %d task list(s), %d queued item(s) outstanding",
		e.ActiveLists, e.ReadyItems,
	)
}
