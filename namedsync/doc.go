// Package namedsync is an external collaborator of the task-graph
// thread pool: named mutex and semaphore primitives, unrelated to
// task-graph scheduling semantics.
package namedsync
