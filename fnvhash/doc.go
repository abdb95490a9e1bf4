// Package fnvhash is an external collaborator of the task-graph thread
// pool: a content hasher parameterized on a kernel, unrelated to
// task-graph scheduling semantics.
package fnvhash
