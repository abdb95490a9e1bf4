// Package shm is an external collaborator of the task-graph thread
// pool: named shared-memory segments, unrelated to task-graph scheduling
// semantics.
package shm
