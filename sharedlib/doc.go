// Package sharedlib is an external collaborator of the task-graph thread
// pool: a shared-library loader, unrelated to task-graph scheduling
// semantics.
package sharedlib
