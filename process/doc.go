// Package process is an external collaborator of the task-graph thread
// pool: a child-process runner, unrelated to task-graph scheduling
// semantics.
package process
