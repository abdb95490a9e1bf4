// Package pipe is an external collaborator of the task-graph thread
// pool: anonymous and named pipe streams, unrelated to task-graph
// scheduling semantics.
package pipe
