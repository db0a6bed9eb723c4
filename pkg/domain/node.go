package domain

import "context"

// Task is the unit-of-work contract for a node. Implementations receive the
// run context accumulated so far (the caller's initial values plus the output
// of every node completed in an earlier pass, keyed by producer id) and return
// the partial result for this node only.
//
// The engine treats a Task as opaque: it may be a pure computation or may call
// out to collaborators (APIs, file writes). The snapshot passed in is the
// task's own copy; mutating it never affects the live run state. Returning an
// error aborts the whole run.
type Task interface {
	Execute(ctx context.Context, rc Context) (map[string]any, error)
}

// TaskFunc adapts an ordinary function into a Task, mirroring http.HandlerFunc.
type TaskFunc func(ctx context.Context, rc Context) (map[string]any, error)

// Execute calls f(ctx, rc).
func (f TaskFunc) Execute(ctx context.Context, rc Context) (map[string]any, error) {
	return f(ctx, rc)
}

// Node represents a single named unit of work in a graph.
type Node struct {
	// ID identifies the node. It must be unique within a graph; the node's
	// output is exposed to later nodes under this key.
	ID string `json:"id" yaml:"id"`

	// Task is the work executed when every dependency has completed.
	Task Task `json:"-" yaml:"-"`

	// DependsOn lists the ids of the nodes that must complete before this one
	// becomes ready. Order carries no meaning. Every id must name another node
	// in the same graph; graph construction fails otherwise.
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}
