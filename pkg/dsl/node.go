package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// MissingTaskError reports a node declared without Run or Task.
type MissingTaskError struct {
	ID string
}

func (e MissingTaskError) Error() string {
	return fmt.Sprintf("node %q declared without a task", e.ID)
}

// NodeBuilder provides a fluent API for configuring one node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Run sets the node's work as a plain function.
func (n *NodeBuilder) Run(fn func(ctx context.Context, rc domain.Context) (map[string]any, error)) *NodeBuilder {
	n.node.Task = domain.TaskFunc(fn)
	return n
}

// Task sets the node's work as a Task implementation.
func (n *NodeBuilder) Task(task domain.Task) *NodeBuilder {
	n.node.Task = task
	return n
}

// After declares the ids that must complete before this node runs.
func (n *NodeBuilder) After(ids ...string) *NodeBuilder {
	n.node.DependsOn = append(n.node.DependsOn, ids...)
	return n
}

// Static sets the node's work to return the given output verbatim. Useful
// for seeding downstream context in embedded flows and tests.
func (n *NodeBuilder) Static(output map[string]any) *NodeBuilder {
	n.node.Task = domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
		return output, nil
	})
	return n
}

// Node starts the next node on the parent builder, enabling chained
// declarations.
func (n *NodeBuilder) Node(id string) *NodeBuilder {
	return n.builder.Node(id)
}

// Build finishes the whole builder, not just this node.
func (n *NodeBuilder) Build() ([]domain.Node, error) {
	return n.builder.Build()
}
