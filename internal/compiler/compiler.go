// Package compiler turns declarative flow definitions into runnable nodes.
package compiler

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// Compiler resolves each node spec's task kind against a registry.
type Compiler struct {
	registry *registry.Registry
}

// New creates a compiler backed by the given registry.
func New(reg *registry.Registry) *Compiler {
	return &Compiler{registry: reg}
}

// Compile validates the declarative shape of a flow and builds one
// domain.Node per spec, preserving declaration order. Structural graph
// validation (duplicate ids, unknown dependencies, cycles) is left to graph
// construction; the compiler's job ends at "every kind resolves and every
// task builds".
func (c *Compiler) Compile(flow domain.FlowSpec) ([]domain.Node, error) {
	if err := flow.Validate(); err != nil {
		return nil, err
	}

	nodes := make([]domain.Node, 0, len(flow.Nodes))
	for _, spec := range flow.Nodes {
		task, err := c.registry.Build(spec.Task, spec.With)
		if err != nil {
			return nil, fmt.Errorf("flow %q: node %q: %w", flow.ID, spec.ID, err)
		}
		nodes = append(nodes, domain.Node{
			ID:        spec.ID,
			Task:      task,
			DependsOn: spec.DependsOn,
		})
	}
	return nodes, nil
}
