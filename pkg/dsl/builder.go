package dsl

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Builder accumulates nodes in declaration order.
type Builder struct {
	nodes []*NodeBuilder
	index map[string]*NodeBuilder
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{index: make(map[string]*NodeBuilder)}
}

// Node starts the node with the given id and returns its builder. Calling
// Node again with an id already declared reopens that node's builder, so ids
// stay unique by construction. Declaration order is preserved; it becomes the
// scheduler's scan order for nodes that are ready in the same pass.
func (b *Builder) Node(id string) *NodeBuilder {
	if nb, ok := b.index[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.Node{ID: id},
		builder: b,
	}
	b.nodes = append(b.nodes, nb)
	b.index[id] = nb
	return nb
}

// Build returns the accumulated nodes in declaration order. A node declared
// without a task is reported here rather than at graph construction, so the
// mistake points at the builder call site.
func (b *Builder) Build() ([]domain.Node, error) {
	out := make([]domain.Node, 0, len(b.nodes))
	for _, nb := range b.nodes {
		if nb.node.Task == nil {
			return nil, MissingTaskError{ID: nb.node.ID}
		}
		out = append(out, nb.node)
	}
	return out, nil
}
