package runtime

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// Graph is an immutable, validated collection of nodes forming a DAG.
// Construction is the only validation point: a Graph that exists is
// guaranteed to have unique ids, resolvable dependencies and no cycles, so
// execution never re-checks structure.
type Graph struct {
	nodes map[string]domain.Node
	order []string
}

// NewGraph validates a node set and builds the graph. It fails fast, before
// any task can run: duplicate ids, dependencies naming absent nodes and
// dependency cycles are all construction errors.
func NewGraph(nodes []domain.Node) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]domain.Node, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}
	for _, n := range nodes {
		if _, exists := g.nodes[n.ID]; exists {
			return nil, domain.DuplicateNodeError{ID: n.ID}
		}
		if n.Task == nil {
			return nil, fmt.Errorf("node %q has no task", n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}

	// Resolve every dependency id up front so a bad reference surfaces as a
	// typed error instead of a lookup failure mid-traversal.
	for _, id := range g.order {
		for _, dep := range g.nodes[id].DependsOn {
			if _, ok := g.nodes[dep]; !ok {
				return nil, domain.UnknownDependencyError{NodeID: id, Dependency: dep}
			}
		}
	}

	if err := g.checkCycles(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkCycles walks the dependency relation depth-first. seen marks nodes
// whose entire subtree is already proven acyclic; stack marks the nodes on
// the path currently being visited. Reaching a node already on the stack
// means the path loops back on itself. The traversal reports failure as an
// ordinary return value.
func (g *Graph) checkCycles() error {
	seen := make(map[string]bool, len(g.nodes))
	stack := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if stack[id] {
			return domain.CycleError{NodeID: id}
		}
		if seen[id] {
			return nil
		}
		stack[id] = true
		for _, dep := range g.nodes[id].DependsOn {
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(stack, id)
		seen[id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the nodes in their construction order.
func (g *Graph) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (domain.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// remaining lists the ids not yet marked done, in construction order.
func (g *Graph) remaining(done map[string]bool) []string {
	var out []string
	for _, id := range g.order {
		if !done[id] {
			out = append(out, id)
		}
	}
	return out
}
