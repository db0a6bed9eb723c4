package domain

import "fmt"

// NodeSpec is the declarative form of a node inside a flow document: which
// task kind to run, with what configuration, after which other nodes.
type NodeSpec struct {
	ID        string         `json:"id" yaml:"id" mapstructure:"id"`
	Task      string         `json:"task" yaml:"task" mapstructure:"task"`
	With      map[string]any `json:"with,omitempty" yaml:"with,omitempty" mapstructure:"with"`
	DependsOn []string       `json:"depends_on,omitempty" yaml:"depends_on,omitempty" mapstructure:"depends_on"`
}

// FlowSpec is a declarative flow: an ordered list of node specs plus
// presentation metadata. A compiler resolves each spec's task kind against a
// registry to produce runnable Nodes; graph-level validation (duplicates,
// unknown dependencies, cycles) happens at graph construction.
type FlowSpec struct {
	ID          string     `json:"id" yaml:"id" mapstructure:"id"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Nodes       []NodeSpec `json:"nodes" yaml:"nodes" mapstructure:"nodes"`
}

// Validate checks the declarative shape: ids and task kinds must be present.
// Structural graph properties are left to graph construction.
func (f FlowSpec) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("flow id is required")
	}
	if len(f.Nodes) == 0 {
		return fmt.Errorf("flow %q declares no nodes", f.ID)
	}
	for i, n := range f.Nodes {
		if n.ID == "" {
			return fmt.Errorf("flow %q: node at index %d has no id", f.ID, i)
		}
		if n.Task == "" {
			return fmt.Errorf("flow %q: node %q has no task kind", f.ID, n.ID)
		}
	}
	return nil
}
