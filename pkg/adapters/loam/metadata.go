package loam

// FlowMetadata is the frontmatter of a flow document. It uses "mapstructure"
// tags to match the YAML keys Loam decodes.
type FlowMetadata struct {
	ID          string     `json:"id" mapstructure:"id"`
	Title       string     `json:"title" mapstructure:"title"`
	Description string     `json:"description" mapstructure:"description"`
	Nodes       []FlowNode `json:"nodes" mapstructure:"nodes"`
}

// FlowNode is one node declaration inside a flow document. "uses" and
// "needs" are accepted as aliases for "task" and "depends_on" so documents
// read naturally either way.
type FlowNode struct {
	ID        string         `json:"id" mapstructure:"id"`
	Task      string         `json:"task" mapstructure:"task"`
	Uses      string         `json:"uses" mapstructure:"uses"`
	With      map[string]any `json:"with" mapstructure:"with"`
	DependsOn []string       `json:"depends_on" mapstructure:"depends_on"`
	Needs     []string       `json:"needs" mapstructure:"needs"`
}

func (n FlowNode) task() string {
	if n.Task != "" {
		return n.Task
	}
	return n.Uses
}

func (n FlowNode) dependsOn() []string {
	if len(n.DependsOn) > 0 {
		return n.DependsOn
	}
	return n.Needs
}
