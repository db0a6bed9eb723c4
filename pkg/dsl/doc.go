/*
Package dsl provides a fluent builder for constructing Arbor node sets in Go.

It lets embedded consumers declare a DAG without flow documents, with IDE
autocompletion and type checking instead of YAML:

	nodes, err := dsl.New().
		Node("fetch").Run(fetchTask).
		Node("summarize").After("fetch").Run(summarizeTask).
		Node("publish").After("summarize").Run(publishTask).
		Build()
	if err != nil {
		// a node was declared without a task
	}
	engine, err := arbor.New(nodes)

Ids stay unique by construction (Node reopens an existing id) and Build
reports task-less nodes; unresolved dependencies and cycles are caught by
graph construction when the node set is handed to the engine.
*/
package dsl
