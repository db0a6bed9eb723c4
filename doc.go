/*
Package arbor is a dependency-ordered task scheduler: it validates a set of
nodes as a directed acyclic graph and executes each node exactly once, after
all of its dependencies, feeding every node the accumulated outputs of the
nodes that ran before it.

All structural problems (duplicate ids, dependencies on unknown nodes,
cycles) are rejected at construction, before any task runs. A graph that
constructs always executes to completion or to the first task failure, which
is returned to the caller unmodified.

# Concept

Arbor separates three concerns. The engine (this package and the internal
runtime) owns ordering and data flow. Declarative flows — YAML/markdown
documents naming nodes by task kind — are compiled against a task registry
into runnable graphs. Delivery adapters (CLI, HTTP, MCP) drive the runner,
which wraps the engine with run records, locking and persistence. This
hexagonal split lets the same core serve an embedded library call, a REST
API and an agent toolchain.

# Usage

Build nodes, construct an engine, run it:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/domain"
	)

	func main() {
		nodes := []domain.Node{
			{
				ID: "fetch",
				Task: domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
					return map[string]any{"payload": "raw"}, nil
				}),
			},
			{
				ID:        "report",
				DependsOn: []string{"fetch"},
				Task: domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
					fetched := rc["fetch"].(map[string]any)
					return map[string]any{"summary": fmt.Sprint(fetched["payload"])}, nil
				}),
			},
		}

		eng, err := arbor.New(nodes)
		if err != nil {
			log.Fatal(err) // duplicate id, unknown dependency or cycle
		}

		results, err := eng.Run(context.Background(), nil)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(results["report"]["summary"])
	}

For declarative flows, run records and server surfaces, see pkg/runner and
the adapters under pkg/adapters.
*/
package arbor
