/*
Package domain contains the core domain models for the Arbor engine.

It defines the fundamental entities of dependency-ordered execution, such as
Nodes, Tasks, the run Context, and the per-run Result mapping. This package is
kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Node: a named unit of work plus the ids of the nodes it depends on.
  - Task: the single-method contract a node's work must satisfy.
  - Context: the shared key/value state a run starts from. Each node's output
    is folded back into it under the node's own id.
  - Results: the mapping from node id to that node's output, returned to the
    caller when a run completes.
  - FlowSpec: a declarative flow document (nodes by task kind) that a compiler
    turns into runnable Nodes.
  - RunRecord: the persisted summary of one engine run.

# Context visibility

Visibility in the run context is ambient, not scoped per dependency edge:
once a node has completed, its output is readable by every node executing in
a later pass, whether or not that node declared a dependency on the producer.
The DependsOn list gates ordering only. Task implementations should still
declare the dependencies they read, both for correct ordering and for
documentation.
*/
package domain
