/*
Package ports defines the driven ports (interfaces) for the Arbor engine.

These interfaces decouple the core logic from external implementations,
allowing flows to be loaded from memory or document repositories, run records
to be persisted in different backends, and rendered artifacts to land wherever
the host wants them.

# Key Interfaces

  - FlowSource: resolves declarative flow definitions by id.
  - RunStore: persists and loads RunRecord summaries.
  - ArtifactStore: receives rendered documents (markdown, JSON) produced by tasks.
  - DistributedLocker: coordinates run ownership across replicas.
  - FlowRunner: the driving port adapters (HTTP, MCP, CLI) call to execute a flow.

The package also ships contract test suites (RunStoreContract,
ArtifactStoreContract) so every adapter proves the same behavior.
*/
package ports
