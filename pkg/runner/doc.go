/*
Package runner orchestrates flow execution end to end.

It is the driving-side host the delivery adapters (CLI, HTTP, MCP) share:
resolve the flow from a FlowSource, compile its node specs against the task
registry, build and run the engine, persist the RunRecord, and hand the
finished record back. The engine itself stays ignorant of flows, stores and
transports; the runner is the one place those concerns meet.

A record is written when the run starts and finalized when it ends — no
intermediate node state is ever persisted.
*/
package runner
