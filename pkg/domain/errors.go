package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrFlowNotFound is returned when a flow ID cannot be resolved by a source.
var ErrFlowNotFound = errors.New("flow not found")

// DuplicateNodeError reports two nodes sharing one id. Construction rejects
// the set outright instead of letting the later definition shadow the
// earlier one.
type DuplicateNodeError struct {
	ID string
}

func (e DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate node id %q", e.ID)
}

// UnknownDependencyError reports a node depending on an id that names no node
// in the graph. Detected at construction, never at run time.
type UnknownDependencyError struct {
	NodeID     string
	Dependency string
}

func (e UnknownDependencyError) Error() string {
	return fmt.Sprintf("node %q depends on unknown node %q", e.NodeID, e.Dependency)
}

// CycleError reports a dependency cycle. NodeID names one node known to sit
// on the cycle; the full membership is not enumerated.
type CycleError struct {
	NodeID string
}

func (e CycleError) Error() string {
	return fmt.Sprintf("cycle detected involving node %q", e.NodeID)
}

// NoProgressError reports a scheduler pass that executed nothing while nodes
// remained. A graph that passed construction validation cannot trigger it;
// the engine still checks so a broken invariant surfaces as an error instead
// of an endless loop.
type NoProgressError struct {
	Remaining []string
}

func (e NoProgressError) Error() string {
	return fmt.Sprintf("run made no progress with %d node(s) remaining: %s",
		len(e.Remaining), strings.Join(e.Remaining, ", "))
}
