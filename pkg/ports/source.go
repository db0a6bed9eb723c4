package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// FlowSource defines how the host retrieves flow definitions.
// This keeps the definition backend (memory, Loam repository) decoupled from
// compilation and execution.
type FlowSource interface {
	// GetFlow retrieves a flow definition by id.
	// Returns domain.ErrFlowNotFound if the id resolves to nothing.
	GetFlow(ctx context.Context, id string) (domain.FlowSpec, error)

	// ListFlows returns the ids of every flow the source can provide.
	// Used for introspection and the 'arbor flows' command.
	ListFlows(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for sources that can notify about backend
// changes. This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying flow set
	// changes. It abstracts away the event details, signaling only that a
	// reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
