package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// FlowRunner is the driving port: the single operation the delivery adapters
// (HTTP, MCP, CLI) need in order to execute a flow end to end. The returned
// record carries the final status, the per-node results and the failure
// message, if any.
type FlowRunner interface {
	RunFlow(ctx context.Context, flowID string, initial domain.Context) (domain.RunRecord, error)
}
