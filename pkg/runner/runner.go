package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/runs"
)

// Runner executes flows end to end and records the outcome.
type Runner struct {
	source   ports.FlowSource
	store    ports.RunStore
	registry *registry.Registry
	compiler *compiler.Compiler
	runs     *runs.Manager

	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	parallelism int
}

// New creates a runner reading flows from the given source.
func New(source ports.FlowSource, opts ...Option) *Runner {
	r := &Runner{
		source: source,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = memory.NewStore()
	}
	if r.registry == nil {
		r.registry = registry.NewDefault()
	}
	if r.runs == nil {
		r.runs = runs.NewManager(runs.WithLogger(r.logger))
	}
	r.compiler = compiler.New(r.registry)
	return r
}

// Store returns the run record store, for adapters that expose run history.
func (r *Runner) Store() ports.RunStore {
	return r.store
}

// ListFlows returns the ids the flow source can provide.
func (r *Runner) ListFlows(ctx context.Context) ([]string, error) {
	return r.source.ListFlows(ctx)
}

// Watch returns a channel that signals when the underlying flow set changes.
// Returns an error if the flow source does not support watching.
func (r *Runner) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, ok := r.source.(ports.Watchable)
	if !ok {
		return nil, fmt.Errorf("current flow source does not support watching")
	}
	return w.Watch(ctx)
}

// DescribeFlow returns the declarative definition of a flow.
func (r *Runner) DescribeFlow(ctx context.Context, flowID string) (domain.FlowSpec, error) {
	return r.source.GetFlow(ctx, flowID)
}

// CompileFlow resolves and compiles a flow, then validates it as a graph.
// It runs the full construction path without executing anything, which is
// what `arbor validate` and the graph endpoints need.
func (r *Runner) CompileFlow(ctx context.Context, flowID string) ([]domain.Node, error) {
	flow, err := r.source.GetFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}
	nodes, err := r.compiler.Compile(flow)
	if err != nil {
		return nil, err
	}
	if _, err := runtime.NewGraph(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// RunFlow executes a flow with the given initial context and returns the
// finished record. Resolution, compilation and graph validation fail before
// any record is written or any task runs. Once execution starts, a running
// record is persisted, the engine runs under the run id's lock, and the
// record is finalized with the results or the failure.
//
// On node failure the record is returned alongside the node's own error,
// unmodified, so callers can both inspect the record and match the error.
func (r *Runner) RunFlow(ctx context.Context, flowID string, initial domain.Context) (domain.RunRecord, error) {
	flow, err := r.source.GetFlow(ctx, flowID)
	if err != nil {
		return domain.RunRecord{}, err
	}
	nodes, err := r.compiler.Compile(flow)
	if err != nil {
		return domain.RunRecord{}, err
	}
	graph, err := runtime.NewGraph(nodes)
	if err != nil {
		return domain.RunRecord{}, err
	}

	record := domain.RunRecord{
		ID:        uuid.NewString(),
		Flow:      flow.ID,
		Status:    domain.RunRunning,
		StartedAt: time.Now().UTC(),
	}
	logger := r.logger.With("run_id", record.ID, "flow", flow.ID)

	err = r.runs.WithLock(ctx, record.ID, func(ctx context.Context) error {
		if err := r.store.Save(ctx, record); err != nil {
			return fmt.Errorf("failed to persist run start: %w", err)
		}
		logger.Info("run started", "nodes", graph.Len())

		engine := runtime.NewEngine(graph,
			runtime.WithLogger(logger),
			runtime.WithHooks(r.hooks),
			runtime.WithParallelism(r.parallelism),
		)

		results, runErr := engine.Run(ctx, initial)

		finished := time.Now().UTC()
		record.FinishedAt = &finished
		if runErr != nil {
			record.Status = domain.RunFailed
			record.Error = runErr.Error()
			if saveErr := r.store.Save(ctx, record); saveErr != nil {
				logger.Error("failed to persist failed run", "err", saveErr)
			}
			logger.Error("run failed", "err", runErr)
			// The node's error, not a wrapper: callers match it directly.
			return runErr
		}

		record.Status = domain.RunCompleted
		record.Results = results
		if saveErr := r.store.Save(ctx, record); saveErr != nil {
			return fmt.Errorf("failed to persist finished run: %w", saveErr)
		}
		logger.Info("run completed", "duration", finished.Sub(record.StartedAt))
		return nil
	})

	return record, err
}
