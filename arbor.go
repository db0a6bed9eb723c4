package arbor

import (
	"context"
	"log/slog"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
)

// Engine is the high-level entry point for embedding the library: a validated
// dependency graph plus the scheduler that executes it. Construction performs
// all structural validation; a constructed Engine always runs to completion
// or to the first node failure.
type Engine struct {
	graph       *runtime.Graph
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	parallelism int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithParallelism lets each scheduler pass execute up to n ready nodes
// concurrently. Zero or one keeps execution sequential.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// New validates the node set and builds an Engine over it.
//
// Validation rejects duplicate ids (domain.DuplicateNodeError), dependencies
// naming no node (domain.UnknownDependencyError) and dependency cycles
// (domain.CycleError). Self-dependencies are cycles of length one.
func New(nodes []domain.Node, opts ...Option) (*Engine, error) {
	graph, err := runtime.NewGraph(nodes)
	if err != nil {
		return nil, err
	}

	eng := &Engine{graph: graph}
	for _, opt := range opts {
		opt(eng)
	}
	return eng, nil
}

// Run executes every node in dependency order and returns each node's output
// keyed by node id. The initial context is visible to all nodes; each node
// additionally sees the outputs of every node that finished before it,
// keyed by the producing node's id.
//
// The first node failure stops scheduling and is returned unmodified, so
// callers can match it with errors.Is and errors.As.
func (e *Engine) Run(ctx context.Context, initial domain.Context) (domain.Results, error) {
	opts := []runtime.EngineOption{
		runtime.WithHooks(e.hooks),
		runtime.WithParallelism(e.parallelism),
	}
	if e.logger != nil {
		opts = append(opts, runtime.WithLogger(e.logger))
	}
	return runtime.NewEngine(e.graph, opts...).Run(ctx, initial)
}

// Nodes returns the validated node set in its original declaration order.
func (e *Engine) Nodes() []domain.Node {
	return e.graph.Nodes()
}

// Len returns the number of nodes in the graph.
func (e *Engine) Len() int {
	return e.graph.Len()
}
