package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
)

// Engine executes a validated Graph's nodes exactly once each, in dependency
// order, and produces the aggregated result mapping.
type Engine struct {
	graph       *Graph
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	parallelism int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger for the engine. Defaults to a no-op
// logger so library consumers opt in to output.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithParallelism allows up to n ready nodes of one pass to execute
// concurrently. Values below 2 keep the sequential reference behavior.
// See Run for how parallel passes differ from sequential ones.
func WithParallelism(n int) EngineOption {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// NewEngine creates an engine for one validated graph.
func NewEngine(graph *Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:  graph,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every node in the graph and returns the mapping from node id
// to that node's output. Execution proceeds in passes: each pass scans the
// not-yet-done nodes in construction order and executes the ones whose
// dependencies have all completed. A node's task receives the union of the
// initial context and every output accumulated so far, each output keyed by
// its producer's id.
//
// Sequentially (the default), a node executed early in a pass is visible to
// nodes later in the same pass's scan. With parallelism enabled, readiness
// and context are snapshotted once per pass and the pass's outputs are merged
// only after all of its nodes complete, so same-pass siblings never observe
// each other.
//
// A task error aborts the run and is returned to the caller unmodified; no
// retry, no partial results. The engine adds no cancellation of its own:
// ctx is handed to tasks, and honoring it is their business.
func (e *Engine) Run(ctx context.Context, initial domain.Context) (domain.Results, error) {
	if initial == nil {
		initial = domain.Context{}
	}
	total := e.graph.Len()
	results := make(domain.Results, total)
	done := make(map[string]bool, total)

	start := time.Now()
	e.emitRun(ctx, domain.EventRunStart, 0, nil)
	e.logger.Debug("run started", "nodes", total)

	pass := 0
	for len(done) < total {
		pass++

		var executed int
		var err error
		if e.parallelism > 1 {
			executed, err = e.runPassParallel(ctx, pass, initial, results, done)
		} else {
			executed, err = e.runPassSequential(ctx, pass, initial, results, done)
		}
		if err != nil {
			e.emitRun(ctx, domain.EventRunFinish, time.Since(start), err)
			return nil, err
		}
		if executed == 0 {
			// Unreachable for a graph that passed construction validation;
			// kept so a broken invariant fails loudly instead of spinning.
			err := domain.NoProgressError{Remaining: e.graph.remaining(done)}
			e.logger.Error("run stalled", "err", err)
			e.emitRun(ctx, domain.EventRunFinish, time.Since(start), err)
			return nil, err
		}
	}

	e.emitRun(ctx, domain.EventRunFinish, time.Since(start), nil)
	e.logger.Debug("run completed", "nodes", total, "passes", pass, "duration", time.Since(start))
	return results, nil
}

// runPassSequential scans in construction order and executes each ready node
// immediately, so nodes later in the scan already see its output.
func (e *Engine) runPassSequential(ctx context.Context, pass int, initial domain.Context, results domain.Results, done map[string]bool) (int, error) {
	executed := 0
	for _, id := range e.graph.order {
		if done[id] {
			continue
		}
		node := e.graph.nodes[id]
		if !depsDone(node, done) {
			continue
		}
		output, err := e.execute(ctx, pass, node, domain.Merged(initial, results))
		if err != nil {
			return executed, err
		}
		results[id] = output
		done[id] = true
		executed++
	}
	return executed, nil
}

// runPassParallel snapshots readiness and context at the start of the pass,
// executes the ready set concurrently, and merges the collected outputs only
// after the whole pass has joined. The merge-after-barrier is the single
// synchronization point: outputs are written at most once and never mutated,
// so no per-key locking is needed.
func (e *Engine) runPassParallel(ctx context.Context, pass int, initial domain.Context, results domain.Results, done map[string]bool) (int, error) {
	var ready []domain.Node
	for _, id := range e.graph.order {
		if done[id] {
			continue
		}
		if node := e.graph.nodes[id]; depsDone(node, done) {
			ready = append(ready, node)
		}
	}
	if len(ready) == 0 {
		return 0, nil
	}

	snapshot := domain.Merged(initial, results)
	batch := make(domain.Results, len(ready))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.parallelism)
	for _, node := range ready {
		group.Go(func() error {
			output, err := e.execute(groupCtx, pass, node, snapshot.Clone())
			if err != nil {
				return err
			}
			mu.Lock()
			batch[node.ID] = output
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	for id, output := range batch {
		results[id] = output
		done[id] = true
	}
	return len(ready), nil
}

// execute runs a single node's task against its own context copy.
func (e *Engine) execute(ctx context.Context, pass int, node domain.Node, rc domain.Context) (map[string]any, error) {
	e.emitNode(ctx, domain.EventNodeStart, node.ID, pass, 0, nil)
	e.logger.Debug("node started", "node", node.ID, "pass", pass)

	start := time.Now()
	output, err := node.Task.Execute(ctx, rc)
	elapsed := time.Since(start)

	e.emitNode(ctx, domain.EventNodeFinish, node.ID, pass, elapsed, err)
	if err != nil {
		e.logger.Error("node failed", "node", node.ID, "pass", pass, "err", err)
		return nil, err
	}
	e.logger.Debug("node completed", "node", node.ID, "pass", pass, "duration", elapsed)
	return output, nil
}

func depsDone(node domain.Node, done map[string]bool) bool {
	for _, dep := range node.DependsOn {
		if !done[dep] {
			return false
		}
	}
	return true
}

func (e *Engine) emitRun(ctx context.Context, typ domain.EventType, duration time.Duration, err error) {
	var fn func(context.Context, *domain.RunEvent)
	switch typ {
	case domain.EventRunStart:
		fn = e.hooks.OnRunStart
	case domain.EventRunFinish:
		fn = e.hooks.OnRunFinish
	}
	if fn == nil {
		return
	}
	fn(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ},
		NodeCount: e.graph.Len(),
		Duration:  duration,
		Err:       err,
	})
}

func (e *Engine) emitNode(ctx context.Context, typ domain.EventType, nodeID string, pass int, duration time.Duration, err error) {
	var fn func(context.Context, *domain.NodeEvent)
	switch typ {
	case domain.EventNodeStart:
		fn = e.hooks.OnNodeStart
	case domain.EventNodeFinish:
		fn = e.hooks.OnNodeFinish
	}
	if fn == nil {
		return
	}
	fn(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ},
		NodeID:    nodeID,
		Pass:      pass,
		Duration:  duration,
		Err:       err,
	})
}
