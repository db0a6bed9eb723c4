package runner

import (
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/runs"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithStore sets the run record store. Defaults to an in-memory store.
func WithStore(store ports.RunStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithRegistry sets the task registry. Defaults to the built-in kinds.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithHooks registers lifecycle hooks forwarded to every engine run.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithParallelism lets up to n ready nodes of one pass execute concurrently.
// Values below 2 keep the sequential default.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		r.parallelism = n
	}
}

// WithRunManager sets the run ownership manager, typically to share one
// manager (and its distributed locker) across runners.
func WithRunManager(manager *runs.Manager) Option {
	return func(r *Runner) {
		r.runs = manager
	}
}
