// Package registry maps declarative task kinds to runnable tasks.
//
// Flow documents name their work by kind ("static", "minutes.standup", ...);
// a Registry holds the factory for each kind and builds the concrete
// domain.Task from the node's `with:` configuration at compile time.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/arbor/pkg/domain"
)

// Factory builds a Task from a node's configuration map. Factories should
// validate their configuration and fail here, at compile time, rather than
// mid-run.
type Factory func(config map[string]any) (domain.Task, error)

// UnknownKindError reports a flow node naming a kind no factory was
// registered for.
type UnknownKindError struct {
	Kind string
}

func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown task kind %q", e.Kind)
}

// Registry manages the available task kinds.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory for a kind.
// If the kind is already registered, it is overwritten.
func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Build looks up a kind and constructs a task from the given configuration.
func (r *Registry) Build(kind string, config map[string]any) (domain.Task, error) {
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, UnknownKindError{Kind: kind}
	}
	return factory(config)
}

// Kinds returns the registered kind names in no particular order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		out = append(out, kind)
	}
	return out
}

// NewDefault creates a registry with the built-in kinds pre-registered.
func NewDefault() *Registry {
	r := New()
	RegisterBuiltins(r)
	return r
}

// RegisterBuiltins adds the task kinds that ship with the engine:
//
//   - "static": returns its `values` configuration verbatim. Useful for
//     seeding context for downstream nodes and for wiring test flows.
//   - "clock": returns the current time under `now`, formatted by the
//     optional `format` configuration (default RFC 3339).
func RegisterBuiltins(r *Registry) {
	r.Register("static", func(config map[string]any) (domain.Task, error) {
		var cfg staticConfig
		if err := mapstructure.Decode(config, &cfg); err != nil {
			return nil, fmt.Errorf("static: failed to decode config: %w", err)
		}
		values := cfg.Values
		if values == nil {
			values = map[string]any{}
		}
		return domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
			return values, nil
		}), nil
	})

	r.Register("clock", func(config map[string]any) (domain.Task, error) {
		var cfg clockConfig
		if err := mapstructure.Decode(config, &cfg); err != nil {
			return nil, fmt.Errorf("clock: failed to decode config: %w", err)
		}
		format := cfg.Format
		if format == "" {
			format = time.RFC3339
		}
		return domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
			return map[string]any{"now": time.Now().Format(format)}, nil
		}), nil
	})
}

type staticConfig struct {
	Values map[string]any `mapstructure:"values"`
}

type clockConfig struct {
	Format string `mapstructure:"format"`
}
