package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart   EventType = "run_start"
	EventRunFinish  EventType = "run_finish"
	EventNodeStart  EventType = "node_start"
	EventNodeFinish EventType = "node_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Flow      string    `json:"flow,omitempty"`
}

// RunEvent marks the start or end of a whole run.
type RunEvent struct {
	EventBase
	NodeCount int           `json:"node_count"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// NodeEvent marks the start or end of one node's execution.
type NodeEvent struct {
	EventBase
	NodeID   string        `json:"node_id"`
	Pass     int           `json:"pass"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability. Nil fields are
// skipped. Hooks run synchronously on the executing goroutine and must stay
// cheap; with parallel passes enabled the node callbacks can fire
// concurrently, so implementations must be safe for concurrent use.
type LifecycleHooks struct {
	OnRunStart   func(context.Context, *RunEvent)
	OnRunFinish  func(context.Context, *RunEvent)
	OnNodeStart  func(context.Context, *NodeEvent)
	OnNodeFinish func(context.Context, *NodeEvent)
}

// ChainHooks merges hook sets into one that invokes each callback in order.
func ChainHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	out.OnRunStart = chainRun(hooks, func(h LifecycleHooks) func(context.Context, *RunEvent) { return h.OnRunStart })
	out.OnRunFinish = chainRun(hooks, func(h LifecycleHooks) func(context.Context, *RunEvent) { return h.OnRunFinish })
	out.OnNodeStart = chainNode(hooks, func(h LifecycleHooks) func(context.Context, *NodeEvent) { return h.OnNodeStart })
	out.OnNodeFinish = chainNode(hooks, func(h LifecycleHooks) func(context.Context, *NodeEvent) { return h.OnNodeFinish })
	return out
}

func chainRun(hooks []LifecycleHooks, pick func(LifecycleHooks) func(context.Context, *RunEvent)) func(context.Context, *RunEvent) {
	var fns []func(context.Context, *RunEvent)
	for _, h := range hooks {
		if fn := pick(h); fn != nil {
			fns = append(fns, fn)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, ev *RunEvent) {
		for _, fn := range fns {
			fn(ctx, ev)
		}
	}
}

func chainNode(hooks []LifecycleHooks, pick func(LifecycleHooks) func(context.Context, *NodeEvent)) func(context.Context, *NodeEvent) {
	var fns []func(context.Context, *NodeEvent)
	for _, h := range hooks {
		if fn := pick(h); fn != nil {
			fns = append(fns, fn)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, ev *NodeEvent) {
		for _, fn := range fns {
			fn(ctx, ev)
		}
	}
}
