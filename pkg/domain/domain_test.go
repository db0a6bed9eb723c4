package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestMerged(t *testing.T) {
	t.Run("Overlays Results By Producer Id", func(t *testing.T) {
		initial := domain.Context{"topic": "planning", "A": "caller value"}
		results := domain.Results{
			"A": {"x": 1},
		}

		merged := domain.Merged(initial, results)

		assert.Equal(t, "planning", merged["topic"])
		// A result shadows a caller-supplied entry of the same name.
		assert.Equal(t, map[string]any{"x": 1}, merged["A"])
	})

	t.Run("Inputs Are Not Mutated", func(t *testing.T) {
		initial := domain.Context{"topic": "planning"}
		results := domain.Results{"A": {"x": 1}}

		merged := domain.Merged(initial, results)
		merged["extra"] = true

		assert.NotContains(t, initial, "extra")
		assert.NotContains(t, results, "extra")
	})
}

func TestContextClone(t *testing.T) {
	rc := domain.Context{"k": "v"}
	clone := rc.Clone()
	clone["k2"] = "v2"

	assert.NotContains(t, rc, "k2")
	assert.Equal(t, "v", clone["k"])
}

func TestChainHooks(t *testing.T) {
	t.Run("Invokes All Callbacks In Order", func(t *testing.T) {
		var calls []string
		a := domain.LifecycleHooks{
			OnNodeFinish: func(_ context.Context, ev *domain.NodeEvent) {
				calls = append(calls, "a:"+ev.NodeID)
			},
		}
		b := domain.LifecycleHooks{
			OnNodeFinish: func(_ context.Context, ev *domain.NodeEvent) {
				calls = append(calls, "b:"+ev.NodeID)
			},
		}

		chained := domain.ChainHooks(a, b)
		require.NotNil(t, chained.OnNodeFinish)
		chained.OnNodeFinish(context.Background(), &domain.NodeEvent{NodeID: "n1"})

		assert.Equal(t, []string{"a:n1", "b:n1"}, calls)
	})

	t.Run("Empty Chain Keeps Nil Callbacks", func(t *testing.T) {
		chained := domain.ChainHooks(domain.LifecycleHooks{}, domain.LifecycleHooks{})
		assert.Nil(t, chained.OnRunStart)
		assert.Nil(t, chained.OnNodeFinish)
	})
}

func TestFlowSpecValidate(t *testing.T) {
	valid := domain.FlowSpec{
		ID: "standup",
		Nodes: []domain.NodeSpec{
			{ID: "collect", Task: "static"},
			{ID: "minutes", Task: "minutes.standup", DependsOn: []string{"collect"}},
		},
	}

	t.Run("Valid Spec Passes", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("Missing Flow Id", func(t *testing.T) {
		spec := valid
		spec.ID = ""
		assert.ErrorContains(t, spec.Validate(), "flow id is required")
	})

	t.Run("Empty Node List", func(t *testing.T) {
		spec := valid
		spec.Nodes = nil
		assert.ErrorContains(t, spec.Validate(), "declares no nodes")
	})

	t.Run("Node Without Task Kind", func(t *testing.T) {
		spec := valid
		spec.Nodes = []domain.NodeSpec{{ID: "collect"}}
		assert.ErrorContains(t, spec.Validate(), `node "collect" has no task kind`)
	})
}
