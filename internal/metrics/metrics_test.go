package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
)

func TestCollectorCountsRuns(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())

	g, err := runtime.NewGraph([]domain.Node{
		{ID: "a", Task: domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
			return map[string]any{}, nil
		})},
	})
	require.NoError(t, err)

	_, err = runtime.NewEngine(g, runtime.WithHooks(collector.Hooks())).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(collector.runsTotal.WithLabelValues("completed")))
	assert.Equal(t, float64(0), testutil.ToFloat64(collector.nodesInflight), "inflight gauge must return to zero")
}

func TestCollectorCountsFailures(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())
	hooks := collector.Hooks()

	hooks.OnRunFinish(context.Background(), &domain.RunEvent{
		EventBase: domain.EventBase{Type: domain.EventRunFinish},
		Duration:  10 * time.Millisecond,
		Err:       errors.New("boom"),
	})

	assert.Equal(t, float64(1), testutil.ToFloat64(collector.runsTotal.WithLabelValues("failed")))
}

func TestCollectorObservesNodeDuration(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())
	hooks := collector.Hooks()
	ctx := context.Background()

	hooks.OnNodeStart(ctx, &domain.NodeEvent{NodeID: "a"})
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.nodesInflight))

	hooks.OnNodeFinish(ctx, &domain.NodeEvent{NodeID: "a", Duration: 5 * time.Millisecond})
	assert.Equal(t, float64(0), testutil.ToFloat64(collector.nodesInflight))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.nodeDuration))
}
