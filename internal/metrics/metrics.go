// Package metrics exposes engine lifecycle activity as Prometheus metrics.
// The collector plugs into the engine through domain.LifecycleHooks, so the
// core stays ignorant of instrumentation.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/arbor/pkg/domain"
)

// Collector holds the engine metrics.
type Collector struct {
	runsTotal     *prometheus.CounterVec
	runDuration   prometheus.Histogram
	nodeDuration  *prometheus.HistogramVec
	nodesInflight prometheus.Gauge
}

// NewCollector creates and registers the collectors. Pass
// prometheus.DefaultRegisterer for process-wide metrics or a private
// registry in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "runs_total",
			Help:      "Completed runs by final status.",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arbor",
			Name:      "run_duration_seconds",
			Help:      "Wall time of whole runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		nodeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arbor",
			Name:      "node_duration_seconds",
			Help:      "Execution time of individual nodes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"node"}),
		nodesInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "arbor",
			Name:      "nodes_inflight",
			Help:      "Nodes currently executing.",
		}),
	}
	reg.MustRegister(c.runsTotal, c.runDuration, c.nodeDuration, c.nodesInflight)
	return c
}

// Hooks returns the lifecycle hooks feeding this collector. Safe for
// concurrent use; parallel passes fire the node callbacks concurrently.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeStart: func(ctx context.Context, e *domain.NodeEvent) {
			c.nodesInflight.Inc()
		},
		OnNodeFinish: func(ctx context.Context, e *domain.NodeEvent) {
			c.nodesInflight.Dec()
			c.nodeDuration.WithLabelValues(e.NodeID).Observe(e.Duration.Seconds())
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			status := "completed"
			if e.Err != nil {
				status = "failed"
			}
			c.runsTotal.WithLabelValues(status).Inc()
			c.runDuration.Observe(e.Duration.Seconds())
		},
	}
}
