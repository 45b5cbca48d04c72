// Package metrics exposes Prometheus collectors fed by engine lifecycle hooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors groups every wordgraph metric.
type Collectors struct {
	WalkSteps     *prometheus.CounterVec
	WalksEnded    *prometheus.CounterVec
	WalkHops      prometheus.Histogram
	TraceFailures prometheus.Counter
	Queries       *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry.
func New() *Collectors {
	c := &Collectors{
		WalkSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordgraph_walk_steps_total",
				Help: "Total number of random-walk steps by outcome",
			},
			[]string{"outcome"},
		),
		WalksEnded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordgraph_walks_total",
				Help: "Total number of finished random walks by outcome",
			},
			[]string{"outcome"},
		),
		WalkHops: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordgraph_walk_hops",
				Help:    "Number of hops of finished random walks",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
		TraceFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordgraph_trace_write_failures_total",
				Help: "Total number of walk traces that could not be persisted",
			},
		),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordgraph_queries_total",
				Help: "Total number of graph queries by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "wordgraph_query_duration_seconds",
				Help: "Duration of graph queries",
			},
			[]string{"kind"},
		),
		registry: prometheus.NewRegistry(),
	}

	c.registry.MustRegister(c.WalkSteps, c.WalksEnded, c.WalkHops, c.TraceFailures, c.Queries, c.QueryDuration)
	return c
}

// Registry returns the registry holding the collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that update the collectors.
func (c *Collectors) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnWalkStep: func(_ context.Context, e *domain.WalkEvent) {
			c.WalkSteps.WithLabelValues(string(e.Kind)).Inc()
		},
		OnWalkEnd: func(_ context.Context, e *domain.WalkEvent) {
			c.WalksEnded.WithLabelValues(string(e.Kind)).Inc()
			c.WalkHops.Observe(float64(e.Hops))
			if e.Err != nil {
				c.TraceFailures.Inc()
			}
		},
		OnQuery: func(_ context.Context, e *domain.QueryEvent) {
			c.Queries.WithLabelValues(e.Name, e.Outcome).Inc()
			c.QueryDuration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
		},
	}
}
