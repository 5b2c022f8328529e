package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_searches_total",
		Help: "Number of catalog searches executed, labeled by sort key.",
	}, []string{"sort"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_search_duration_seconds",
		Help:    "Catalog search latency in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_lifecycle_transitions_total",
		Help: "Number of successful work lifecycle transitions, labeled by target status.",
	}, []string{"to"})

	redactionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_redactions_total",
		Help: "Number of completed redactions.",
	})

	artifactDeleteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_artifact_delete_failures_total",
		Help: "Number of artifact deletions that failed and were left for manual cleanup.",
	})
)
