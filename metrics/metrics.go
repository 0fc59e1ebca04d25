// Package metrics provides Prometheus metrics for the plugin browser proxy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "plugin_browser"

var (
	// CacheLookupsTotal counts query cache lookups by result (hit, miss, error).
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Total number of query cache lookups",
		},
		[]string{"result"},
	)

	// CacheWritesTotal counts query cache writes by status.
	CacheWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Total number of query cache writes",
		},
		[]string{"status"},
	)

	// CacheClearedEntries counts entries removed through the admin clear route.
	CacheClearedEntries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_cleared_entries_total",
			Help:      "Total number of cache entries removed by admin clears",
		},
	)

	// UpstreamRequestsTotal counts catalog calls by outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of plugin catalog requests",
		},
		[]string{"outcome"},
	)

	// UpstreamDuration measures catalog call latency.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of plugin catalog requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"outcome"},
	)

	// ResponseItems observes how many listings each browse response carries.
	ResponseItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "response_items",
			Help:      "Distribution of listings per browse response",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)
)

const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
)

func RecordCacheHit() { CacheLookupsTotal.WithLabelValues("hit").Inc() }
func RecordCacheMiss() { CacheLookupsTotal.WithLabelValues("miss").Inc() }
func RecordCacheError() { CacheLookupsTotal.WithLabelValues("error").Inc() }

func RecordCacheWrite(ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	CacheWritesTotal.WithLabelValues(status).Inc()
}

func RecordCacheCleared(n int) {
	CacheClearedEntries.Add(float64(n))
}

// RecordUpstream records one catalog call.
func RecordUpstream(outcome string, seconds float64) {
	UpstreamRequestsTotal.WithLabelValues(outcome).Inc()
	UpstreamDuration.WithLabelValues(outcome).Observe(seconds)
}

func RecordResponseItems(n int) {
	ResponseItems.Observe(float64(n))
}
