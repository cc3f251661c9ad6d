// Package metrics declares the Prometheus collectors exported on /_/metrics.
// promauto registers every collector with the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shorty_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)

	HashesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorty_hashes_generated_total",
			Help: "Total number of hashes generated, including ones never stored",
		},
	)

	LinksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shorty_links_created_total",
			Help: "Total number of short links stored",
		},
	)

	// ResolutionsTotal counts lookups by outcome: redirect, interstitial or not_found.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorty_resolutions_total",
			Help: "Total number of short link resolutions by decision",
		},
		[]string{"decision", "platform"},
	)

	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorty_store_errors_total",
			Help: "Total number of backing store failures",
		},
		[]string{"operation"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorty_rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)
)

// RecordHashGenerated increments the generated hash counter.
func RecordHashGenerated() {
	HashesGeneratedTotal.Inc()
}

// RecordLinkCreated increments the stored link counter.
func RecordLinkCreated() {
	LinksCreatedTotal.Inc()
}

// RecordResolution increments the resolution counter for a decision.
func RecordResolution(decision, platform string) {
	ResolutionsTotal.WithLabelValues(decision, platform).Inc()
}

// RecordStoreError increments the store failure counter for an operation.
func RecordStoreError(operation string) {
	StoreErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordRateLimited increments the rejected request counter for a scope.
func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}
