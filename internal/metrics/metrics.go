// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metacache request results.
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultStale = "stale"
	ResultError = "error"
)

// Strategy outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

var (
	// Metadata cache gateway
	MetacacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_metacache_requests_total",
			Help: "Metadata fetches by result (hit, miss, stale, error)",
		},
		[]string{"endpoint", "result"},
	)

	MetacacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_metacache_writes_total",
			Help: "Cache entry upserts by outcome",
		},
		[]string{"outcome"}, // "ok", "failed"
	)

	MetacacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_metacache_entries",
			Help: "Cache entries at the last stats or sweep run",
		},
		[]string{"state"}, // "valid", "expired"
	)

	MetacachePurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_metacache_purged_total",
			Help: "Expired entries removed by the sweeper or an operator",
		},
	)

	MetacacheStoreConnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_metacache_store_connects_total",
			Help: "Lazy store open attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Provider HTTP client
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_provider_request_duration_seconds",
			Help:    "Metadata provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_provider_errors_total",
			Help: "Metadata provider errors by kind",
		},
		[]string{"kind"}, // "status", "transport", "decode", "rate_limit", "circuit_open"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation engine
	RecommendStrategy = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommend_strategy_total",
			Help: "Strategy runs by pipeline, strategy and outcome",
		},
		[]string{"pipeline", "strategy", "outcome"},
	)

	RecommendResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_recommend_result_size",
			Help:    "Items returned per request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"pipeline"},
	)

	// Id mapping
	IDMapMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_idmap_misses_total",
			Help: "Provider ids with no internal counterpart (dropped)",
		},
		[]string{"direction"}, // "to_internal", "to_external"
	)

	IDMapLegacyLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_idmap_legacy_total",
			Help: "Lookups answered by the legacy hash/modulo fallback",
		},
		[]string{"direction"},
	)

	// Background refresh jobs
	JobsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_jobs_enqueued_total",
			Help: "Refresh tasks enqueued by outcome",
		},
		[]string{"outcome"}, // "enqueued", "duplicate", "failed", "dropped"
	)

	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_jobs_processed_total",
			Help: "Refresh tasks processed by outcome",
		},
		[]string{"outcome"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordCacheRequest counts one gateway fetch.
func RecordCacheRequest(endpoint, result string) {
	MetacacheRequests.WithLabelValues(EndpointLabel(endpoint), result).Inc()
}

// RecordCacheWrite counts one entry upsert.
func RecordCacheWrite(err error) {
	MetacacheWrites.WithLabelValues(outcome(err)).Inc()
}

// RecordStoreConnect counts one lazy store open attempt.
func RecordStoreConnect(err error) {
	MetacacheStoreConnects.WithLabelValues(outcome(err)).Inc()
}

// UpdateCacheEntries publishes entry counts.
func UpdateCacheEntries(valid, expired int) {
	MetacacheEntries.WithLabelValues("valid").Set(float64(valid))
	MetacacheEntries.WithLabelValues("expired").Set(float64(expired))
}

// RecordProviderRequest observes one upstream request.
func RecordProviderRequest(endpoint string, duration time.Duration) {
	ProviderRequestDuration.WithLabelValues(EndpointLabel(endpoint)).Observe(duration.Seconds())
}

// RecordProviderError counts one upstream failure by kind.
func RecordProviderError(kind string) {
	ProviderErrors.WithLabelValues(kind).Inc()
}

// RecordStrategy counts one strategy run.
func RecordStrategy(pipeline, strategy, outcome string) {
	RecommendStrategy.WithLabelValues(pipeline, strategy, outcome).Inc()
}

// RecordResultSize observes the number of items returned.
func RecordResultSize(pipeline string, n int) {
	RecommendResultSize.WithLabelValues(pipeline).Observe(float64(n))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// EndpointLabel reduces a provider endpoint to a low-cardinality label by
// replacing numeric path segments with ":id" (movie/603/similar -> movie/:id/similar).
func EndpointLabel(endpoint string) string {
	out := make([]byte, 0, len(endpoint))
	segStart := 0
	for i := 0; i <= len(endpoint); i++ {
		if i < len(endpoint) && endpoint[i] != '/' {
			continue
		}
		seg := endpoint[segStart:i]
		if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
			seg = ":id"
		}
		out = append(out, seg...)
		if i < len(endpoint) {
			out = append(out, '/')
		}
		segStart = i + 1
	}
	return string(out)
}

func outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return OutcomeOK
}

// RecordIDMapMiss counts an id that could not be translated.
// direction is "to_internal" or "to_external".
func RecordIDMapMiss(direction string) {
	IDMapMisses.WithLabelValues(direction).Inc()
}

// RecordIDMapLegacy counts a translation served by the legacy hash mapping.
func RecordIDMapLegacy(direction string) {
	IDMapLegacyLookups.WithLabelValues(direction).Inc()
}

// RecordJobEnqueued counts one enqueue attempt.
func RecordJobEnqueued(outcome string) {
	JobsEnqueued.WithLabelValues(outcome).Inc()
}

// RecordJobProcessed counts one handled task.
func RecordJobProcessed(err error) {
	JobsProcessed.WithLabelValues(outcome(err)).Inc()
}
