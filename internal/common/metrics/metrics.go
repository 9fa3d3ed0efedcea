// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the skill and catalog metrics.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeAbsent   = "absent"
	OutcomeRejected = "rejected"
)

var (
	SkillRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_requests_total",
			Help: "Total number of skill requests by request type, handler and outcome",
		},
		[]string{"request_type", "handler", "outcome"},
	)

	SkillRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skill_request_duration_seconds",
			Help:    "Duration of skill request dispatch in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)

	SkillRequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skill_requests_active",
			Help: "Number of skill requests currently being dispatched",
		},
	)

	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of catalog API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CatalogBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_breaker_state",
			Help: "Catalog circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	RandomReleaseAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "random_release_attempts",
			Help:    "Number of random id lookups needed per random release request",
			Buckets: []float64{1, 2, 3, 4, 5, 10},
		},
	)
)
