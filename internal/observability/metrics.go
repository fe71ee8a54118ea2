package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nextstep_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nextstep_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PaymentIntentsTotal counts payment intent creations by outcome.
	PaymentIntentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nextstep_payment_intents_total",
		Help: "Total number of payment intent creations by outcome",
	}, []string{"outcome"})

	// AuthFailuresTotal counts rejected requests at the auth middleware.
	AuthFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nextstep_auth_failures_total",
		Help: "Total number of requests rejected by the auth middleware",
	})

	// ScholarshipCacheHits counts cache-aside hits and misses for scholarship reads.
	ScholarshipCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nextstep_scholarship_cache_total",
		Help: "Scholarship cache lookups by result",
	}, []string{"result"})
)

// ObserveQuery records latency for a database operation against a table.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
