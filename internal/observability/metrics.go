// Package observability provides Prometheus metrics for the application.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milemeet_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "milemeet_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// MeetupsCreated counts meetup creations by activity.
	MeetupsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milemeet_meetups_created_total",
		Help: "Total number of meetups created by activity",
	}, []string{"activity"})

	// ParticipantJoins counts join/leave operations by outcome.
	ParticipantJoins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milemeet_participant_joins_total",
		Help: "Total join/leave operations by action and outcome",
	}, []string{"action", "outcome"})
)

// InitMetrics creates the Fiber Prometheus HTTP middleware for the service.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
