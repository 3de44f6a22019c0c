// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasktracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tasktracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	TaskCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasktracker_task_cache_hits_total",
			Help: "Total number of task list cache hits",
		},
	)

	TaskCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasktracker_task_cache_misses_total",
			Help: "Total number of task list cache misses",
		},
	)

	// TaskCacheErrors counts backend failures by operation (get, set, delete).
	TaskCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasktracker_task_cache_errors_total",
			Help: "Total number of task cache backend errors",
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tasktracker_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasktracker_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasktracker_emails_sent_total",
			Help: "Total number of transactional emails by kind and result",
		},
		[]string{"kind", "result"},
	)
)
