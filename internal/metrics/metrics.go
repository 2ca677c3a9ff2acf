package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskstore"

// Task operation labels.
const (
	OpList         = "list"
	OpListByStatus = "list_by_status"
	OpGet          = "get"
	OpCreate       = "create"
	OpUpdate       = "update"
	OpDelete       = "delete"
)

// Task operation results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"command"},
	)

	DBSlowQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_slow_queries_total",
			Help:      "Number of queries slower than the configured threshold",
		},
	)

	TaskOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_operations_total",
			Help:      "Task store operations by result",
		},
		[]string{"operation", "result"},
	)

	TaskOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_operation_duration_seconds",
			Help:      "Task store operation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"operation"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(command string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func IncrementSlowQuery() {
	DBSlowQueries.Inc()
}

func RecordTaskOperation(operation, result string, duration time.Duration) {
	TaskOperations.WithLabelValues(operation, result).Inc()
	TaskOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
