package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ScheduledPublishesTotal counts articles published by the scheduler sweep.
	ScheduledPublishesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduled_publishes_total",
			Help: "Total number of articles published by the scheduled sweep",
		},
	)

	// PublishSweepErrorsTotal counts failed scheduler sweeps.
	PublishSweepErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "publish_sweep_errors_total",
			Help: "Total number of publish sweeps that failed",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ScheduledPublishesTotal, PublishSweepErrorsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// AddScheduledPublishes records n articles published by a sweep.
func AddScheduledPublishes(n int64) {
	ScheduledPublishesTotal.Add(float64(n))
}

// IncPublishSweepErrors records a failed sweep.
func IncPublishSweepErrors() {
	PublishSweepErrorsTotal.Inc()
}
