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

	// ResourceWrites counts successful creates and deletes by resource
	// (user, listing, booking) and action.
	ResourceWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_writes_total",
			Help: "Total successful resource creations and deletions",
		},
		[]string{"resource", "action"},
	)

	// BookingsPurged counts bookings removed by the retention scheduler.
	BookingsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_purged_total",
			Help: "Total bookings deleted by the retention purge",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ResourceWrites, BookingsPurged)
	})
}

// NormalizePath reduces label cardinality by replacing numeric path segments
// with {id}, e.g. /bookings/123 -> /bookings/{id}. Routes keyed by username
// or title are recorded via the chi route pattern instead, so they never
// reach this fallback with a raw value.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordWrite counts a successful create or delete for a resource.
func RecordWrite(resource, action string) {
	ResourceWrites.WithLabelValues(resource, action).Inc()
}
