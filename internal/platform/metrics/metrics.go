package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, endpoint and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration observes HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// BookingsTotal counts booking requests by outcome.
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total number of booking requests by outcome.",
		},
		[]string{"outcome"},
	)

	// SegmentsReleasedTotal counts road segments whose load was decremented
	// by the release worker.
	SegmentsReleasedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "segments_released_total",
			Help: "Total number of segments whose capacity was released.",
		},
	)

	// ReleaseRunsTotal counts release worker runs by status.
	ReleaseRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "release_runs_total",
			Help: "Total number of release worker runs.",
		},
		[]string{"status"},
	)

	// RoutingRequestsTotal counts calls to the routing provider.
	RoutingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_requests_total",
			Help: "Total number of routing provider requests.",
		},
		[]string{"status", "cached"},
	)

	// RoutingRequestDuration observes routing provider latency.
	RoutingRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routing_request_duration_seconds",
			Help:    "Routing provider request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cached"},
	)
)

// TrackRoutingRequest records one routing provider call.
func TrackRoutingRequest(status string, cached bool, duration time.Duration) {
	cachedStr := strconv.FormatBool(cached)
	RoutingRequestsTotal.WithLabelValues(status, cachedStr).Inc()
	RoutingRequestDuration.WithLabelValues(cachedStr).Observe(duration.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps a httprouter handle with request counting and latency
// observation for the given endpoint label.
func Instrument(endpoint string, h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		h(rec, r, ps)

		RequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}
