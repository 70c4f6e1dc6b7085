package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	attendanceCacheTotal  *prometheus.CounterVec
	assistantRepliesTotal *prometheus.CounterVec
	liveScheduleClients   prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the portal.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "http_requests_total",
			Help:      "Total number of portal API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "http_latency_seconds",
			Help:      "Latency distribution for portal API requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "http_errors_total",
			Help:      "Total number of error responses returned by portal endpoints.",
		}, []string{"method", "route", "status"})

		attendanceCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "attendance_summary_cache_total",
			Help:      "Attendance summary cache lookups by result.",
		}, []string{"result"})

		assistantRepliesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "assistant_replies_total",
			Help:      "Assistant replies by outcome.",
		}, []string{"outcome"})

		liveScheduleClients = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "portal",
			Name:      "live_schedule_clients",
			Help:      "Open live schedule websocket connections.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			attendanceCacheTotal,
			assistantRepliesTotal,
			liveScheduleClients,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// AttendanceCache counts attendance summary cache hits and misses.
func AttendanceCache() *prometheus.CounterVec {
	RegisterMetrics()
	return attendanceCacheTotal
}

// AssistantReplies counts assistant replies labelled "model" or "fallback".
func AssistantReplies() *prometheus.CounterVec {
	RegisterMetrics()
	return assistantRepliesTotal
}

// LiveScheduleClients tracks open live schedule sockets.
func LiveScheduleClients() prometheus.Gauge {
	RegisterMetrics()
	return liveScheduleClients
}
