package metrics

import "github.com/prometheus/client_golang/prometheus"

// Resolution-pipeline Prometheus metrics.
var (
	RecognizerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geodex",
			Name:      "recognizer_requests_total",
			Help:      "Total number of entity-recognizer requests",
		},
		[]string{"provider", "model", "status"},
	)

	RecognizerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geodex",
			Name:      "recognizer_request_duration_seconds",
			Help:      "Entity-recognizer request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	GeocoderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geodex",
			Name:      "geocoder_requests_total",
			Help:      "Total number of geocoder requests",
		},
		[]string{"operation", "status"}, // operation: forward / reverse / ip_lookup
	)

	GeocoderRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "geodex",
			Name:      "geocoder_retries_total",
			Help:      "Total number of geocoder retry attempts",
		},
	)

	ResolutionFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "geodex",
			Name:      "resolution_fallbacks_total",
			Help:      "Requests that fell back to the unresolved point",
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers resolution-pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecognizerRequestsTotal)
	prometheus.MustRegister(RecognizerRequestDuration)
	prometheus.MustRegister(GeocoderRequestsTotal)
	prometheus.MustRegister(GeocoderRetriesTotal)
	prometheus.MustRegister(ResolutionFallbacksTotal)
	pipelineMetricsRegistered = true
}
