// Package metrics provides Prometheus metrics for lexctl.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BackendCallsTotal counts backend calls made by the view controller.
	BackendCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexctl",
			Name:      "backend_calls_total",
			Help:      "Total number of backend calls by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)

	// BackendCallDuration measures backend call latency.
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexctl",
			Name:      "backend_call_duration_seconds",
			Help:      "Duration of backend calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// ProxyResponsesTotal counts responses relayed by the /lexapi proxy.
	ProxyResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexctl",
			Name:      "proxy_responses_total",
			Help:      "Total number of proxied backend responses by status code",
		},
		[]string{"code"},
	)

	// TriggersRejectedTotal counts operations refused because another one
	// was in flight.
	TriggersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexctl",
			Name:      "triggers_rejected_total",
			Help:      "Total number of operation triggers refused while busy",
		},
		[]string{"operation"},
	)
)

// RecordBackendCall records one backend call.
//
// result is one of ok, http_error, transport_error, parse_error.
func RecordBackendCall(endpoint, result string, duration time.Duration) {
	BackendCallsTotal.WithLabelValues(endpoint, result).Inc()
	BackendCallDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordProxyResponse records a response relayed by the proxy.
func RecordProxyResponse(code int) {
	ProxyResponsesTotal.WithLabelValues(strconv.Itoa(code)).Inc()
}

// RecordRejectedTrigger records a trigger refused while busy.
func RecordRejectedTrigger(operation string) {
	TriggersRejectedTotal.WithLabelValues(operation).Inc()
}

// Handler returns the exposition handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
