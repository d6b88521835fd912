package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(httpRequestDurationMs) }

var httpRequestDurationMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency by route pattern and status.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	},
	[]string{"method", "route", "status"},
)

func ObserveHTTPRequest(method, route string, status int, latencyMs int64) {
	httpRequestDurationMs.WithLabelValues(method, route, strconv.Itoa(status)).Observe(float64(latencyMs))
}
