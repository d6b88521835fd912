package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		imageUploadLatencyMs,
		imageUploadBytes,
	)
}

var (
	imageUploadLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "image_upload_latency_ms",
			Help:      "Compress + upload latency distribution in milliseconds.",
			Buckets:   []float64{25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"folder", "success"},
	)

	imageUploadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_upload_bytes_total",
			Help:      "Bytes received vs. bytes stored after compression.",
		},
		[]string{"folder", "stage"}, // stage: 'received', 'stored'
	)
)

func ObserveImageUpload(folder string, latencyMs int64, success bool) {
	imageUploadLatencyMs.WithLabelValues(norm(folder), strconv.FormatBool(success)).Observe(float64(latencyMs))
}

func AddImageBytes(folder string, received, stored int) {
	imageUploadBytes.WithLabelValues(norm(folder), "received").Add(float64(received))
	imageUploadBytes.WithLabelValues(norm(folder), "stored").Add(float64(stored))
}
