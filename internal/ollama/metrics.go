package ollama

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var backendRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "mathqa",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Duration of /api/generate calls to the inference backend",
		// generation on a local 8B model routinely takes tens of seconds
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(backendRequestDuration)
}

func observeBackend(outcome string, d time.Duration) {
	backendRequestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
