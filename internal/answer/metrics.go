package answer

import "github.com/prometheus/client_golang/prometheus"

var askResults = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "mathqa",
		Subsystem: "ask",
		Name:      "results_total",
		Help:      "Ask results by outcome (answer or error kind)",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(askResults)
}
