package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(rateLimitDecisionsTotal) }

var rateLimitDecisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_decisions_total",
		Help:      "Rate limiter outcomes per route.",
	},
	[]string{"route", "result"}, // result: 'allowed', 'limited', 'error'
)

func IncRateLimit(route, result string) {
	rateLimitDecisionsTotal.WithLabelValues(norm(route), norm(result)).Inc()
}
