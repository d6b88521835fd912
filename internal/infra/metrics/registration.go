package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registration outcomes.
const (
	OutcomeSucceeded     = "succeeded"
	OutcomeInvalid       = "invalid"
	OutcomeUploadFailed  = "upload_failed"
	OutcomePersistFailed = "persist_failed"
	OutcomeFailed        = "failed"
)

func init() {
	register(
		registrationsTotal,
		productsRegisteredTotal,
	)
}

var (
	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Seller registrations by outcome.",
		},
		[]string{"outcome"},
	)

	productsRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_registered_total",
			Help:      "Products persisted by successful registrations.",
		},
	)
)

func IncRegistration(outcome string) {
	registrationsTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddProductsRegistered(n int) {
	productsRegisteredTotal.Add(float64(n))
}
