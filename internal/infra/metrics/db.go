package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(dbPoolConns) }

var dbPoolConns = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "db_pool_connections",
		Help:      "Postgres pool connections by state.",
	},
	[]string{"state"}, // total | idle | acquired | max
)

// SetDBPoolStats publishes one pgxpool.Stat snapshot.
func SetDBPoolStats(total, idle, acquired, max int32) {
	dbPoolConns.WithLabelValues("total").Set(float64(total))
	dbPoolConns.WithLabelValues("idle").Set(float64(idle))
	dbPoolConns.WithLabelValues("acquired").Set(float64(acquired))
	dbPoolConns.WithLabelValues("max").Set(float64(max))
}
