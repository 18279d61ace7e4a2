package tripsapi

import "github.com/prometheus/client_golang/prometheus"

var retriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "trips_api_retries_total",
		Help: "The total number of retried trips API attempts",
	},
	[]string{"path"},
)

func init() {
	prometheus.MustRegister(retriesTotal)
}
