package wherelib

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricEnrichTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "whereabouts_enrich_total",
		Help: "Total number of enrichments",
	})
	metricEnrichDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "whereabouts_enrich_duration_seconds",
		Help:    "Duration of the whole enrichment",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
	})
	metricProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whereabouts_provider_requests_total",
		Help: "Total number of provider requests by result",
	}, []string{"provider", "result"})
	metricProviderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "whereabouts_provider_duration_seconds",
		Help:    "Duration of provider requests",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"provider"})
	metricChainExhausted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whereabouts_chain_exhausted_total",
		Help: "How many times every provider of a chain has failed",
	}, []string{"chain"})
	metricCircuitBreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "whereabouts_circuit_breaker_state",
		Help: "State of the circuit breaker: 0 - closed, 1 - half-opened, 2 - opened",
	}, []string{"provider"})
)

func init() {
	prometheus.MustRegister(metricEnrichTotal,
		metricEnrichDuration,
		metricProviderRequests,
		metricProviderDuration,
		metricChainExhausted,
		metricCircuitBreakerState)
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
