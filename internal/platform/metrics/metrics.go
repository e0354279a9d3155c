package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routeopt_provider_requests_total",
		Help: "Road distance provider calls by provider and outcome",
	}, []string{"provider", "outcome"})
	ProviderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "routeopt_provider_duration_ms",
		Help:    "Road distance provider call duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"provider"})
	LegCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "routeopt_leg_cache_hits_total",
		Help: "Total leg cache hits",
	})
	LegCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "routeopt_leg_cache_misses_total",
		Help: "Total leg cache misses",
	})
	MatrixPairsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "routeopt_matrix_pairs_total",
		Help: "Total off-diagonal pairs requested while building matrices",
	})
	MatrixPairFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "routeopt_matrix_pair_failures_total",
		Help: "Total off-diagonal pairs that came back unreachable",
	})
	SearchExpandedNodes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "routeopt_search_expanded_nodes",
		Help:    "Branch-and-bound frames examined per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
	OptimizationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routeopt_optimizations_total",
		Help: "Optimization requests by result kind",
	}, []string{"kind"})
	OptimizationDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "routeopt_optimization_duration_ms",
		Help:    "End-to-end optimization duration in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderDurationMs)
	prometheus.MustRegister(LegCacheHitsTotal)
	prometheus.MustRegister(LegCacheMissesTotal)
	prometheus.MustRegister(MatrixPairsTotal)
	prometheus.MustRegister(MatrixPairFailuresTotal)
	prometheus.MustRegister(SearchExpandedNodes)
	prometheus.MustRegister(OptimizationsTotal)
	prometheus.MustRegister(OptimizationDurationMs)
}

// Handler exposes the default registry in Prometheus text format.
func Handler() http.Handler { return promhttp.Handler() }
