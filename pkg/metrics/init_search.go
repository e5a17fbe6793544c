package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSearchMetrics() {
	r.RequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "navmesh_requests_total",
			Help: "Path requests by outcome",
		},
		[]string{"status"},
	)

	r.SearchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "navmesh_search_duration_seconds",
			Help:    "Search time consumed per completed request, summed across ticks",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12),
		},
	)

	r.SearchExpansions = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "navmesh_search_expansions",
			Help:    "Nodes expanded per completed request",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		},
	)

	r.SearchSuspensions = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "navmesh_search_suspensions_total",
			Help: "Searches suspended because the tick budget ran out",
		},
	)

	r.PendingRequests = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "navmesh_pending_requests",
			Help: "Requests queued or in flight",
		},
	)

	r.Waypoints = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "navmesh_waypoints",
			Help:    "Waypoints per smoothed path",
			Buckets: []float64{2, 3, 4, 6, 8, 12, 16, 32, 64},
		},
	)
}
