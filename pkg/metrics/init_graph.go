package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "navmesh_graph_nodes",
			Help: "Number of portal nodes in the navigation graph",
		},
	)

	r.GraphTriangles = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "navmesh_graph_triangles",
			Help: "Number of interior triangles in the navigation graph",
		},
	)

	r.GraphIslands = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "navmesh_graph_islands",
			Help: "Number of triangles with no walkable neighbour",
		},
	)

	r.GraphConnections = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "navmesh_graph_connections",
			Help: "Number of directed connections between portal nodes",
		},
	)

	r.GraphBuildTime = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "navmesh_graph_build_seconds",
			Help:    "Time spent building the navigation graph",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)
}
