// Package metrics exposes navmesh graph and search metrics through a
// private Prometheus registry.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcome labels for RequestsTotal.
const (
	StatusFound    = "found"
	StatusNotFound = "not_found"
	StatusRejected = "rejected"
	StatusCanceled = "canceled"
)

// Registry holds all metrics for the application
type Registry struct {
	// Graph Metrics
	GraphNodes       prometheus.Gauge
	GraphTriangles   prometheus.Gauge
	GraphIslands     prometheus.Gauge
	GraphBuildTime   prometheus.Histogram
	GraphConnections prometheus.Gauge

	// Search Metrics
	RequestsTotal     *prometheus.CounterVec
	SearchDuration    prometheus.Histogram
	SearchExpansions  prometheus.Histogram
	SearchSuspensions prometheus.Counter
	PendingRequests   prometheus.Gauge
	Waypoints         prometheus.Histogram

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initGraphMetrics()
	r.initSearchMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
