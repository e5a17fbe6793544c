package metrics

import (
	"time"

	dto "github.com/prometheus/client_model/go"
)

// RecordGraph records the shape of a freshly built graph.
func (r *Registry) RecordGraph(nodes, triangles, islands, connections int, took time.Duration) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphTriangles.Set(float64(triangles))
	r.GraphIslands.Set(float64(islands))
	r.GraphConnections.Set(float64(connections))
	r.GraphBuildTime.Observe(took.Seconds())
}

// RecordSearch records one finished search.
func (r *Registry) RecordSearch(status string, took time.Duration, expansions int) {
	r.RequestsTotal.WithLabelValues(status).Inc()
	r.SearchDuration.Observe(took.Seconds())
	r.SearchExpansions.Observe(float64(expansions))
}

// RecordRejected counts a request refused before any search.
func (r *Registry) RecordRejected() {
	r.RequestsTotal.WithLabelValues(StatusRejected).Inc()
}

// RecordCanceled counts a request dropped by its caller.
func (r *Registry) RecordCanceled() {
	r.RequestsTotal.WithLabelValues(StatusCanceled).Inc()
}

// RecordSuspension counts a search that ran out of budget.
func (r *Registry) RecordSuspension() {
	r.SearchSuspensions.Inc()
}

// RecordWaypoints records the length of a smoothed path.
func (r *Registry) RecordWaypoints(n int) {
	r.Waypoints.Observe(float64(n))
}

// SetPending updates the queued request gauge.
func (r *Registry) SetPending(n int) {
	r.PendingRequests.Set(float64(n))
}

// Snapshot gathers the current value of every counter and gauge, and the
// sample count of every histogram, keyed by metric name plus labels.
func (r *Registry) Snapshot() (map[string]float64, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName() + labelSuffix(m)
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				out[key] = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				out[key] = m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				out[key+"_count"] = float64(m.GetHistogram().GetSampleCount())
				out[key+"_sum"] = m.GetHistogram().GetSampleSum()
			}
		}
	}
	return out, nil
}

func labelSuffix(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	s := "{"
	for i, lp := range m.GetLabel() {
		if i > 0 {
			s += ","
		}
		s += lp.GetName() + "=" + lp.GetValue()
	}
	return s + "}"
}
