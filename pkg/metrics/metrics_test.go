package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)

	assert.NotNil(t, r.GraphNodes)
	assert.NotNil(t, r.RequestsTotal)
	assert.NotNil(t, r.Waypoints)
	assert.NotNil(t, r.GetPrometheusRegistry())
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordSearch(t *testing.T) {
	r := NewRegistry()

	r.RecordSearch(StatusFound, 20*time.Microsecond, 14)
	r.RecordSearch(StatusFound, 30*time.Microsecond, 3)
	r.RecordSearch(StatusNotFound, 5*time.Microsecond, 40)
	r.RecordRejected()

	counter, err := r.RequestsTotal.GetMetricWithLabelValues(StatusFound)
	require.NoError(t, err)

	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	assert.Equal(t, 2.0, metric.Counter.GetValue())

	var hist dto.Metric
	require.NoError(t, r.SearchExpansions.Write(&hist))
	assert.Equal(t, uint64(3), hist.Histogram.GetSampleCount())
	assert.Equal(t, 57.0, hist.Histogram.GetSampleSum())
}

func TestRecordGraph(t *testing.T) {
	r := NewRegistry()
	r.RecordGraph(120, 80, 2, 400, time.Millisecond)

	var metric dto.Metric
	require.NoError(t, r.GraphNodes.Write(&metric))
	assert.Equal(t, 120.0, metric.Gauge.GetValue())

	require.NoError(t, r.GraphIslands.Write(&metric))
	assert.Equal(t, 2.0, metric.Gauge.GetValue())
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.SetPending(3)
	r.RecordSuspension()
	r.RecordSuspension()
	r.RecordWaypoints(4)
	r.RecordCanceled()

	snap, err := r.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 3.0, snap["navmesh_pending_requests"])
	assert.Equal(t, 2.0, snap["navmesh_search_suspensions_total"])
	assert.Equal(t, 1.0, snap["navmesh_waypoints_count"])
	assert.Equal(t, 4.0, snap["navmesh_waypoints_sum"])
	assert.Equal(t, 1.0, snap["navmesh_requests_total{status=canceled}"])
}
