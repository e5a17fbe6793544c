package navmesh

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-navmesh/pkg/config"
	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/logging"
	"github.com/dd0wney/cluso-navmesh/pkg/mesh"
	"github.com/dd0wney/cluso-navmesh/pkg/metrics"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
	"github.com/dd0wney/cluso-navmesh/pkg/pathfind"
)

func obstacles(t *testing.T, opts ...Option) *PathFinder {
	t.Helper()
	m, err := mesh.LoadYAML("testdata/obstacles.yaml")
	require.NoError(t, err)
	f, err := New(m, config.Default(), opts...)
	require.NoError(t, err)
	return f
}

func strip(t *testing.T, cols int, opts ...Option) *PathFinder {
	t.Helper()
	m, err := mesh.Grid(cols, 1, 10, nil)
	require.NoError(t, err)
	f, err := New(m, config.Default(), opts...)
	require.NoError(t, err)
	return f
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ContainmentRadius = 0
	_, err := New(&mesh.Mesh{}, cfg)
	assert.Error(t, err)
}

func TestNew_MalformedMesh(t *testing.T) {
	m := &mesh.Mesh{Triangles: []mesh.Triangle{{
		Points:    [3]geom.Vec2{geom.V(0, 0), geom.V(1, 0), geom.V(0, 1)},
		Neighbors: [3]int{5, mesh.NoNeighbor, mesh.NoNeighbor},
		Interior:  true,
	}}}
	_, err := New(m, config.Default())
	assert.ErrorIs(t, err, navgraph.ErrMalformedAdjacency)
}

func TestTick_StartAndEndShareTriangle(t *testing.T) {
	f := obstacles(t)
	start, end := geom.V(7.0625, 11.354166), geom.V(36.75, 34.895836)

	ticket, err := f.RequestPath(start, end, 10)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, ticket)
	assert.Equal(t, 1, f.Pending())

	out := f.Tick(pathfind.Unbounded)
	require.Len(t, out, 1)
	assert.Equal(t, ticket, out[0].Ticket)
	assert.True(t, out[0].Found())
	assert.Equal(t, []navgraph.NodeRef{navgraph.DynamicStart, navgraph.DynamicEnd}, out[0].Path)
	assert.Equal(t, []geom.Vec2{start, end}, out[0].Waypoints)
	assert.Equal(t, 0, f.Pending())
}

func TestFindPath_AroundObstacles(t *testing.T) {
	f := obstacles(t)
	start, end := geom.V(260, 90), geom.V(240, 410)

	resp, err := f.FindPath(start, end, 5)
	require.NoError(t, err)
	require.True(t, resp.Found())
	assert.Greater(t, resp.Cost, 0.0)
	assert.Equal(t, start, resp.Waypoints[0])
	assert.Equal(t, end, resp.Waypoints[len(resp.Waypoints)-1])
	for _, p := range resp.Waypoints {
		assert.True(t, f.IsWalkable(p), "waypoint %v is off the surface", p)
	}
	assert.Equal(t, len(resp.Path), len(resp.Portals))
}

func TestFindPath_SmoothingDisabled(t *testing.T) {
	m, err := mesh.Grid(4, 1, 10, nil)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Smooth = false
	f, err := New(m, cfg)
	require.NoError(t, err)

	resp, err := f.FindPath(geom.V(2, 5), geom.V(38, 5), 1)
	require.NoError(t, err)
	assert.True(t, resp.Found())
	assert.NotEmpty(t, resp.Portals)
	assert.Nil(t, resp.Waypoints)
}

func TestFindPath_TooWide(t *testing.T) {
	f := strip(t, 3)

	resp, err := f.FindPath(geom.V(2, 5), geom.V(28, 5), 6)
	require.NoError(t, err)
	assert.Equal(t, pathfind.StatusNotFound, resp.Status)
	assert.False(t, resp.Found())
	assert.Nil(t, resp.Path)
	assert.Nil(t, resp.Waypoints)
}

func TestRequestPath_Rejected(t *testing.T) {
	reg := metrics.NewRegistry()
	f := strip(t, 2, WithMetrics(reg))

	ticket, err := f.RequestPath(geom.V(-50, -50), geom.V(5, 2), 1)
	assert.True(t, errors.Is(err, pathfind.ErrInvalidQuery))
	assert.Equal(t, uuid.Nil, ticket)
	assert.Equal(t, 0, f.Pending())

	_, err = f.FindPath(geom.V(5, 2), geom.V(5, 200), 1)
	assert.ErrorIs(t, err, pathfind.ErrInvalidQuery)

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2.0, snap["navmesh_requests_total{status=rejected}"])
}

func TestTick_ResumesAcrossTicks(t *testing.T) {
	reg := metrics.NewRegistry()
	f := strip(t, 20, WithClock(pathfind.NewStepClock(time.Microsecond)), WithMetrics(reg))
	start, end := geom.V(2, 5), geom.V(198, 5)

	ticket, err := f.RequestPath(start, end, 1)
	require.NoError(t, err)

	var resp *Response
	ticks := 0
	for resp == nil && ticks < 1000 {
		ticks++
		out := f.Tick(5 * time.Microsecond)
		if len(out) > 0 {
			require.Len(t, out, 1)
			resp = &out[0]
		}
	}
	require.NotNil(t, resp)
	assert.Greater(t, ticks, 1)
	assert.Equal(t, ticket, resp.Ticket)
	assert.True(t, resp.Found())
	assert.Equal(t, ticks-1, resp.Metrics.Suspensions)

	other, err := NewWithGraph(f.Graph(), config.Default())
	require.NoError(t, err)
	direct, err := other.FindPath(start, end, 1)
	require.NoError(t, err)
	assert.Equal(t, direct.Path, resp.Path)
	assert.Equal(t, direct.Cost, resp.Cost)
	assert.Equal(t, direct.Waypoints, resp.Waypoints)

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, float64(ticks-1), snap["navmesh_search_suspensions_total"])
	assert.Equal(t, 1.0, snap["navmesh_requests_total{status=found}"])
	assert.Equal(t, 0.0, snap["navmesh_pending_requests"])
}

func TestTick_DefaultBudget(t *testing.T) {
	f := strip(t, 2)
	_, err := f.RequestPath(geom.V(2, 5), geom.V(18, 5), 1)
	require.NoError(t, err)

	out := f.Tick(0)
	require.Len(t, out, 1)
	assert.True(t, out[0].Found())
}

func TestNew_NormalisesTickBudget(t *testing.T) {
	m, err := mesh.Grid(2, 1, 10, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		budget time.Duration
		want   time.Duration
	}{
		{"zero", 0, config.DefaultTickBudget},
		{"negative", -time.Second, config.DefaultTickBudget},
		{"below minimum", 50 * time.Nanosecond, config.DefaultTickBudget},
		{"above maximum", time.Minute, config.MaxTickBudget},
		{"in range", 20 * time.Microsecond, 20 * time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.TickBudget = tt.budget
			f, err := New(m, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Config().TickBudget)
		})
	}
}

func TestTick_TinyBudgetsStillFinish(t *testing.T) {
	for _, budget := range []time.Duration{0, time.Nanosecond, pathfind.TimeTolerance} {
		cfg := config.Default()
		cfg.TickBudget = 0
		m, err := mesh.Grid(8, 1, 10, nil)
		require.NoError(t, err)
		f, err := New(m, cfg, WithClock(pathfind.NewStepClock(100*time.Nanosecond)))
		require.NoError(t, err)

		ticket, err := f.RequestPath(geom.V(2, 5), geom.V(78, 5), 1)
		require.NoError(t, err)

		var out []Response
		for i := 0; i < 1000 && len(out) == 0; i++ {
			out = f.Tick(budget)
		}
		require.Len(t, out, 1, "budget %s never finished", budget)
		assert.Equal(t, ticket, out[0].Ticket)
		assert.True(t, out[0].Found())
		assert.Zero(t, f.Pending())
	}
}

func TestTick_FIFOAndCancel(t *testing.T) {
	reg := metrics.NewRegistry()
	f := strip(t, 4, WithMetrics(reg))

	a, err := f.RequestPath(geom.V(2, 5), geom.V(38, 5), 1)
	require.NoError(t, err)
	b, err := f.RequestPath(geom.V(38, 5), geom.V(2, 5), 1)
	require.NoError(t, err)
	c, err := f.RequestPath(geom.V(12, 5), geom.V(28, 5), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Pending())

	assert.True(t, f.Cancel(b))
	assert.False(t, f.Cancel(b))
	assert.False(t, f.Cancel(uuid.New()))
	assert.Equal(t, 2, f.Pending())

	out := f.Tick(pathfind.Unbounded)
	require.Len(t, out, 2)
	assert.Equal(t, a, out[0].Ticket)
	assert.Equal(t, c, out[1].Ticket)
	assert.Empty(t, f.Tick(pathfind.Unbounded))

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1.0, snap["navmesh_requests_total{status=canceled}"])
	assert.Equal(t, 2.0, snap["navmesh_requests_total{status=found}"])
}

func TestFindPath_InterruptsQueuedRequest(t *testing.T) {
	f := strip(t, 20, WithClock(pathfind.NewStepClock(time.Microsecond)))
	start, end := geom.V(2, 5), geom.V(198, 5)

	ticket, err := f.RequestPath(start, end, 1)
	require.NoError(t, err)
	require.Empty(t, f.Tick(5*time.Microsecond))

	resp, err := f.FindPath(geom.V(52, 5), geom.V(148, 5), 1)
	require.NoError(t, err)
	assert.True(t, resp.Found())

	out := f.Tick(pathfind.Unbounded)
	require.Len(t, out, 1)
	assert.Equal(t, ticket, out[0].Ticket)
	assert.True(t, out[0].Found())
	assert.Equal(t, start, out[0].Waypoints[0])
	assert.Equal(t, end, out[0].Waypoints[len(out[0].Waypoints)-1])
}

func TestTick_IdenticalStartAndEnd(t *testing.T) {
	f := strip(t, 2)
	p := geom.V(4, 6)

	_, err := f.RequestPath(p, p, 1)
	require.NoError(t, err)
	out := f.Tick(pathfind.Unbounded)
	require.Len(t, out, 1)
	assert.True(t, out[0].Found())
	assert.Zero(t, out[0].Cost)
	assert.Zero(t, out[0].Metrics.Expansions)
	assert.Equal(t, []geom.Vec2{p}, out[0].Waypoints)
}

func TestIsWalkable(t *testing.T) {
	f := obstacles(t)

	assert.True(t, f.IsWalkable(geom.V(250, 100)))
	assert.True(t, f.IsWalkable(geom.V(250, 450)))
	assert.False(t, f.IsWalkable(geom.V(125, 230)), "inside an obstacle")
	assert.False(t, f.IsWalkable(geom.V(600, 600)))
}

func TestNearestWalkablePoint(t *testing.T) {
	f := obstacles(t)

	// from inside the first obstacle, its base is the closest wall
	p, ok := f.NearestWalkablePoint(geom.V(125, 210), 2, 50)
	require.True(t, ok)
	assert.InDelta(t, 125, p.X, 1e-9)
	assert.InDelta(t, 198, p.Y, 1e-9)
	assert.True(t, f.IsWalkable(p))

	_, ok = f.NearestWalkablePoint(geom.V(125, 250), 2, 1)
	assert.False(t, ok)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.DebugLevel)
	f := strip(t, 2, WithLogger(logger))

	_, err := f.RequestPath(geom.V(2, 5), geom.V(18, 5), 1)
	require.NoError(t, err)
	f.Tick(pathfind.Unbounded)
	_, _ = f.RequestPath(geom.V(-5, -5), geom.V(18, 5), 1)

	out := buf.String()
	assert.Contains(t, out, `"msg":"navgraph built"`)
	assert.Contains(t, out, `"msg":"path complete"`)
	assert.Contains(t, out, `"msg":"path request rejected"`)
	assert.Contains(t, out, `"component":"navmesh"`)
}
