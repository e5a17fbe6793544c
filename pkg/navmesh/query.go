package navmesh

import (
	"math"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
)

// FindPath runs one search to completion, bypassing the queue. A queued
// request it interrupts starts over on the next Tick.
func (f *PathFinder) FindPath(start, end geom.Vec2, radius float64) (Response, error) {
	req, err := f.newRequest(start, end, radius)
	if err != nil {
		return Response{}, err
	}
	queued := f.clock.Now()
	if _, err := f.engine.FindPath(req); err != nil {
		return Response{}, err
	}
	return f.complete(uuid.New(), req, queued), nil
}

// IsWalkable reports whether pt lies on the walkable surface.
func (f *PathFinder) IsWalkable(pt geom.Vec2) bool {
	_, ok := f.graph.ContainingTriangle(pt, f.cfg.ContainmentRadius)
	return ok
}

// NearestWalkablePoint finds the closest wall within maxDist of pt and
// returns the point on it nearest pt, moved radius into the triangle the
// wall bounds. Candidates that do not land on the walkable surface are
// skipped. Walls are looked up within the configured nearby radius.
func (f *PathFinder) NearestWalkablePoint(pt geom.Vec2, radius, maxDist float64) (geom.Vec2, bool) {
	m := f.graph.Mesh()

	var best geom.Vec2
	bestDist := math.Inf(1)
	found := false

	for _, t := range f.graph.TrianglesNear(pt, f.cfg.NearbyRadius) {
		tri := m.Triangle(t)
		for e := 0; e < 3; e++ {
			if m.Walkable(t, e) {
				continue
			}
			a, b := tri.Edge(e)
			d := geom.SegmentDist(a, b, pt)
			if d >= bestDist || d >= maxDist {
				continue
			}

			candidate := geom.NearestOnSegment(a, b, pt).Add(inward(a, b, tri.Points[e], radius))
			if !f.IsWalkable(candidate) {
				continue
			}
			best, bestDist, found = candidate, d, true
		}
	}
	return best, found
}

// inward returns the offset of length radius perpendicular to a-b towards
// the opposite vertex c.
func inward(a, b, c geom.Vec2, radius float64) geom.Vec2 {
	dir := b.Sub(a)
	l := dir.Len()
	if l == 0 {
		return geom.Vec2{}
	}
	n := geom.V(-dir.Y/l, dir.X/l)
	if n.Dot(c.Sub(a)) < 0 {
		n = n.Scale(-1)
	}
	return n.Scale(radius)
}
