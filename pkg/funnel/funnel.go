// Package funnel turns a node path into a smoothed waypoint polyline with
// the funnel (string pulling) algorithm, keeping an agent of a given
// radius clear of portal endpoints.
package funnel

import (
	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
)

// DefaultEpsilon2 is the squared distance under which two points are
// treated as the same.
const DefaultEpsilon2 = 1e-6

// NodeSource resolves node references, including per-query dynamic nodes.
type NodeSource interface {
	Node(ref navgraph.NodeRef) *navgraph.Node
}

// Puller smooths paths. The zero value uses DefaultEpsilon2.
type Puller struct {
	Epsilon2 float64
}

// New returns a puller with the given squared-distance tolerance. A
// non-positive value selects DefaultEpsilon2.
func New(eps2 float64) *Puller {
	if eps2 <= 0 {
		eps2 = DefaultEpsilon2
	}
	return &Puller{Epsilon2: eps2}
}

func (p *Puller) eps2() float64 {
	if p == nil || p.Epsilon2 <= 0 {
		return DefaultEpsilon2
	}
	return p.Epsilon2
}

func (p *Puller) near(a, b geom.Vec2) bool {
	return a.Near(b, p.eps2())
}

// PathToPortals collects the portals along path. Consecutive portals whose
// midpoints coincide are merged. Passage portals are stored relative to the
// triangle that created them, so each one is re-oriented here to match the
// direction of travel: Left ends up counter-clockwise of the heading.
func (p *Puller) PathToPortals(src NodeSource, path []navgraph.NodeRef) []navgraph.Portal {
	portals := make([]navgraph.Portal, 0, len(path))
	for _, ref := range path {
		portal := src.Node(ref).Portal
		if n := len(portals); n > 0 {
			prev := portals[n-1].Midpoint
			if p.near(prev, portal.Midpoint) {
				continue
			}
			portal = orient(portal, prev)
		}
		portals = append(portals, portal)
	}
	return portals
}

// orient flips portal when its Left lies clockwise of the heading from
// prev through the portal midpoint. A heading collinear with the portal
// keeps the stored orientation.
func orient(portal navgraph.Portal, prev geom.Vec2) navgraph.Portal {
	if portal.IsPoint() {
		return portal
	}
	heading := portal.Midpoint.Sub(prev)
	if heading.Cross(portal.Left.Sub(prev)) < 0 {
		return portal.Flipped()
	}
	return portal
}

// funnelState is the apex and the two sides of the funnel with the portal
// indices they came from.
type funnelState struct {
	apex, left, right          geom.Vec2
	apexIdx, leftIdx, rightIdx int
}

func (f *funnelState) collapse() {
	f.left = f.apex
	f.right = f.apex
	f.leftIdx = f.apexIdx
	f.rightIdx = f.apexIdx
}

// StringPull returns waypoints from start to end through portals. Every
// portal but the last is narrowed by radius at both ends; the last is the
// goal itself. The end point is appended unless it is exactly the last
// waypoint already.
func (p *Puller) StringPull(start, end geom.Vec2, portals []navgraph.Portal, radius float64) []geom.Vec2 {
	points := []geom.Vec2{start}
	if len(portals) == 0 {
		if end != start {
			points = append(points, end)
		}
		return points
	}

	f := funnelState{apex: portals[0].Left, left: portals[0].Left, right: portals[0].Right}

	for i := 1; i < len(portals); i++ {
		left, right := portals[i].Left, portals[i].Right
		if i < len(portals)-1 && !portals[i].IsPoint() {
			left = left.Add(geom.FromAngle(portals[i].LeftAngle, radius))
			right = right.Add(geom.FromAngle(portals[i].RightAngle, radius))
		}

		areaRight := geom.TriArea2(f.apex, f.right, right)
		areaLeft := geom.TriArea2(f.apex, f.left, left)

		if areaRight <= 0 {
			if p.near(f.apex, f.right) || geom.TriArea2(f.apex, f.left, right) > 0 {
				f.right = right
				f.rightIdx = i
			} else {
				// right crossed over left: left becomes a corner
				points = append(points, f.left)
				f.apex = f.left
				f.apexIdx = f.leftIdx
				f.collapse()
				i = f.apexIdx
				continue
			}
		}

		if areaLeft >= 0 {
			if p.near(f.apex, f.left) || geom.TriArea2(f.apex, f.right, left) < 0 {
				f.left = left
				f.leftIdx = i
			} else {
				points = append(points, f.right)
				f.apex = f.right
				f.apexIdx = f.rightIdx
				f.collapse()
				i = f.apexIdx
				continue
			}
		}
	}

	if points[len(points)-1] != end {
		points = append(points, end)
	}
	return points
}

var defaultPuller = &Puller{}

// PathToPortals uses a puller with DefaultEpsilon2.
func PathToPortals(src NodeSource, path []navgraph.NodeRef) []navgraph.Portal {
	return defaultPuller.PathToPortals(src, path)
}

// StringPull uses a puller with DefaultEpsilon2.
func StringPull(start, end geom.Vec2, portals []navgraph.Portal, radius float64) []geom.Vec2 {
	return defaultPuller.StringPull(start, end, portals, radius)
}
