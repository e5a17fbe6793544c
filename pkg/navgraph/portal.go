package navgraph

import (
	"github.com/dd0wney/cluso-navmesh/pkg/geom"
)

// Portal is a passage an agent crosses, bounded by Left and Right as seen
// by an agent walking through it. A zero-length portal is a point.
type Portal struct {
	Left       geom.Vec2
	Right      geom.Vec2
	Length     float64
	HalfLength float64
	// LeftAngle points from Left towards Right, RightAngle the reverse.
	// Both are degrees in [0, 360).
	LeftAngle  float64
	RightAngle float64
	Midpoint   geom.Vec2

	// IgnoreWidthCheck exempts the portal from agent radius pruning.
	IgnoreWidthCheck bool
	// Island marks the centroid portal of a triangle with no walkable edge.
	Island bool
}

// NewPortal returns a portal from left to right with derived fields set.
func NewPortal(left, right geom.Vec2) Portal {
	length := left.Dist(right)
	return Portal{
		Left:       left,
		Right:      right,
		Length:     length,
		HalfLength: length / 2,
		LeftAngle:  geom.AngleBetween(left, right),
		RightAngle: geom.AngleBetween(right, left),
		Midpoint:   left.Mid(right),
	}
}

// PointPortal returns a zero-length portal at p. Point portals are exempt
// from width checks.
func PointPortal(p geom.Vec2) Portal {
	pp := NewPortal(p, p)
	pp.IgnoreWidthCheck = true
	return pp
}

// EdgePortal orients the shared edge p1-p2 as seen from the centroid c of
// the triangle that owns it: when the short rotation from c->p1 to c->p2
// is counter-clockwise p1 is Left, otherwise p2 is Left.
func EdgePortal(p1, p2, c geom.Vec2) Portal {
	a1 := geom.AngleBetween(c, p1)
	a2 := geom.AngleBetween(c, p2)
	if geom.IsShortRotCCW(a1, a2) {
		return NewPortal(p1, p2)
	}
	return NewPortal(p2, p1)
}

// Flipped returns the portal with Left and Right swapped.
func (p Portal) Flipped() Portal {
	f := NewPortal(p.Right, p.Left)
	f.IgnoreWidthCheck = p.IgnoreWidthCheck
	f.Island = p.Island
	return f
}

// IsPoint reports whether the portal has no extent.
func (p Portal) IsPoint() bool {
	return p.Length == 0
}

// Admits reports whether an agent of the given radius fits through.
func (p Portal) Admits(radius float64) bool {
	return p.IgnoreWidthCheck || radius <= p.HalfLength
}
