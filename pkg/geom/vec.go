// Package geom holds the small amount of 2D math shared by the mesh, graph,
// search and funnel packages.
//
// Coordinates are world units in a y-up plane. Angles are degrees in [0, 360).
package geom

import (
	"fmt"
	"math"
)

// Vec2 is a point or direction in the walkable plane.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Cross returns the z component of v x o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Dot returns v . o
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Dist2 returns the squared distance between v and o.
func (v Vec2) Dist2(o Vec2) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	return dx*dx + dy*dy
}

// Mid returns the midpoint of the segment v-o.
func (v Vec2) Mid(o Vec2) Vec2 {
	return Vec2{(v.X + o.X) * 0.5, (v.Y + o.Y) * 0.5}
}

// Near reports whether v and o are closer than sqrt(eps2).
func (v Vec2) Near(o Vec2, eps2 float64) bool {
	return v.Dist2(o) < eps2
}

// Less orders points lexicographically by X then Y.
func (v Vec2) Less(o Vec2) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	return v.Y < o.Y
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// FromAngle returns a vector of the given length pointing at angleDeg.
func FromAngle(angleDeg, length float64) Vec2 {
	rad := angleDeg * math.Pi / 180
	return Vec2{math.Cos(rad) * length, math.Sin(rad) * length}
}

// TriArea2 returns twice the signed area of triangle a, b, c with the sign
// convention used by the funnel: positive when c lies clockwise of a->b.
func TriArea2(a, b, c Vec2) float64 {
	ax := b.X - a.X
	ay := b.Y - a.Y
	bx := c.X - a.X
	by := c.Y - a.Y
	return bx*ay - ax*by
}

// Centroid returns the centroid of triangle a, b, c.
func Centroid(a, b, c Vec2) Vec2 {
	return Vec2{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
}

// InTriangle reports whether p lies inside the triangle using the even-odd
// crossing rule. Boundary handling is half-open: a point on the right-hand
// side of the triangle is outside.
func InTriangle(pts [3]Vec2, p Vec2) bool {
	crossings := 0
	for i := 0; i < 3; i++ {
		a := pts[i]
		b := pts[(i+1)%3]
		if (a.Y <= p.Y && p.Y < b.Y) || (b.Y <= p.Y && p.Y < a.Y) {
			if p.X < (b.X-a.X)/(b.Y-a.Y)*(p.Y-a.Y)+a.X {
				crossings++
			}
		}
	}
	return crossings&1 == 1
}

// NearestOnSegment returns the point of segment a-b closest to p.
func NearestOnSegment(a, b, p Vec2) Vec2 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return a.Add(ab.Scale(t))
}

// SegmentDist returns the distance from p to segment a-b.
func SegmentDist(a, b, p Vec2) float64 {
	return NearestOnSegment(a, b, p).Dist(p)
}
