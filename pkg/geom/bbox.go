package geom

import "math"

// BBox is an axis aligned bounding box.
type BBox struct {
	Min Vec2
	Max Vec2
}

// EmptyBBox returns a box that contains nothing and grows on Extend.
func EmptyBBox() BBox {
	return BBox{
		Min: Vec2{math.Inf(1), math.Inf(1)},
		Max: Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

// BoxAround returns the square of half-size r centred on p.
func BoxAround(p Vec2, r float64) BBox {
	return BBox{
		Min: Vec2{p.X - r, p.Y - r},
		Max: Vec2{p.X + r, p.Y + r},
	}
}

// BoundsOf returns the bounding box of pts.
func BoundsOf(pts ...Vec2) BBox {
	b := EmptyBBox()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// Extend returns b grown to include p.
func (b BBox) Extend(p Vec2) BBox {
	return BBox{
		Min: Vec2{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)},
		Max: Vec2{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)},
	}
}

// Contains reports whether p lies in the closed box.
func (b BBox) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersects reports whether the closed boxes overlap.
func (b BBox) Intersects(o BBox) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X && b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// IsEmpty reports whether the box has no extent at all.
func (b BBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}
