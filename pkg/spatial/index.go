// Package spatial wraps an R-tree for bounding-box range queries.
//
// The index stores opaque items under boxes and answers which boxes overlap
// a query region. Geometric predicates on the items themselves belong to the
// caller.
package spatial

import (
	"github.com/tidwall/rtree"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
)

// Index is a bounding-box index of items of type T.
type Index[T any] struct {
	tree rtree.RTreeG[T]
}

// New creates an empty index.
func New[T any]() *Index[T] {
	return &Index[T]{}
}

// Insert registers item under box.
func (ix *Index[T]) Insert(item T, box geom.BBox) {
	ix.tree.Insert(point(box.Min), point(box.Max), item)
}

// QueryRange calls visit for every item whose box overlaps box. Iteration
// stops when visit returns false.
func (ix *Index[T]) QueryRange(box geom.BBox, visit func(T) bool) {
	ix.tree.Search(point(box.Min), point(box.Max), func(_, _ [2]float64, item T) bool {
		return visit(item)
	})
}

// ItemsInRange appends to dst every item whose box overlaps the square of
// half-size radius around pt.
func (ix *Index[T]) ItemsInRange(pt geom.Vec2, radius float64, dst []T) []T {
	ix.QueryRange(geom.BoxAround(pt, radius), func(item T) bool {
		dst = append(dst, item)
		return true
	})
	return dst
}

// Len returns the number of registered items.
func (ix *Index[T]) Len() int {
	return ix.tree.Len()
}

func point(v geom.Vec2) [2]float64 {
	return [2]float64{v.X, v.Y}
}
