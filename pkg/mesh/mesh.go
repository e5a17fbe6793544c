// Package mesh models the triangulated walkable region that the navigation
// graph is built from.
//
// A Mesh is produced elsewhere (by a triangulator, a YAML document, a
// snapshot or the Grid generator) and is treated as read-only input.
package mesh

import (
	"fmt"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
)

// NoNeighbor marks an edge without an adjacent triangle.
const NoNeighbor = -1

// edgeVerts lists the point indices of each edge. Edge i is opposite point i.
var edgeVerts = [3][2]int{{1, 2}, {0, 2}, {0, 1}}

// Triangle is one face of the walkable region.
type Triangle struct {
	Points      [3]geom.Vec2
	Neighbors   [3]int  // neighbour triangle across edge i, NoNeighbor if none
	Constrained [3]bool // edge i is a wall
	Interior    bool    // the triangle is part of the walkable region
}

// Edge returns the endpoints of edge i.
func (t *Triangle) Edge(i int) (geom.Vec2, geom.Vec2) {
	return t.Points[edgeVerts[i][0]], t.Points[edgeVerts[i][1]]
}

// Centroid returns the triangle centroid.
func (t *Triangle) Centroid() geom.Vec2 {
	return geom.Centroid(t.Points[0], t.Points[1], t.Points[2])
}

// Bounds returns the triangle bounding box.
func (t *Triangle) Bounds() geom.BBox {
	return geom.BoundsOf(t.Points[0], t.Points[1], t.Points[2])
}

// Contains reports whether p lies inside the triangle.
func (t *Triangle) Contains(p geom.Vec2) bool {
	return geom.InTriangle(t.Points, p)
}

// Mesh is a set of triangles whose neighbour links index into Triangles.
// Disjoint walkable regions are disjoint sets of triangles.
type Mesh struct {
	Triangles []Triangle
}

// Len returns the number of triangles.
func (m *Mesh) Len() int {
	return len(m.Triangles)
}

// Triangle returns a pointer to triangle i.
func (m *Mesh) Triangle(i int) *Triangle {
	return &m.Triangles[i]
}

// Walkable reports whether an agent may cross edge e of triangle t: the edge
// is not a wall and the neighbour on the other side exists and is interior.
func (m *Mesh) Walkable(t, e int) bool {
	tri := &m.Triangles[t]
	if tri.Constrained[e] {
		return false
	}
	n := tri.Neighbors[e]
	if n < 0 || n >= len(m.Triangles) {
		return false
	}
	return m.Triangles[n].Interior
}

// Bounds returns the bounding box of all interior triangles.
func (m *Mesh) Bounds() geom.BBox {
	b := geom.EmptyBBox()
	for i := range m.Triangles {
		t := &m.Triangles[i]
		if !t.Interior {
			continue
		}
		for _, p := range t.Points {
			b = b.Extend(p)
		}
	}
	return b
}

// Validate checks that every neighbour link is in range, reciprocated and
// agrees on the shared edge, and that a wall is marked on both sides of it.
// It returns a *BuildError wrapping
// ErrMalformedAdjacency for the first problem found.
func (m *Mesh) Validate() error {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		for e, n := range t.Neighbors {
			if n == NoNeighbor {
				continue
			}
			if n < 0 || n >= len(m.Triangles) {
				return AdjacencyError(i, e, fmt.Sprintf("neighbour %d out of range", n))
			}
			if n == i {
				return AdjacencyError(i, e, "triangle is its own neighbour")
			}
			back := m.Triangles[n].edgeTo(i)
			if back < 0 {
				return AdjacencyError(i, e, fmt.Sprintf("neighbour %d does not link back", n))
			}
			a1, b1 := t.Edge(e)
			a2, b2 := m.Triangles[n].Edge(back)
			if !sameSegment(a1, b1, a2, b2) {
				return AdjacencyError(i, e, fmt.Sprintf("shared edge with %d does not coincide", n))
			}
			if t.Constrained[e] != m.Triangles[n].Constrained[back] {
				return AdjacencyError(i, e, fmt.Sprintf("wall on one side of the edge shared with %d", n))
			}
		}
	}
	return nil
}

// edgeTo returns the edge index that links to triangle n, or -1.
func (t *Triangle) edgeTo(n int) int {
	for e, nb := range t.Neighbors {
		if nb == n {
			return e
		}
	}
	return -1
}

const coincideEps2 = 1e-12

func sameSegment(a1, b1, a2, b2 geom.Vec2) bool {
	if a1.Near(a2, coincideEps2) && b1.Near(b2, coincideEps2) {
		return true
	}
	return a1.Near(b2, coincideEps2) && b1.Near(a2, coincideEps2)
}

type edgeKey struct {
	lo, hi int
}

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type faceEdge struct {
	face, edge int
}

// FromIndexed builds a mesh from a shared vertex table and faces given as
// vertex index triples. Adjacency is derived from shared vertex pairs. An
// edge used by a single face becomes a constrained boundary; an edge used by
// more than two faces is an error. Pairs listed in constrained become walls
// on both sides. All faces are interior.
func FromIndexed(vertices []geom.Vec2, faces [][3]int, constrained [][2]int) (*Mesh, error) {
	m := &Mesh{Triangles: make([]Triangle, len(faces))}
	owners := make(map[edgeKey][]faceEdge, len(faces)*3/2)

	for f, face := range faces {
		for _, v := range face {
			if v < 0 || v >= len(vertices) {
				return nil, FaceError(f, fmt.Sprintf("vertex %d out of range", v))
			}
		}
		if face[0] == face[1] || face[1] == face[2] || face[0] == face[2] {
			return nil, FaceError(f, "repeated vertex")
		}

		t := &m.Triangles[f]
		t.Interior = true
		for k, v := range face {
			t.Points[k] = vertices[v]
		}
		for e := 0; e < 3; e++ {
			t.Neighbors[e] = NoNeighbor
			key := keyOf(face[edgeVerts[e][0]], face[edgeVerts[e][1]])
			owners[key] = append(owners[key], faceEdge{f, e})
		}
	}

	for key, fes := range owners {
		switch len(fes) {
		case 1:
			m.Triangles[fes[0].face].Constrained[fes[0].edge] = true
		case 2:
			a, b := fes[0], fes[1]
			m.Triangles[a.face].Neighbors[a.edge] = b.face
			m.Triangles[b.face].Neighbors[b.edge] = a.face
		default:
			return nil, NewError("from-indexed").
				Triangle(fes[0].face).
				Edge(fes[0].edge).
				Contextf("edge %d-%d shared by %d faces", key.lo, key.hi, len(fes)).
				Cause(ErrMalformedAdjacency).
				Err()
		}
	}

	for _, pair := range constrained {
		for _, fe := range owners[keyOf(pair[0], pair[1])] {
			m.Triangles[fe.face].Constrained[fe.edge] = true
		}
	}

	return m, nil
}
