// Package navgraph builds the portal dual graph of a triangulated walkable
// region. Nodes are the walkable passages between adjacent triangles;
// connections join passages that lie on the same triangle, so the cost of
// a hop is the cost of crossing one triangle.
package navgraph

import (
	"sort"
	"time"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/mesh"
	"github.com/dd0wney/cluso-navmesh/pkg/pools"
	"github.com/dd0wney/cluso-navmesh/pkg/spatial"
)

// boundaryEps absorbs points that sit exactly on a shared edge or vertex
// and so fail every half-open containment test.
const boundaryEps = 1e-9

// TriangleEntry lists the graph nodes lying on one interior triangle.
type TriangleEntry struct {
	Triangle int
	Nodes    []NodeRef
}

// Stats summarises a built graph.
type Stats struct {
	Triangles   int
	Nodes       int
	Portals     int
	Islands     int
	Connections int
	BuildTime   time.Duration
}

// Graph is an immutable portal dual graph. It is safe for concurrent reads.
type Graph struct {
	mesh    *mesh.Mesh
	nodes   []Node
	entries []TriangleEntry
	index   *spatial.Index[int32]
	stats   Stats
}

// NodeCount returns the number of static nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Node returns static node i.
func (g *Graph) Node(i int) *Node {
	return &g.nodes[i]
}

// Nodes returns the static node table. Callers must not modify it.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// TriangleCount returns the number of interior triangles.
func (g *Graph) TriangleCount() int {
	return g.stats.Triangles
}

// Mesh returns the mesh the graph was built from.
func (g *Graph) Mesh() *mesh.Mesh {
	return g.mesh
}

// Stats returns build statistics.
func (g *Graph) Stats() Stats {
	return g.stats
}

// Entry returns the nodes on interior triangle tri.
func (g *Graph) Entry(tri int) (TriangleEntry, bool) {
	if tri < 0 || tri >= len(g.entries) || !g.mesh.Triangles[tri].Interior {
		return TriangleEntry{}, false
	}
	return g.entries[tri], true
}

// ContainingTriangle returns the interior triangle containing pt, looking
// only at triangles whose bounds come within searchRadius of pt. When
// several triangles claim pt the lowest index wins.
func (g *Graph) ContainingTriangle(pt geom.Vec2, searchRadius float64) (int, bool) {
	ids := pools.GetInt32s(16)
	ids = g.index.ItemsInRange(pt, searchRadius, ids)
	defer pools.PutInt32s(ids)

	best := -1
	for _, id := range ids {
		t := int(id)
		if (best < 0 || t < best) && g.mesh.Triangles[t].Contains(pt) {
			best = t
		}
	}
	if best >= 0 {
		return best, true
	}

	// pt may lie exactly on an edge claimed by no triangle
	for _, id := range ids {
		t := int(id)
		if (best < 0 || t < best) && onBoundary(&g.mesh.Triangles[t], pt) {
			best = t
		}
	}
	return best, best >= 0
}

func onBoundary(t *mesh.Triangle, pt geom.Vec2) bool {
	for e := 0; e < 3; e++ {
		a, b := t.Edge(e)
		if geom.SegmentDist(a, b, pt) <= boundaryEps {
			return true
		}
	}
	return false
}

// TrianglesNear returns the interior triangles whose bounds come within
// radius of pt, in ascending order.
func (g *Graph) TrianglesNear(pt geom.Vec2, radius float64) []int {
	ids := pools.GetInt32s(64)
	ids = g.index.ItemsInRange(pt, radius, ids)
	defer pools.PutInt32s(ids)

	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	sort.Ints(out)
	return out
}
