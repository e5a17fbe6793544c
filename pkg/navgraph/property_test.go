package navgraph

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/mesh"
)

// randomGrid returns a grid with roughly a quarter of the cells blocked.
func randomGrid(cols, rows int, seed int64) *mesh.Mesh {
	rng := rand.New(rand.NewSource(seed))
	blocked := make(map[[2]int]bool)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			blocked[[2]int{c, r}] = rng.Intn(4) == 0
		}
	}
	m, err := mesh.Grid(cols, rows, 10, func(c, r int) bool { return blocked[[2]int{c, r}] })
	if err != nil {
		panic(err)
	}
	return m
}

type segmentKey [2]geom.Vec2

func keyFor(a, b geom.Vec2) segmentKey {
	if b.Less(a) {
		a, b = b, a
	}
	return segmentKey{a, b}
}

// expectedNodes counts distinct walkable edges by endpoint pair plus
// interior triangles that have no walkable edge.
func expectedNodes(m *mesh.Mesh) int {
	portals := make(map[segmentKey]struct{})
	islands := 0
	for t := range m.Triangles {
		if !m.Triangles[t].Interior {
			continue
		}
		walkable := 0
		for e := 0; e < 3; e++ {
			if m.Walkable(t, e) {
				a, b := m.Triangles[t].Edge(e)
				portals[keyFor(a, b)] = struct{}{}
				walkable++
			}
		}
		if walkable == 0 {
			islands++
		}
	}
	return len(portals) + islands
}

func TestGraphInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("node count is deduplicated portals plus islands", prop.ForAll(
		func(cols, rows int, seed int64) bool {
			m := randomGrid(cols, rows, seed)
			g, err := Build(m)
			if err != nil {
				return false
			}
			return g.NodeCount() == expectedNodes(m)
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 8),
		gen.Int64(),
	))

	properties.Property("node indices are dense", prop.ForAll(
		func(cols, rows int, seed int64) bool {
			g, err := Build(randomGrid(cols, rows, seed))
			if err != nil {
				return false
			}
			for i, n := range g.Nodes() {
				if n.Ref != Static(i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 8),
		gen.Int64(),
	))

	properties.Property("no node connects to itself", prop.ForAll(
		func(cols, rows int, seed int64) bool {
			g, err := Build(randomGrid(cols, rows, seed))
			if err != nil {
				return false
			}
			for _, n := range g.Nodes() {
				for _, c := range n.Connections {
					if c.To == n.Ref || c.From != n.Ref || !c.To.IsStatic() {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 8),
		gen.Int64(),
	))

	properties.Property("every interior triangle maps to a node on it", prop.ForAll(
		func(cols, rows int, seed int64) bool {
			m := randomGrid(cols, rows, seed)
			g, err := Build(m)
			if err != nil {
				return false
			}
			for tri := range m.Triangles {
				entry, ok := g.Entry(tri)
				if !ok || len(entry.Nodes) == 0 {
					return false
				}
				for _, ref := range entry.Nodes {
					if !g.Node(int(ref.Index)).Borders(tri) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 8),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
