package pathfind

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-navmesh/pkg/mesh"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
)

type scenario struct {
	graph *navgraph.Graph
	req   *Request
}

// newScenario builds a randomly holed grid and a request between the
// centroids of two of its triangles. ok is false when the draw is unusable.
func newScenario(cols, rows int, seed int64, from, to int, radius float64) (scenario, bool) {
	rng := rand.New(rand.NewSource(seed))
	blocked := make(map[[2]int]bool)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			blocked[[2]int{c, r}] = rng.Intn(3) == 0
		}
	}
	m, err := mesh.Grid(cols, rows, 10, func(c, r int) bool { return blocked[[2]int{c, r}] })
	if err != nil || m.Len() == 0 {
		return scenario{}, false
	}
	g, err := navgraph.Build(m)
	if err != nil {
		return scenario{}, false
	}

	start := m.Triangles[from%m.Len()].Centroid()
	end := m.Triangles[to%m.Len()].Centroid()
	req, err := NewRequest(g, start, end, radius, nil)
	if err != nil {
		return scenario{}, false
	}
	return scenario{graph: g, req: req}, true
}

func TestSearchProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40

	properties := gopter.NewProperties(parameters)

	properties.Property("admissible heuristic finds the reference optimum", prop.ForAll(
		func(cols, rows int, seed int64, from, to int, radius float64) bool {
			s, ok := newScenario(cols, rows, seed, from, to, radius)
			if !ok {
				return true
			}
			status, err := NewEngine(s.graph).FindPath(s.req)
			if err != nil {
				return false
			}

			_, refCost, found := ReferenceShortestPath(s.req)
			if found != (status == StatusFound) {
				return false
			}
			return !found || math.Abs(refCost-s.req.Cost()) < 1e-9
		},
		gen.IntRange(2, 7),
		gen.IntRange(2, 7),
		gen.Int64(),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.Float64Range(0, 7.5),
	))

	properties.Property("resumed ticks reproduce an uninterrupted run", prop.ForAll(
		func(cols, rows int, seed int64, from, to int, slice int) bool {
			s, ok := newScenario(cols, rows, seed, from, to, 1)
			if !ok {
				return true
			}
			if _, err := NewEngine(s.graph).FindPath(s.req); err != nil {
				return false
			}

			split, err := NewRequest(s.graph, s.req.Start, s.req.End, s.req.Radius, nil)
			if err != nil {
				return false
			}
			step := time.Microsecond
			e := NewEngine(s.graph, WithClock(NewStepClock(step)))
			budget := time.Duration(slice+1)*step + step/2
			for i := 0; ; i++ {
				done, err := e.Search(split, budget)
				if err != nil || i > 100000 {
					return false
				}
				if done {
					break
				}
			}

			if split.Status() != s.req.Status() || split.Cost() != s.req.Cost() {
				return false
			}
			a, b := split.Path(), s.req.Path()
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 7),
		gen.IntRange(2, 7),
		gen.Int64(),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
