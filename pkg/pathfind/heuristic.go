package pathfind

import (
	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
)

// Heuristic estimates the remaining cost from node to goal. It must never
// overestimate for the search to return optimal paths.
type Heuristic interface {
	Estimate(node, goal *navgraph.Node) float64
}

// HeuristicFunc adapts a function to Heuristic.
type HeuristicFunc func(node, goal *navgraph.Node) float64

// Estimate calls f.
func (f HeuristicFunc) Estimate(node, goal *navgraph.Node) float64 {
	return f(node, goal)
}

// MidpointHeuristic is the straight-line distance between portal midpoints.
// Connection costs are midpoint distances, so it is admissible.
var MidpointHeuristic Heuristic = HeuristicFunc(func(node, goal *navgraph.Node) float64 {
	return node.Portal.Midpoint.Dist(goal.Portal.Midpoint)
})

// ZeroHeuristic turns the search into Dijkstra's algorithm.
var ZeroHeuristic Heuristic = HeuristicFunc(func(*navgraph.Node, *navgraph.Node) float64 {
	return 0
})

// CentroidHeuristic returns the straight-line distance between the centroids
// of the first triangle of node and of goal. Portal midpoints can lie closer
// to each other than their triangle centroids do, so it may overestimate and
// the search is then no longer guaranteed to find the cheapest path.
func CentroidHeuristic(g *navgraph.Graph) Heuristic {
	m := g.Mesh()
	centroids := make([]geom.Vec2, m.Len())
	for i := range m.Triangles {
		centroids[i] = m.Triangles[i].Centroid()
	}
	return HeuristicFunc(func(node, goal *navgraph.Node) float64 {
		a, b := node.Triangles[0], goal.Triangles[0]
		if a < 0 || a >= len(centroids) || b < 0 || b >= len(centroids) {
			return node.Portal.Midpoint.Dist(goal.Portal.Midpoint)
		}
		return centroids[a].Dist(centroids[b])
	})
}
