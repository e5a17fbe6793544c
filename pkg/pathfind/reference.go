package pathfind

import (
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
)

// ReferenceShortestPath computes the cheapest route for req with an
// exhaustive Dijkstra search that applies the same width pruning and
// dynamic wiring as the engine but shares none of its state. It is meant
// for tests and diagnostics on small graphs; req is not modified.
func ReferenceShortestPath(req *Request) ([]navgraph.NodeRef, float64, bool) {
	if req.Start == req.End {
		return []navgraph.NodeRef{navgraph.DynamicStart, navgraph.DynamicEnd}, 0, true
	}

	type pqItem struct {
		ref      navgraph.NodeRef
		distance float64
	}

	g := req.graph
	distances := make(map[navgraph.NodeRef]float64)
	parent := make(map[navgraph.NodeRef]navgraph.NodeRef)
	settled := make(map[navgraph.NodeRef]bool)
	distances[navgraph.DynamicStart] = 0
	parent[navgraph.DynamicStart] = navgraph.DynamicStart

	pq := []pqItem{{navgraph.DynamicStart, 0}}

	for len(pq) > 0 {
		// Extract min (linear scan)
		minIdx := 0
		for i := 1; i < len(pq); i++ {
			if pq[i].distance < pq[minIdx].distance {
				minIdx = i
			}
		}
		current := pq[minIdx]
		pq = append(pq[:minIdx], pq[minIdx+1:]...)

		if settled[current.ref] {
			continue
		}
		settled[current.ref] = true

		if current.ref == navgraph.DynamicEnd {
			path := make([]navgraph.NodeRef, 0)
			ref := navgraph.DynamicEnd
			for ref != navgraph.DynamicStart {
				path = append(path, ref)
				ref = parent[ref]
			}
			path = append(path, navgraph.DynamicStart)

			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, distances[navgraph.DynamicEnd], true
		}

		for _, conn := range referenceConnections(req, g, current.ref) {
			if !req.Node(conn.To).Portal.Admits(req.Radius) {
				continue
			}
			newDist := current.distance + conn.Cost
			if oldDist, seen := distances[conn.To]; !seen || newDist < oldDist {
				distances[conn.To] = newDist
				parent[conn.To] = current.ref
				pq = append(pq, pqItem{conn.To, newDist})
			}
		}
	}

	return nil, 0, false
}

func referenceConnections(req *Request, g *navgraph.Graph, ref navgraph.NodeRef) []navgraph.Connection {
	if ref.IsDynamic() {
		return req.Node(ref).Connections
	}
	node := g.Node(int(ref.Index))
	conns := append([]navgraph.Connection(nil), node.Connections...)
	if node.Borders(req.EndTriangle) {
		conns = append(conns, navgraph.Connect(ref, node.Portal, navgraph.DynamicEnd, req.endNode.Portal))
	}
	return conns
}
