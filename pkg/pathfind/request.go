package pathfind

import (
	"fmt"
	"math"
	"time"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
)

// DefaultSearchRadius bounds the range query used to find the triangle
// containing a start or end position.
const DefaultSearchRadius = 10.0

// Status is the outcome of a request.
type Status uint8

const (
	StatusPending Status = iota
	StatusFound
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	default:
		return "pending"
	}
}

// Metrics counts the work done by one request.
type Metrics struct {
	Expansions    int
	Visits        int
	OpenAdditions int
	OpenPeak      int
	Suspensions   int
	Elapsed       time.Duration
}

// RequestOption configures NewRequest.
type RequestOption func(*requestConfig)

type requestConfig struct {
	searchRadius float64
}

// WithSearchRadius sets the containment search radius.
func WithSearchRadius(r float64) RequestOption {
	return func(c *requestConfig) { c.searchRadius = r }
}

// Request is the per-query state of one search: the two dynamic nodes for
// the literal start and end positions, their records, and the result.
// A Request may be Reset and reused.
type Request struct {
	graph *navgraph.Graph

	Start  geom.Vec2
	End    geom.Vec2
	Radius float64

	StartTriangle int
	EndTriangle   int

	heuristic Heuristic
	startNode navgraph.Node
	endNode   navgraph.Node
	startRec  NodeRecord
	endRec    NodeRecord

	fresh   bool
	status  Status
	path    []navgraph.NodeRef
	cost    float64
	metrics Metrics
}

// NewRequest prepares a search from start to end for an agent of the given
// radius. It fails with ErrInvalidQuery when either position lies outside
// every interior triangle. A nil heuristic selects MidpointHeuristic.
func NewRequest(g *navgraph.Graph, start, end geom.Vec2, radius float64, h Heuristic, opts ...RequestOption) (*Request, error) {
	r := &Request{}
	if err := r.Reset(g, start, end, radius, h, opts...); err != nil {
		return nil, err
	}
	return r, nil
}

// Reset reinitialises r for a new query, reusing its storage.
func (r *Request) Reset(g *navgraph.Graph, start, end geom.Vec2, radius float64, h Heuristic, opts ...RequestOption) error {
	cfg := requestConfig{searchRadius: DefaultSearchRadius}
	for _, opt := range opts {
		opt(&cfg)
	}
	if h == nil {
		h = MidpointHeuristic
	}

	if g == nil {
		return fmt.Errorf("%w: no graph", ErrInvalidQuery)
	}
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: agent radius %v", ErrInvalidQuery, radius)
	}
	st, ok := g.ContainingTriangle(start, cfg.searchRadius)
	if !ok {
		return fmt.Errorf("%w: start %v is not on the walkable surface", ErrInvalidQuery, start)
	}
	et, ok := g.ContainingTriangle(end, cfg.searchRadius)
	if !ok {
		return fmt.Errorf("%w: end %v is not on the walkable surface", ErrInvalidQuery, end)
	}

	r.graph = g
	r.Start, r.End, r.Radius = start, end, radius
	r.StartTriangle, r.EndTriangle = st, et
	r.heuristic = h
	r.path = r.path[:0]
	r.cost = 0
	r.metrics = Metrics{}
	r.status = StatusPending
	r.fresh = true

	r.startNode = r.dynamicNode(navgraph.DynamicStart, start, st, r.startNode.Connections)
	r.endNode = r.dynamicNode(navgraph.DynamicEnd, end, et, r.endNode.Connections)
	if st == et {
		r.startNode.Connections = append(r.startNode.Connections,
			navgraph.Connect(navgraph.DynamicStart, r.startNode.Portal, navgraph.DynamicEnd, r.endNode.Portal))
		r.endNode.Connections = append(r.endNode.Connections,
			navgraph.Connect(navgraph.DynamicEnd, r.endNode.Portal, navgraph.DynamicStart, r.startNode.Portal))
	}
	r.startRec.reset(navgraph.DynamicStart, 0)
	r.endRec.reset(navgraph.DynamicEnd, 0)

	if start == end {
		r.finishTrivial()
	}
	return nil
}

// dynamicNode builds a point-portal node connected to every node on tri.
func (r *Request) dynamicNode(ref navgraph.NodeRef, pos geom.Vec2, tri int, conns []navgraph.Connection) navgraph.Node {
	n := navgraph.Node{
		Ref:         ref,
		Portal:      navgraph.PointPortal(pos),
		Triangles:   [2]int{tri, -1},
		Connections: conns[:0],
	}
	entry, _ := r.graph.Entry(tri)
	for _, to := range entry.Nodes {
		n.Connections = append(n.Connections, navgraph.Connect(ref, n.Portal, to, r.graph.Node(int(to.Index)).Portal))
	}
	return n
}

// finishTrivial completes a request whose start and end coincide without
// touching the graph.
func (r *Request) finishTrivial() {
	r.path = append(r.path[:0], navgraph.DynamicStart, navgraph.DynamicEnd)
	r.cost = 0
	r.status = StatusFound
	r.fresh = false
}

// Node resolves a reference against the static graph or this request's
// dynamic nodes.
func (r *Request) Node(ref navgraph.NodeRef) *navgraph.Node {
	switch ref.Kind {
	case navgraph.KindStart:
		return &r.startNode
	case navgraph.KindEnd:
		return &r.endNode
	default:
		return r.graph.Node(int(ref.Index))
	}
}

// Restart makes the next Search begin again from scratch.
func (r *Request) Restart() {
	if r.status == StatusPending {
		r.fresh = true
	}
}

// Graph returns the graph the request was resolved against.
func (r *Request) Graph() *navgraph.Graph { return r.graph }

// Status returns the current outcome.
func (r *Request) Status() Status { return r.status }

// Done reports whether the search has finished either way.
func (r *Request) Done() bool { return r.status != StatusPending }

// Path returns the node path from DynamicStart to DynamicEnd, or nil when
// no path was found.
func (r *Request) Path() []navgraph.NodeRef {
	if r.status != StatusFound {
		return nil
	}
	return r.path
}

// Cost returns the summed connection cost of Path.
func (r *Request) Cost() float64 { return r.cost }

// Metrics returns the work counters of the search so far.
func (r *Request) Metrics() Metrics { return r.metrics }

// Heuristic returns the heuristic in use.
func (r *Request) Heuristic() Heuristic { return r.heuristic }
