// Package pathfind runs time-sliced, resumable A* searches over a portal
// dual graph.
//
// A search is driven by repeated Search calls carrying a time budget. Each
// call charges elapsed time at the top of the main loop and suspends once
// the budget is spent, leaving the open list and node records intact for
// the next call. Records live in a table shared by every request on an
// engine and are invalidated by episode id, so an engine serves one
// in-flight request at a time.
package pathfind

import (
	"math"
	"time"

	"github.com/dd0wney/cluso-navmesh/pkg/logging"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
)

// TimeTolerance is the budget below which a search suspends rather than
// start another expansion.
const TimeTolerance = 100 * time.Nanosecond

// Unbounded is a budget that never runs out.
const Unbounded = time.Duration(math.MaxInt64)

// Engine searches one graph. It is not safe for concurrent use; run one
// engine per goroutine over a shared graph instead.
type Engine struct {
	graph   *navgraph.Graph
	records []NodeRecord
	open    openList
	episode uint32
	active  *Request
	scratch []navgraph.Connection

	clock  Clock
	logger logging.Logger
}

// EngineOption configures NewEngine.
type EngineOption func(*Engine)

// WithClock sets the clock used for budget accounting.
func WithClock(c Clock) EngineOption {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the engine logger.
func WithLogger(l logging.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine with a record table sized to g.
func NewEngine(g *navgraph.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:   g,
		records: make([]NodeRecord, g.NodeCount()),
		clock:   SystemClock,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrNop(e.logger).With(logging.Component("pathfind"))
	return e
}

// Graph returns the engine's graph.
func (e *Engine) Graph() *navgraph.Graph {
	return e.graph
}

// Active returns the request currently in flight, or nil.
func (e *Engine) Active() *Request {
	return e.active
}

// Search advances req for at most budget. It returns true once the request
// has finished, with the outcome in req.Status. A request that has not
// been searched before, or was Restarted, begins a new episode and
// supersedes whatever request was in flight. Resuming a superseded request
// returns ErrNotActive.
func (e *Engine) Search(req *Request, budget time.Duration) (bool, error) {
	if req == nil || req.graph != e.graph {
		return false, ErrInvalidQuery
	}
	if req.Done() {
		return true, nil
	}

	started := e.clock.Now()
	last := started
	bounded := budget < Unbounded

	if req.fresh {
		e.begin(req)
		req.fresh = false
	} else if e.active != req {
		return false, ErrNotActive
	}

	remaining := budget
	for e.open.Len() > 0 {
		if bounded {
			now := e.clock.Now()
			remaining -= now.Sub(last)
			if remaining <= TimeTolerance {
				req.metrics.Suspensions++
				req.metrics.Elapsed += now.Sub(started)
				return false, nil
			}
			last = now
		}

		current := e.open.pop()
		current.Category = Closed

		if current.Ref == navgraph.DynamicEnd {
			e.finish(req, current, started)
			return true, nil
		}

		req.metrics.Expansions++
		e.visitChildren(req, current)
	}

	e.finish(req, nil, started)
	return true, nil
}

// FindPath runs req to completion.
func (e *Engine) FindPath(req *Request) (Status, error) {
	if _, err := e.Search(req, Unbounded); err != nil {
		return StatusPending, err
	}
	return req.Status(), nil
}

// begin starts a new episode seeded with the start node.
func (e *Engine) begin(req *Request) {
	e.episode++
	if e.episode == 0 {
		for i := range e.records {
			e.records[i].Episode = 0
		}
		e.episode = 1
	}

	e.open.clear()
	if e.active != nil && e.active != req {
		e.logger.Debug("search superseded",
			logging.Point("start", e.active.Start),
			logging.Point("end", e.active.End))
	}
	e.active = req

	start := e.record(req, navgraph.DynamicStart)
	start.CostSoFar = 0
	start.HasConnection = false
	e.addToOpen(req, start, req.heuristic.Estimate(&req.startNode, &req.endNode))
}

// record returns the record for ref in the current episode, resetting
// leftovers from earlier episodes.
func (e *Engine) record(req *Request, ref navgraph.NodeRef) *NodeRecord {
	var rec *NodeRecord
	switch ref.Kind {
	case navgraph.KindStart:
		rec = &req.startRec
	case navgraph.KindEnd:
		rec = &req.endRec
	default:
		rec = &e.records[ref.Index]
	}
	if rec.Episode != e.episode {
		rec.reset(ref, e.episode)
	}
	return rec
}

func (e *Engine) addToOpen(req *Request, rec *NodeRecord, priority float64) {
	e.open.add(rec, priority)
	rec.Category = Open
	req.metrics.OpenAdditions++
	if n := e.open.Len(); n > req.metrics.OpenPeak {
		req.metrics.OpenPeak = n
	}
}

// connections returns the outgoing hops of ref. A static node lying on the
// end (or start) triangle gains a hop to the dynamic node there; the
// static graph itself is never modified.
func (e *Engine) connections(req *Request, ref navgraph.NodeRef) []navgraph.Connection {
	switch ref.Kind {
	case navgraph.KindStart:
		return req.startNode.Connections
	case navgraph.KindEnd:
		return req.endNode.Connections
	}

	node := e.graph.Node(int(ref.Index))
	conns := append(e.scratch[:0], node.Connections...)
	if node.Borders(req.EndTriangle) {
		conns = append(conns, navgraph.Connect(ref, node.Portal, navgraph.DynamicEnd, req.endNode.Portal))
	}
	if node.Borders(req.StartTriangle) {
		conns = append(conns, navgraph.Connect(ref, node.Portal, navgraph.DynamicStart, req.startNode.Portal))
	}
	e.scratch = conns
	return conns
}

func (e *Engine) visitChildren(req *Request, current *NodeRecord) {
	goal := &req.endNode

	for _, conn := range e.connections(req, current.Ref) {
		to := req.Node(conn.To)
		if !to.Portal.Admits(req.Radius) {
			continue
		}
		req.metrics.Visits++

		cost := current.CostSoFar + conn.Cost
		rec := e.record(req, conn.To)

		var estimate float64
		switch rec.Category {
		case Closed, Open:
			if rec.CostSoFar <= cost {
				continue
			}
			estimate = rec.Priority - rec.CostSoFar
		default:
			estimate = req.heuristic.Estimate(to, goal)
		}

		rec.CostSoFar = cost
		rec.Connection = conn
		rec.HasConnection = true
		e.addToOpen(req, rec, cost+estimate)
	}
}

// finish records the outcome. goal is nil when the open list ran dry.
func (e *Engine) finish(req *Request, goal *NodeRecord, started time.Time) {
	req.metrics.Elapsed += e.clock.Now().Sub(started)
	e.active = nil

	if goal == nil {
		req.status = StatusNotFound
		req.path = req.path[:0]
		e.logger.Debug("no path",
			logging.Point("start", req.Start),
			logging.Point("end", req.End),
			logging.Radius(req.Radius),
			logging.Expansions(req.metrics.Expansions))
		return
	}

	path := req.path[:0]
	for rec := goal; ; {
		path = append(path, rec.Ref)
		if !rec.HasConnection {
			break
		}
		rec = e.lookup(req, rec.Connection.From)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	req.path = path
	req.cost = goal.CostSoFar
	req.status = StatusFound
	e.logger.Debug("path found",
		logging.Count(len(path)),
		logging.Float64("cost", req.cost),
		logging.Expansions(req.metrics.Expansions))
}

// lookup returns the record for ref without touching its episode.
func (e *Engine) lookup(req *Request, ref navgraph.NodeRef) *NodeRecord {
	switch ref.Kind {
	case navgraph.KindStart:
		return &req.startRec
	case navgraph.KindEnd:
		return &req.endRec
	default:
		return &e.records[ref.Index]
	}
}
