package navmesh

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-navmesh/pkg/config"
	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/logging"
	"github.com/dd0wney/cluso-navmesh/pkg/pathfind"
)

// newRequest resolves start and end against the graph. Rejections are
// logged and counted here.
func (f *PathFinder) newRequest(start, end geom.Vec2, radius float64) (*pathfind.Request, error) {
	req, err := pathfind.NewRequest(f.graph, start, end, radius, f.heuristic,
		pathfind.WithSearchRadius(f.cfg.ContainmentRadius))
	if err != nil {
		f.logger.Debug("path request rejected",
			logging.Point("start", start),
			logging.Point("end", end),
			logging.Radius(radius),
			logging.Error(err))
		if f.metrics != nil {
			f.metrics.RecordRejected()
		}
		return nil, err
	}
	return req, nil
}

// RequestPath queues a search from start to end for an agent of the given
// radius and returns its ticket. Positions off the walkable surface are
// rejected immediately with an error wrapping pathfind.ErrInvalidQuery.
func (f *PathFinder) RequestPath(start, end geom.Vec2, radius float64) (uuid.UUID, error) {
	req, err := f.newRequest(start, end, radius)
	if err != nil {
		return uuid.Nil, err
	}

	p := &pending{ticket: uuid.New(), req: req, queued: f.clock.Now()}
	f.queue = append(f.queue, p)
	f.setPending()

	f.logger.Debug("path requested",
		logging.Ticket(p.ticket),
		logging.Point("start", start),
		logging.Point("end", end),
		logging.Radius(radius))
	return p.ticket, nil
}

// Tick spends up to budget on queued requests in arrival order and returns
// the responses of those that finished. A request that runs out of budget
// stays at the head of the queue and resumes on the next Tick. A
// non-positive budget selects the configured tick budget and a positive one
// below config.MinTickBudget is raised to it; pathfind.Unbounded drains the
// queue.
func (f *PathFinder) Tick(budget time.Duration) []Response {
	switch {
	case budget <= 0:
		budget = f.cfg.TickBudget
	case budget < config.MinTickBudget:
		budget = config.MinTickBudget
	}
	bounded := budget < pathfind.Unbounded
	started := f.clock.Now()

	var out []Response
	for len(f.queue) > 0 {
		remaining := budget
		if bounded {
			remaining -= f.clock.Now().Sub(started)
			if remaining <= pathfind.TimeTolerance {
				break
			}
		}

		head := f.queue[0]
		done, err := f.engine.Search(head.req, remaining)
		if errors.Is(err, pathfind.ErrNotActive) {
			// a FindPath call took over the engine
			head.req.Restart()
			continue
		}
		if err != nil {
			out = append(out, Response{Ticket: head.ticket, Err: err})
			f.pop()
			continue
		}
		if !done {
			if f.metrics != nil {
				f.metrics.RecordSuspension()
			}
			break
		}

		out = append(out, f.complete(head.ticket, head.req, head.queued))
		f.pop()
	}
	f.setPending()

	if len(out) > 0 || len(f.queue) > 0 {
		f.logger.Debug("tick",
			logging.Budget(budget),
			logging.Count(len(out)),
			logging.Int("pending", len(f.queue)))
	}
	return out
}

// Cancel drops a queued request. It reports whether the ticket was found.
func (f *PathFinder) Cancel(ticket uuid.UUID) bool {
	for i, p := range f.queue {
		if p.ticket != ticket {
			continue
		}
		copy(f.queue[i:], f.queue[i+1:])
		f.queue[len(f.queue)-1] = nil
		f.queue = f.queue[:len(f.queue)-1]
		f.setPending()
		if f.metrics != nil {
			f.metrics.RecordCanceled()
		}
		f.logger.Debug("path request canceled", logging.Ticket(ticket))
		return true
	}
	return false
}

// Pending returns the number of queued requests.
func (f *PathFinder) Pending() int {
	return len(f.queue)
}

func (f *PathFinder) pop() {
	f.queue[0] = nil
	f.queue = f.queue[1:]
}

func (f *PathFinder) setPending() {
	if f.metrics != nil {
		f.metrics.SetPending(len(f.queue))
	}
}

// complete turns a finished request into a response, smoothing the path
// when enabled.
func (f *PathFinder) complete(ticket uuid.UUID, req *pathfind.Request, queued time.Time) Response {
	m := req.Metrics()
	resp := Response{
		Ticket:  ticket,
		Status:  req.Status(),
		Cost:    req.Cost(),
		Metrics: m,
	}

	if resp.Status == pathfind.StatusFound {
		resp.Path = append(resp.Path, req.Path()...)
		resp.Portals = f.puller.PathToPortals(req, resp.Path)
		if f.cfg.Smooth {
			resp.Waypoints = f.puller.StringPull(req.Start, req.End, resp.Portals, req.Radius)
			if f.metrics != nil {
				f.metrics.RecordWaypoints(len(resp.Waypoints))
			}
		}
	}

	if f.metrics != nil {
		f.metrics.RecordSearch(resp.Status.String(), m.Elapsed, m.Expansions)
	}
	f.logger.Debug("path complete",
		logging.Ticket(ticket),
		logging.Status(resp.Status),
		logging.Float64("cost", resp.Cost),
		logging.Expansions(m.Expansions),
		logging.Count(len(resp.Waypoints)),
		logging.Latency(f.clock.Now().Sub(queued)))
	return resp
}
