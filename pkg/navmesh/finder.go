// Package navmesh is the query surface over a navigation mesh: it owns the
// portal graph, a search engine and a string puller, queues path requests
// and drives them a time budget at a time.
//
// A PathFinder is single threaded. Independent finders may share one
// immutable graph through NewWithGraph and run on separate goroutines.
package navmesh

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-navmesh/pkg/config"
	"github.com/dd0wney/cluso-navmesh/pkg/funnel"
	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/logging"
	"github.com/dd0wney/cluso-navmesh/pkg/mesh"
	"github.com/dd0wney/cluso-navmesh/pkg/metrics"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
	"github.com/dd0wney/cluso-navmesh/pkg/pathfind"
)

// Response is the outcome of one path request.
type Response struct {
	Ticket uuid.UUID
	Status pathfind.Status
	// Path runs from navgraph.DynamicStart to navgraph.DynamicEnd.
	Path    []navgraph.NodeRef
	Portals []navgraph.Portal
	Cost    float64
	// Waypoints is the smoothed path, set when smoothing is enabled.
	Waypoints []geom.Vec2
	Metrics   pathfind.Metrics
	// Err is set when the search could not run at all.
	Err error
}

// Found reports whether a path was found.
func (r Response) Found() bool {
	return r.Err == nil && r.Status == pathfind.StatusFound
}

// Option configures a PathFinder.
type Option func(*PathFinder)

// WithLogger sets the logger for the finder and the graph build.
func WithLogger(l logging.Logger) Option {
	return func(f *PathFinder) { f.logger = l }
}

// WithMetrics records graph and search metrics in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(f *PathFinder) { f.metrics = r }
}

// WithClock sets the clock used for tick budgets.
func WithClock(c pathfind.Clock) Option {
	return func(f *PathFinder) { f.clock = c }
}

// WithHeuristic replaces the default midpoint heuristic.
func WithHeuristic(h pathfind.Heuristic) Option {
	return func(f *PathFinder) { f.heuristic = h }
}

// pending is a queued request.
type pending struct {
	ticket uuid.UUID
	req    *pathfind.Request
	queued time.Time
}

// PathFinder answers path queries over one graph.
type PathFinder struct {
	cfg       config.Config
	graph     *navgraph.Graph
	engine    *pathfind.Engine
	puller    *funnel.Puller
	heuristic pathfind.Heuristic
	queue     []*pending

	clock   pathfind.Clock
	logger  logging.Logger
	metrics *metrics.Registry
}

// New builds the graph for m and returns a finder over it. cfg is
// validated first.
func New(m *mesh.Mesh, cfg config.Config, opts ...Option) (*PathFinder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// options are applied twice so the build sees the logger and registry
	pre := &PathFinder{}
	for _, opt := range opts {
		opt(pre)
	}
	var buildOpts []navgraph.Option
	if pre.logger != nil {
		buildOpts = append(buildOpts, navgraph.WithLogger(pre.logger))
	}
	if pre.metrics != nil {
		buildOpts = append(buildOpts, navgraph.WithMetrics(pre.metrics))
	}

	g, err := navgraph.Build(m, buildOpts...)
	if err != nil {
		return nil, err
	}
	return NewWithGraph(g, cfg, opts...)
}

// NewWithGraph returns a finder over an existing graph. The tick budget is
// normalised with config.ValidateTickBudget.
func NewWithGraph(g *navgraph.Graph, cfg config.Config, opts ...Option) (*PathFinder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.TickBudget = config.ValidateTickBudget(cfg.TickBudget)

	f := &PathFinder{
		cfg:   cfg,
		graph: g,
		clock: pathfind.SystemClock,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrNop(f.logger).With(logging.Component("navmesh"))
	if f.heuristic == nil {
		f.heuristic = pathfind.MidpointHeuristic
	}
	f.engine = pathfind.NewEngine(g, pathfind.WithClock(f.clock), pathfind.WithLogger(f.logger))
	f.puller = funnel.New(cfg.PortalEpsilon)
	return f, nil
}

// Graph returns the graph the finder searches.
func (f *PathFinder) Graph() *navgraph.Graph {
	return f.graph
}

// Config returns the finder settings.
func (f *PathFinder) Config() config.Config {
	return f.cfg
}
