package navgraph

import (
	"time"

	"github.com/dd0wney/cluso-navmesh/pkg/logging"
	"github.com/dd0wney/cluso-navmesh/pkg/mesh"
	"github.com/dd0wney/cluso-navmesh/pkg/metrics"
	"github.com/dd0wney/cluso-navmesh/pkg/spatial"
)

type buildConfig struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures Build.
type Option func(*buildConfig)

// WithLogger logs the build summary to l.
func WithLogger(l logging.Logger) Option {
	return func(c *buildConfig) { c.logger = l }
}

// WithMetrics records graph gauges in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *buildConfig) { c.metrics = r }
}

// trianglePair identifies the single edge two triangles share.
type trianglePair struct {
	lo, hi int
}

func pairOf(a, b int) trianglePair {
	if a > b {
		a, b = b, a
	}
	return trianglePair{a, b}
}

// Build constructs the dual graph of m. The mesh adjacency is validated
// first; a malformed mesh yields a *BuildError wrapping
// ErrMalformedAdjacency. A nil or empty mesh gives an empty graph.
func Build(m *mesh.Mesh, opts ...Option) (*Graph, error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := logging.OrNop(cfg.logger).With(logging.Component("navgraph"))
	start := time.Now()

	if m == nil {
		m = &mesh.Mesh{}
	}
	if err := m.Validate(); err != nil {
		logger.Error("navgraph build failed", logging.Error(err))
		return nil, err
	}

	g := &Graph{
		mesh:    m,
		entries: make([]TriangleEntry, m.Len()),
		index:   spatial.New[int32](),
	}
	for i := range g.entries {
		g.entries[i].Triangle = i
	}

	g.addPortals()
	g.stats.Portals = len(g.nodes)
	g.addIslandsAndLinks(logger)

	for t := range m.Triangles {
		if m.Triangles[t].Interior {
			g.index.Insert(int32(t), m.Triangles[t].Bounds())
			g.stats.Triangles++
		}
	}

	g.stats.Nodes = len(g.nodes)
	g.stats.Islands = g.stats.Nodes - g.stats.Portals
	g.stats.BuildTime = time.Since(start)

	logger.Info("navgraph built",
		logging.Int("triangles", g.stats.Triangles),
		logging.Int("nodes", g.stats.Nodes),
		logging.Int("islands", g.stats.Islands),
		logging.Int("connections", g.stats.Connections),
		logging.Latency(g.stats.BuildTime))

	if cfg.metrics != nil {
		cfg.metrics.RecordGraph(g.stats.Nodes, g.stats.Triangles, g.stats.Islands, g.stats.Connections, g.stats.BuildTime)
	}

	return g, nil
}

// addPortals creates one node per walkable shared edge. An edge reached
// again from its other triangle maps to the node already created.
func (g *Graph) addPortals() {
	m := g.mesh
	seen := make(map[trianglePair]struct{}, m.Len())

	for t := range m.Triangles {
		tri := &m.Triangles[t]
		if !tri.Interior {
			continue
		}
		for e := 0; e < 3; e++ {
			if !m.Walkable(t, e) {
				continue
			}
			n := tri.Neighbors[e]
			key := pairOf(t, n)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			p1, p2 := tri.Edge(e)
			ref := Static(len(g.nodes))
			g.nodes = append(g.nodes, Node{
				Ref:       ref,
				Portal:    EdgePortal(p1, p2, tri.Centroid()),
				Triangles: [2]int{t, n},
			})
			g.entries[t].Nodes = append(g.entries[t].Nodes, ref)
			g.entries[n].Nodes = append(g.entries[n].Nodes, ref)
		}
	}
}

// addIslandsAndLinks gives every portal-less interior triangle a centroid
// node and joins each ordered pair of distinct nodes sharing a triangle.
func (g *Graph) addIslandsAndLinks(logger logging.Logger) {
	m := g.mesh
	linked := make(map[[2]NodeRef]struct{})

	for t := range m.Triangles {
		tri := &m.Triangles[t]
		if !tri.Interior {
			continue
		}

		entry := &g.entries[t]
		if len(entry.Nodes) == 0 {
			p := PointPortal(tri.Centroid())
			p.Island = true
			ref := Static(len(g.nodes))
			g.nodes = append(g.nodes, Node{Ref: ref, Portal: p, Triangles: [2]int{t, -1}})
			entry.Nodes = []NodeRef{ref}
			logger.Debug("island triangle",
				logging.Triangle(t),
				logging.NodeIndex(int(ref.Index)))
			continue
		}

		for _, a := range entry.Nodes {
			for _, b := range entry.Nodes {
				if a == b {
					continue
				}
				if _, ok := linked[[2]NodeRef{a, b}]; ok {
					continue
				}
				linked[[2]NodeRef{a, b}] = struct{}{}

				from := &g.nodes[a.Index]
				to := &g.nodes[b.Index]
				from.Connections = append(from.Connections, Connect(a, from.Portal, b, to.Portal))
				g.stats.Connections++
			}
		}
	}
}
