package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-navmesh/pkg/config"
	"github.com/dd0wney/cluso-navmesh/pkg/geom"
	"github.com/dd0wney/cluso-navmesh/pkg/logging"
	"github.com/dd0wney/cluso-navmesh/pkg/mesh"
	"github.com/dd0wney/cluso-navmesh/pkg/metrics"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
	"github.com/dd0wney/cluso-navmesh/pkg/navmesh"
	"github.com/dd0wney/cluso-navmesh/pkg/pathfind"
)

func main() {
	meshPath := flag.String("mesh", "", "Mesh to load: YAML document or snapshot (default: generated grid)")
	configPath := flag.String("config", "", "YAML config file")
	cols := flag.Int("cols", 60, "Generated grid columns")
	rows := flag.Int("rows", 60, "Generated grid rows")
	cell := flag.Float64("cell", 10, "Generated grid cell size")
	holes := flag.Float64("holes", 0.2, "Fraction of generated grid cells that are blocked")
	queries := flag.Int("queries", 1000, "Number of path requests")
	radius := flag.Float64("radius", -1, "Agent radius (default: from config)")
	budget := flag.Duration("budget", 0, "Tick budget (default: from config)")
	workers := flag.Int("workers", 1, "Number of independent path finders (0 = CPU count)")
	seed := flag.Int64("seed", 1, "Random seed")
	heuristicName := flag.String("heuristic", "midpoint", "Search heuristic: midpoint, centroid or zero")
	flag.Parse()

	if *workers == 0 {
		*workers = runtime.NumCPU()
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	} else if err := cfg.Normalize(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if *radius < 0 {
		*radius = cfg.DefaultAgentRadius
	}
	if *budget <= 0 {
		*budget = cfg.TickBudget
	}

	logger := logging.NewJSONLogger(os.Stderr, cfg.Level()).With(logging.Component("navmesh-bench"))
	reg := metrics.NewRegistry()

	fmt.Printf("🧭 Navmesh Path Finding Benchmark\n")
	fmt.Printf("======================================\n\n")

	m, source, err := loadMesh(*meshPath, *cols, *rows, *cell, *holes, *seed)
	if err != nil {
		log.Fatalf("Failed to load mesh: %v", err)
	}

	timer := logging.StartTimer(logger, "graph build")
	g, err := navgraph.Build(m, navgraph.WithLogger(logger), navgraph.WithMetrics(reg))
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}
	timer.EndDebug()
	stats := g.Stats()

	var heuristic pathfind.Heuristic
	switch *heuristicName {
	case "midpoint":
		heuristic = pathfind.MidpointHeuristic
	case "centroid":
		heuristic = pathfind.CentroidHeuristic(g)
	case "zero":
		heuristic = pathfind.ZeroHeuristic
	default:
		log.Fatalf("Unknown heuristic %q", *heuristicName)
	}

	fmt.Printf("Configuration:\n")
	fmt.Printf("  Mesh:        %s\n", source)
	fmt.Printf("  Triangles:   %d\n", stats.Triangles)
	fmt.Printf("  Nodes:       %d (%d islands)\n", stats.Nodes, stats.Islands)
	fmt.Printf("  Build:       %s\n", stats.BuildTime)
	fmt.Printf("  Queries:     %d\n", *queries)
	fmt.Printf("  Radius:      %.2f\n", *radius)
	fmt.Printf("  Tick Budget: %s\n", *budget)
	fmt.Printf("  Heuristic: %s\n", *heuristicName)
	fmt.Printf("  Workers:     %d\n\n", *workers)

	if stats.Triangles == 0 {
		log.Fatalf("Mesh has no walkable triangles")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("⚡ Running queries...\n")
	var (
		mu    sync.Mutex
		total benchStats
	)
	started := time.Now()
	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < *workers; w++ {
		share := *queries / *workers
		if w < *queries%*workers {
			share++
		}
		w := w
		eg.Go(func() error {
			finder, err := navmesh.NewWithGraph(g, cfg, navmesh.WithLogger(logger), navmesh.WithMetrics(reg), navmesh.WithHeuristic(heuristic))
			if err != nil {
				return err
			}
			s, err := runWorker(egCtx, finder, share, *radius, *budget, rand.New(rand.NewSource(*seed+int64(w))))
			if err != nil {
				return err
			}
			mu.Lock()
			total.merge(s)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}
	duration := time.Since(started)

	total.print(duration)

	snap, err := reg.Snapshot()
	if err != nil {
		log.Fatalf("Failed to gather metrics: %v", err)
	}
	fmt.Printf("\n📈 Metrics\n")
	fmt.Printf("======================================\n")
	keys := make([]string, 0, len(snap))
	for k := range snap {
		if strings.HasPrefix(k, "navmesh_requests_total") || strings.HasSuffix(k, "_count") || strings.HasSuffix(k, "_total") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-48s %.0f\n", k, snap[k])
	}
}

// loadMesh reads path by extension, or generates a holed grid when path
// is empty.
func loadMesh(path string, cols, rows int, cell, holes float64, seed int64) (*mesh.Mesh, string, error) {
	if path == "" {
		rng := rand.New(rand.NewSource(seed))
		blocked := make(map[[2]int]bool)
		for c := 0; c < cols; c++ {
			for r := 0; r < rows; r++ {
				blocked[[2]int{c, r}] = rng.Float64() < holes
			}
		}
		m, err := mesh.Grid(cols, rows, cell, func(c, r int) bool { return blocked[[2]int{c, r}] })
		return m, fmt.Sprintf("grid %dx%d (%.0f%% blocked)", cols, rows, holes*100), err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err := mesh.LoadYAML(path)
		return m, path, err
	default:
		m, err := mesh.ReadSnapshot(path)
		return m, path, err
	}
}

type benchStats struct {
	found, notFound, rejected int
	ticks                     int
	expansions                int
	waypoints                 int
	latencies                 []time.Duration
}

func (s *benchStats) merge(o benchStats) {
	s.found += o.found
	s.notFound += o.notFound
	s.rejected += o.rejected
	s.ticks += o.ticks
	s.expansions += o.expansions
	s.waypoints += o.waypoints
	s.latencies = append(s.latencies, o.latencies...)
}

// runWorker issues n random requests one at a time and ticks each to
// completion.
func runWorker(ctx context.Context, f *navmesh.PathFinder, n int, radius float64, budget time.Duration, rng *rand.Rand) (benchStats, error) {
	m := f.Graph().Mesh()
	interior := make([]int, 0, m.Len())
	for i := range m.Triangles {
		if m.Triangles[i].Interior {
			interior = append(interior, i)
		}
	}

	var s benchStats
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		start := randomPoint(m.Triangle(interior[rng.Intn(len(interior))]), rng)
		end := randomPoint(m.Triangle(interior[rng.Intn(len(interior))]), rng)

		issued := time.Now()
		if _, err := f.RequestPath(start, end, radius); err != nil {
			s.rejected++
			continue
		}
		for {
			s.ticks++
			out := f.Tick(budget)
			if len(out) == 0 {
				continue
			}
			resp := out[0]
			if resp.Err != nil {
				return s, resp.Err
			}
			s.latencies = append(s.latencies, time.Since(issued))
			s.expansions += resp.Metrics.Expansions
			if resp.Found() {
				s.found++
				s.waypoints += len(resp.Waypoints)
			} else {
				s.notFound++
			}
			break
		}
	}
	return s, nil
}

// randomPoint returns a uniformly distributed point inside t.
func randomPoint(t *mesh.Triangle, rng *rand.Rand) geom.Vec2 {
	u, v := rng.Float64(), rng.Float64()
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	a, b, c := t.Points[0], t.Points[1], t.Points[2]
	return a.Add(b.Sub(a).Scale(u)).Add(c.Sub(a).Scale(v))
}

func (s *benchStats) print(duration time.Duration) {
	completed := s.found + s.notFound
	fmt.Printf("   Found:       %d\n", s.found)
	fmt.Printf("   Not Found:   %d\n", s.notFound)
	fmt.Printf("   Rejected:    %d\n", s.rejected)
	fmt.Printf("   Duration:    %s\n", duration)
	if completed == 0 {
		return
	}

	sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
	p50 := s.latencies[len(s.latencies)/2]
	p99 := s.latencies[len(s.latencies)*99/100]

	fmt.Printf("   Throughput:  %.0f paths/sec\n", float64(completed)/duration.Seconds())
	fmt.Printf("   Ticks/Path:  %.1f\n", float64(s.ticks)/float64(completed))
	fmt.Printf("   Expansions:  %.1f per path\n", float64(s.expansions)/float64(completed))
	fmt.Printf("   Latency p50: %s\n", p50)
	fmt.Printf("   Latency p99: %s\n", p99)
	if s.found > 0 {
		fmt.Printf("   Waypoints:   %.1f per path\n", float64(s.waypoints)/float64(s.found))
	}

	if s.notFound == 0 {
		fmt.Printf("\n✅ Every reachable request resolved\n")
	} else {
		fmt.Printf("\n💡 %d requests had no path (disconnected regions or agent too wide)\n", s.notFound)
	}
}
