package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dd0wney/cluso-navmesh/pkg/logging"
	"github.com/dd0wney/cluso-navmesh/pkg/mesh"
	"github.com/dd0wney/cluso-navmesh/pkg/navgraph"
)

func main() {
	in := flag.String("in", "", "YAML mesh document to read")
	out := flag.String("out", "", "Snapshot file to write (default: input with .navmesh extension)")
	verify := flag.Bool("verify", true, "Read the snapshot back and rebuild the graph")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: navmesh-pack -in mesh.yaml [-out mesh.navmesh]")
		os.Exit(2)
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, filepath.Ext(*in)) + ".navmesh"
	}

	logger := logging.DefaultLogger().With(logging.Component("navmesh-pack"))

	fmt.Printf("📦 Packing %s\n", *in)
	timer := logging.StartTimer(logger, "pack", logging.Path(*in))
	m, err := mesh.LoadYAML(*in)
	if err != nil {
		timer.EndError(err)
		log.Fatalf("Failed to load mesh: %v", err)
	}
	if err := mesh.SaveSnapshot(*out, m); err != nil {
		timer.EndError(err)
		log.Fatalf("Failed to write snapshot: %v", err)
	}
	timer.End(logging.Count(m.Len()))

	info, err := os.Stat(*out)
	if err != nil {
		log.Fatalf("Failed to stat snapshot: %v", err)
	}
	fmt.Printf("   Triangles: %d\n", m.Len())
	fmt.Printf("   Written:   %s (%d bytes) in %s\n", *out, info.Size(), timer.Elapsed())

	if !*verify {
		return
	}

	back, err := mesh.ReadSnapshot(*out)
	if err != nil {
		log.Fatalf("Failed to read snapshot back: %v", err)
	}
	g, err := navgraph.Build(back, navgraph.WithLogger(logger))
	if err != nil {
		log.Fatalf("Snapshot does not build: %v", err)
	}
	stats := g.Stats()
	fmt.Printf("✅ Verified: %d nodes (%d portals, %d islands), %d connections\n",
		stats.Nodes, stats.Portals, stats.Islands, stats.Connections)
}
