package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/stratonet/pathscope/pkg/engine"
	"github.com/stratonet/pathscope/pkg/logging"
	"github.com/stratonet/pathscope/pkg/metrics"
	"github.com/stratonet/pathscope/pkg/routing"
	"github.com/stratonet/pathscope/pkg/topology"
)

func main() {
	topoPath := flag.String("topology", "", "Path to the topology file (YAML or JSON)")
	op := flag.String("op", "path", "Operation: path, kpaths, impact, analyze, rank")
	from := flag.String("from", "", "Source node id")
	to := flag.String("to", "", "Target node id")
	k := flag.Int("k", 3, "Number of paths for kpaths/rank")
	link := flag.String("link", "", "Link id for impact analysis")
	cost := flag.Int("cost", 0, "New link cost for impact analysis")
	bw := flag.Float64("bandwidth", 0, "Required bandwidth in Mbps for rank")
	costWeight := flag.Float64("cost-weight", 0.5, "Cost weight (0..1) for rank scoring")
	merge := flag.String("merge", "lastwins", "Duplicate-edge merge policy: lastwins, mincost, reject")
	workers := flag.Int("workers", 0, "Worker count for all-pairs analyses (0 = NumCPU)")
	flag.Parse()

	if *topoPath == "" {
		log.Fatalf("-topology is required")
	}

	policy, err := routing.ParseMergePolicy(*merge)
	if err != nil {
		log.Fatalf("Invalid merge policy: %v", err)
	}

	topo, err := topology.LoadFile(*topoPath)
	if err != nil {
		log.Fatalf("Failed to load topology: %v", err)
	}

	eng, err := engine.New(topo, engine.Config{
		Workers:     *workers,
		MergePolicy: policy,
	}, logging.DefaultLogger(), metrics.Default())
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	var result any
	switch *op {
	case "path":
		requireNodes(*from, *to)
		path, err := eng.ShortestPath(*from, *to)
		if err != nil {
			log.Fatalf("Shortest path failed: %v", err)
		}
		if path == nil {
			log.Fatalf("No path from %s to %s", *from, *to)
		}
		result = path

	case "kpaths":
		requireNodes(*from, *to)
		paths, err := eng.KPaths(*from, *to, *k)
		if err != nil {
			log.Fatalf("Path enumeration failed: %v", err)
		}
		result = paths

	case "impact":
		if *link == "" {
			log.Fatalf("-link is required for impact analysis")
		}
		report, err := eng.BlastRadius(*link, *cost)
		if err != nil {
			log.Fatalf("Impact analysis failed: %v", err)
		}
		result = report

	case "analyze":
		report, err := eng.Analyze()
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
		result = report

	case "rank":
		requireNodes(*from, *to)
		paths, err := eng.RankPaths(*from, *to, *bw, *costWeight, *k)
		if err != nil {
			log.Fatalf("Ranking failed: %v", err)
		}
		result = paths

	default:
		log.Fatalf("Unknown operation %q (want path, kpaths, impact, analyze, rank)", *op)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}

func requireNodes(from, to string) {
	if from == "" || to == "" {
		fmt.Fprintln(os.Stderr, "Both -from and -to are required")
		os.Exit(1)
	}
}
