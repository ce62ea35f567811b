// Package engine wraps the pure analysis packages with structured logging,
// prometheus metrics, and validated configuration. The pure packages stay
// directly usable; the engine is the operational entry point.
package engine

import (
	"github.com/stratonet/pathscope/pkg/analytics"
	"github.com/stratonet/pathscope/pkg/bandwidth"
	"github.com/stratonet/pathscope/pkg/impact"
	"github.com/stratonet/pathscope/pkg/logging"
	"github.com/stratonet/pathscope/pkg/metrics"
	"github.com/stratonet/pathscope/pkg/routing"
	"github.com/stratonet/pathscope/pkg/topology"
	"github.com/stratonet/pathscope/pkg/validation"
)

// Config tunes an Engine.
type Config struct {
	// Workers bounds the all-pairs fan-out; 0 means one worker per CPU.
	Workers int
	// MergePolicy is applied to every graph build.
	MergePolicy routing.MergePolicy
	// CriticalLinkLimit caps the critical-link ranking; 0 means the default.
	CriticalLinkLimit int
}

// Validate checks the configuration before any analysis runs.
func (c Config) Validate() error {
	return validation.NewConfigValidator("engine").
		NonNegative("workers", c.Workers).
		NonNegative("criticalLinkLimit", c.CriticalLinkLimit).
		OneOf("mergePolicy", c.MergePolicy.String(), []string{"lastwins", "mincost", "reject"}).
		Err()
}

// Engine runs analyses over one topology snapshot.
type Engine struct {
	topo    *topology.Topology
	config  Config
	logger  logging.Logger
	metrics *metrics.Registry
}

// New builds an engine for the given topology. A nil logger falls back to
// the process default; a nil registry falls back to the shared one.
func New(t *topology.Topology, config Config, logger logging.Logger, reg *metrics.Registry) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	if reg == nil {
		reg = metrics.Default()
	}

	reg.SetTopologySize(len(t.Nodes), len(t.Links))

	return &Engine{
		topo:    t,
		config:  config,
		logger:  logger.With(logging.Component("engine")),
		metrics: reg,
	}, nil
}

// Topology returns the snapshot the engine was built over.
func (e *Engine) Topology() *topology.Topology {
	return e.topo
}

// ShortestPath computes and annotates the best route between two nodes.
// A nil result means the pair is unreachable.
func (e *Engine) ShortestPath(source, target string) (*routing.PathResult, error) {
	timer := logging.StartTimer(e.logger, "shortest path",
		logging.Operation("shortest_path"),
		logging.String("source", source),
		logging.String("target", target))

	g, err := routing.Build(e.topo, e.config.MergePolicy)
	if err != nil {
		timer.EndError(err)
		e.metrics.RecordAnalysis("shortest_path", "error", timer.Elapsed())
		return nil, err
	}

	route := routing.ShortestPath(g, source, target)
	if route == nil {
		timer.End()
		e.metrics.RecordAnalysis("shortest_path", "no_path", timer.Elapsed())
		return nil, nil
	}

	result, err := routing.Annotate(e.topo, route.Path)
	if err != nil {
		timer.EndError(err)
		e.metrics.RecordAnalysis("shortest_path", "error", timer.Elapsed())
		return nil, err
	}
	result.Cost = route.Cost

	timer.End()
	e.metrics.RecordAnalysis("shortest_path", "ok", timer.Elapsed())
	e.metrics.RecordPathsFound("shortest_path", 1)
	return result, nil
}

// KPaths returns up to k link-disjoint routes between two nodes, best first.
func (e *Engine) KPaths(source, target string, k int) ([]routing.PathResult, error) {
	timer := logging.StartTimer(e.logger, "k alternate paths",
		logging.Operation("kpaths"),
		logging.String("source", source),
		logging.String("target", target),
		logging.Count(k))

	g, err := routing.Build(e.topo, e.config.MergePolicy)
	if err != nil {
		timer.EndError(err)
		e.metrics.RecordAnalysis("kpaths", "error", timer.Elapsed())
		return nil, err
	}

	paths, err := routing.KPaths(e.topo, g, source, target, k)
	if err != nil {
		timer.EndError(err)
		e.metrics.RecordAnalysis("kpaths", "error", timer.Elapsed())
		return nil, err
	}

	timer.End()
	status := "ok"
	if len(paths) == 0 {
		status = "no_path"
	}
	e.metrics.RecordAnalysis("kpaths", status, timer.Elapsed())
	e.metrics.RecordPathsFound("kpaths", len(paths))
	return paths, nil
}

// BlastRadius reports every node pair whose best path changes if the given
// link's cost becomes newCost.
func (e *Engine) BlastRadius(linkID string, newCost int) (*impact.Result, error) {
	timer := logging.StartTimer(e.logger, "blast radius",
		logging.Operation("blast_radius"),
		logging.LinkID(linkID),
		logging.Int("new_cost", newCost))

	result, err := impact.BlastRadius(e.topo, linkID, newCost, impact.Options{
		Workers:     e.config.Workers,
		MergePolicy: e.config.MergePolicy,
	})
	if err != nil {
		timer.EndError(err)
		e.metrics.RecordAnalysis("blast_radius", "error", timer.Elapsed())
		return nil, err
	}

	timer.End()
	e.metrics.RecordAnalysis("blast_radius", "ok", timer.Elapsed())
	e.metrics.ObserveAffectedPairs(len(result.AffectedPaths))
	e.logger.Info("blast radius computed",
		logging.LinkID(linkID),
		logging.Pairs(len(result.AffectedPaths)),
		logging.String("report_id", result.ReportID))
	return result, nil
}

// Analyze computes the whole-topology aggregates.
func (e *Engine) Analyze() (*analytics.DeepAnalysis, error) {
	timer := logging.StartTimer(e.logger, "deep analysis",
		logging.Operation("analyze"))

	result, err := analytics.Analyze(e.topo, analytics.Options{
		Workers:           e.config.Workers,
		MergePolicy:       e.config.MergePolicy,
		CriticalLinkLimit: e.config.CriticalLinkLimit,
	})
	if err != nil {
		timer.EndError(err)
		e.metrics.RecordAnalysis("analyze", "error", timer.Elapsed())
		return nil, err
	}

	timer.End()
	e.metrics.RecordAnalysis("analyze", "ok", timer.Elapsed())
	e.logger.Info("analysis complete",
		logging.Pairs(result.NetworkStats.TotalPairs),
		logging.Int("reachable_pairs", result.NetworkStats.ReachablePairs),
		logging.String("report_id", result.ReportID))
	return result, nil
}

// RankPaths returns up to k paths meeting the bandwidth requirement, ranked
// by the blended cost/bandwidth score.
func (e *Engine) RankPaths(source, target string, requiredBandwidth, costWeight float64, k int) ([]bandwidth.RankedPath, error) {
	timer := logging.StartTimer(e.logger, "bandwidth-aware ranking",
		logging.Operation("rank"),
		logging.String("source", source),
		logging.String("target", target),
		logging.Float64("required_bandwidth", requiredBandwidth))

	paths, err := bandwidth.RankPaths(e.topo, source, target, requiredBandwidth, costWeight, k)
	if err != nil {
		timer.EndError(err)
		e.metrics.RecordAnalysis("rank", "error", timer.Elapsed())
		return nil, err
	}

	timer.End()
	status := "ok"
	if len(paths) == 0 {
		status = "no_path"
	}
	e.metrics.RecordAnalysis("rank", status, timer.Elapsed())
	e.metrics.RecordPathsFound("rank", len(paths))
	return paths, nil
}
