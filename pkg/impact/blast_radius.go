// Package impact compares all-pairs shortest paths before and after a
// hypothetical single-link cost change.
package impact

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/stratonet/pathscope/pkg/parallel"
	"github.com/stratonet/pathscope/pkg/routing"
	"github.com/stratonet/pathscope/pkg/topology"
)

// ErrLinkNotFound indicates a blast-radius request for an unknown link id.
var ErrLinkNotFound = errors.New("impact: link not found")

// PairImpact records how one node pair's best path changed. Costs are -1
// when the pair is unreachable on that side of the change.
type PairImpact struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	OldCost      int    `json:"oldCost"`
	NewCost      int    `json:"newCost"`
	RouteChanged bool   `json:"routeChanged"`
}

// Result is the blast radius of a single-link cost change. Pairs absent
// from AffectedPaths are implicitly unaffected.
type Result struct {
	ReportID      string       `json:"reportId"`
	LinkID        string       `json:"linkId"`
	OldCost       int          `json:"oldCost"`
	NewCost       int          `json:"newCost"`
	AffectedNodes []string     `json:"affectedNodes"`
	AffectedPaths []PairImpact `json:"affectedPaths"`
}

// Options tunes a blast-radius run.
type Options struct {
	// Workers bounds the pair fan-out; 0 means one worker per CPU.
	Workers int
	// MergePolicy is applied to both graph builds.
	MergePolicy routing.MergePolicy
}

// pairOutcome is the per-pair working record before aggregation.
type pairOutcome struct {
	impact  *PairImpact
	newPath []string
}

// BlastRadius builds the original graph and a second independent graph with
// the given link's cost replaced, then compares the shortest path of every
// unordered node pair across the two. A pair is affected when its route or
// its cost differs (a reachability change counts as both). Affected nodes
// are every node appearing on the new path of an affected pair. The shared
// topology is never mutated, so concurrent runs do not interfere.
func BlastRadius(t *topology.Topology, linkID string, newCost int, opts Options) (*Result, error) {
	link := t.Link(linkID)
	if link == nil {
		return nil, fmt.Errorf("%w: %q", ErrLinkNotFound, linkID)
	}

	before, err := routing.Build(t, opts.MergePolicy)
	if err != nil {
		return nil, err
	}
	after, err := routing.BuildWithOverride(t, opts.MergePolicy, linkID, newCost)
	if err != nil {
		return nil, err
	}

	ids := t.NodeIDs()
	outcomes := make([]pairOutcome, parallel.PairCount(len(ids)))

	parallel.ForEachPair(ids, opts.Workers, func(idx int, a, b string) {
		oldRoute := routing.ShortestPath(before, a, b)
		newRoute := routing.ShortestPath(after, a, b)
		outcomes[idx] = comparePair(a, b, oldRoute, newRoute)
	})

	result := &Result{
		ReportID:      uuid.NewString(),
		LinkID:        linkID,
		OldCost:       link.Cost,
		NewCost:       newCost,
		AffectedNodes: make([]string, 0),
		AffectedPaths: make([]PairImpact, 0),
	}

	nodeSet := make(map[string]bool)
	for i := range outcomes {
		if outcomes[i].impact == nil {
			continue
		}
		result.AffectedPaths = append(result.AffectedPaths, *outcomes[i].impact)
		for _, node := range outcomes[i].newPath {
			nodeSet[node] = true
		}
	}
	for node := range nodeSet {
		result.AffectedNodes = append(result.AffectedNodes, node)
	}
	sort.Strings(result.AffectedNodes)

	return result, nil
}

// comparePair returns a nil impact when the pair is unaffected.
func comparePair(a, b string, oldRoute, newRoute *routing.Route) pairOutcome {
	if oldRoute == nil && newRoute == nil {
		return pairOutcome{}
	}

	oldCost, newCost := -1, -1
	var oldPath, newPath []string
	if oldRoute != nil {
		oldCost, oldPath = oldRoute.Cost, oldRoute.Path
	}
	if newRoute != nil {
		newCost, newPath = newRoute.Cost, newRoute.Path
	}

	routeChanged := !equalPath(oldPath, newPath)
	if oldCost == newCost && !routeChanged {
		return pairOutcome{}
	}

	return pairOutcome{
		impact: &PairImpact{
			Source:       a,
			Target:       b,
			OldCost:      oldCost,
			NewCost:      newCost,
			RouteChanged: routeChanged,
		},
		newPath: newPath,
	}
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
