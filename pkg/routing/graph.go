package routing

import (
	"fmt"

	"github.com/stratonet/pathscope/pkg/topology"
	"github.com/stratonet/pathscope/pkg/validation"
)

// Graph is a derived, ephemeral directed adjacency structure:
// node -> neighbor -> traversal cost. It is rebuilt for every analysis call
// and never shared between calls.
type Graph map[string]map[string]int

// MergePolicy decides what happens when two links produce the same ordered
// endpoint pair during graph construction.
type MergePolicy int

const (
	// MergeLastWins silently overwrites the earlier edge. This matches the
	// historical behavior and is the default.
	MergeLastWins MergePolicy = iota
	// MergeMinCost keeps the cheaper of the two directed edges.
	MergeMinCost
	// MergeReject fails construction with ErrDuplicateDirectedEdge.
	MergeReject
)

// String returns the policy name as used in configuration.
func (p MergePolicy) String() string {
	switch p {
	case MergeLastWins:
		return "lastwins"
	case MergeMinCost:
		return "mincost"
	case MergeReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseMergePolicy converts a configuration string to a MergePolicy.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch s {
	case "lastwins", "":
		return MergeLastWins, nil
	case "mincost":
		return MergeMinCost, nil
	case "reject":
		return MergeReject, nil
	default:
		return MergeLastWins, fmt.Errorf("unknown merge policy %q", s)
	}
}

// Build derives the directed adjacency structure from a topology. Every
// node gets an entry (possibly empty); every link contributes one edge per
// direction using its per-direction cost.
func Build(t *topology.Topology, policy MergePolicy) (Graph, error) {
	return build(t, policy, "", 0)
}

// BuildWithOverride builds the graph with one link's symmetric cost replaced
// by newCost. Per-direction overrides on that link still win, mirroring how
// the base cost behaves everywhere else; callers simulating asymmetric or
// full-down changes pre-transform the link instead.
func BuildWithOverride(t *topology.Topology, policy MergePolicy, linkID string, newCost int) (Graph, error) {
	return build(t, policy, linkID, newCost)
}

func build(t *topology.Topology, policy MergePolicy, overrideLink string, overrideCost int) (Graph, error) {
	g := make(Graph, len(t.Nodes))
	for i := range t.Nodes {
		g[t.Nodes[i].ID] = make(map[string]int)
	}

	for i := range t.Links {
		l := &t.Links[i]

		fwd := l.Cost
		rev := l.Cost
		if l.ID == overrideLink {
			fwd = overrideCost
			rev = overrideCost
		}
		if l.ForwardCost != nil {
			fwd = *l.ForwardCost
		}
		if l.ReverseCost != nil {
			rev = *l.ReverseCost
		}

		if err := setEdge(g, l.Source, l.Target, fwd, policy); err != nil {
			return nil, fmt.Errorf("link %q: %w", l.ID, err)
		}
		if err := setEdge(g, l.Target, l.Source, rev, policy); err != nil {
			return nil, fmt.Errorf("link %q: %w", l.ID, err)
		}
	}
	return g, nil
}

func setEdge(g Graph, from, to string, cost int, policy MergePolicy) error {
	existing, dup := g[from][to]
	if dup {
		switch policy {
		case MergeReject:
			return fmt.Errorf("%w: %s->%s", validation.ErrDuplicateDirectedEdge, from, to)
		case MergeMinCost:
			if existing <= cost {
				return nil
			}
		}
	}
	g[from][to] = cost
	return nil
}

// Clone returns an independent deep copy of the graph. Used by the path
// enumerator and ranker, which prune edges from working copies.
func (g Graph) Clone() Graph {
	out := make(Graph, len(g))
	for node, neighbors := range g {
		m := make(map[string]int, len(neighbors))
		for nb, cost := range neighbors {
			m[nb] = cost
		}
		out[node] = m
	}
	return out
}

// RemoveBothDirections deletes the directed edges between the two nodes in
// both directions, if present.
func (g Graph) RemoveBothDirections(a, b string) {
	delete(g[a], b)
	delete(g[b], a)
}
