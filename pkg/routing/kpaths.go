package routing

import (
	"github.com/stratonet/pathscope/pkg/topology"
)

// KPaths returns the shortest path plus up to k-1 alternates. Alternates
// come from removing both directed edges of every hop used by previously
// accepted paths from a working copy of the graph, then re-running the
// search. This is a best-effort diversity heuristic, not Yen's k-shortest
// loopless paths: a shorter alternate sharing some but not all edges with
// an accepted path will be missed. With k=2 it degenerates to the classic
// "prune the primary, search once more" form.
func KPaths(t *topology.Topology, g Graph, source, target string, k int) ([]PathResult, error) {
	if k < 1 {
		k = 1
	}

	results := make([]PathResult, 0, k)
	working := g.Clone()

	for len(results) < k {
		route := ShortestPath(working, source, target)
		if route == nil {
			break
		}

		annotated, err := Annotate(t, route.Path)
		if err != nil {
			return nil, err
		}
		annotated.Cost = route.Cost
		results = append(results, *annotated)

		// Exclude every edge of the accepted path before the next round
		for i := 0; i < len(route.Path)-1; i++ {
			working.RemoveBothDirections(route.Path[i], route.Path[i+1])
		}
	}

	return results, nil
}

// HasAlternate reports whether a link-disjoint alternate to the given route
// exists. Used by the redundancy score, which only needs the yes/no answer
// and not the alternate itself.
func HasAlternate(g Graph, route *Route) bool {
	if route == nil || len(route.Path) < 2 {
		return false
	}
	working := g.Clone()
	for i := 0; i < len(route.Path)-1; i++ {
		working.RemoveBothDirections(route.Path[i], route.Path[i+1])
	}
	return ShortestPath(working, route.Path[0], route.Path[len(route.Path)-1]) != nil
}
