package routing

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// graphFromMatrix builds a directed graph over nodes n0..n(n-1) from a flat
// cost matrix; a zero entry means no edge.
func graphFromMatrix(matrix []int, n int) Graph {
	g := make(Graph, n)
	for i := 0; i < n; i++ {
		g[fmt.Sprintf("n%d", i)] = make(map[string]int)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if cost := matrix[i*n+j]; cost > 0 {
				g[fmt.Sprintf("n%d", i)][fmt.Sprintf("n%d", j)] = cost
			}
		}
	}
	return g
}

// bruteForceMinCost enumerates every simple path via DFS and returns the
// minimum total cost, or -1 when no path exists. Only viable on tiny graphs.
func bruteForceMinCost(g Graph, source, target string) int {
	best := -1
	visited := map[string]bool{source: true}

	var dfs func(node string, cost int)
	dfs = func(node string, cost int) {
		if node == target {
			if best == -1 || cost < best {
				best = cost
			}
			return
		}
		for nb, w := range g[node] {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			dfs(nb, cost+w)
			visited[nb] = false
		}
	}
	dfs(source, 0)
	return best
}

// TestShortestPath_MatchesBruteForce verifies the heap Dijkstra against
// exhaustive path enumeration on random graphs of up to 6 nodes
func TestShortestPath_MatchesBruteForce(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	for _, n := range []int{3, 4, 6} {
		n := n // per-iteration copy: required under go <1.22 so each property closure sees its own n
		properties.Property(fmt.Sprintf("dijkstra equals brute force on %d nodes", n), prop.ForAll(
			func(matrix []int) bool {
				g := graphFromMatrix(matrix, n)
				source, target := "n0", fmt.Sprintf("n%d", n-1)

				want := bruteForceMinCost(g, source, target)
				got := ShortestPath(g, source, target)

				if want == -1 {
					return got == nil
				}
				if got == nil {
					return false
				}
				// The route itself must also be consistent with its cost
				sum := 0
				for i := 0; i < len(got.Path)-1; i++ {
					sum += g[got.Path[i]][got.Path[i+1]]
				}
				return got.Cost == want && sum == want
			},
			// Zero entries make the matrix sparse, exercising unreachable pairs
			gen.SliceOfN(n*n, gen.IntRange(0, 8)),
		))
	}

	properties.TestingRun(t)
}

// TestShortestPath_SelfPairProperty verifies path-to-self on random graphs
func TestShortestPath_SelfPairProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("path to self is always {[a], 0}", prop.ForAll(
		func(matrix []int) bool {
			g := graphFromMatrix(matrix, 4)
			route := ShortestPath(g, "n2", "n2")
			return route != nil && route.Cost == 0 && len(route.Path) == 1 && route.Path[0] == "n2"
		},
		gen.SliceOfN(16, gen.IntRange(0, 8)),
	))

	properties.TestingRun(t)
}
