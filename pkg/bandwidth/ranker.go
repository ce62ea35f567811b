// Package bandwidth ranks paths by a weighted blend of routing cost and
// available capacity, for capacity planning.
package bandwidth

import (
	"container/heap"
	"math"
	"sort"

	"github.com/stratonet/pathscope/pkg/topology"
	"github.com/stratonet/pathscope/pkg/validation"
)

// RankedPath is a candidate path scored by cost and bandwidth headroom.
// Lower score is better.
type RankedPath struct {
	Path               []string `json:"path"`
	Cost               int      `json:"cost"`
	Hops               int      `json:"hops"`
	AvailableBandwidth float64  `json:"availableBandwidth"`
	BottleneckLink     string   `json:"bottleneckLink,omitempty"`
	Score              float64  `json:"score"`
}

// capEdge is a directed edge annotated with its bandwidth headroom.
type capEdge struct {
	cost      int
	available float64
	linkID    string
}

// capGraph is the ranker's own derived adjacency structure.
type capGraph map[string]map[string]capEdge

// normBounds holds the per-call normalization constants. They are computed
// from the topology inside each RankPaths call and passed by value into the
// scoring function, never cached between calls.
type normBounds struct {
	maxCost     float64 // sum of every link's worst direction cost: an upper bound on any simple path
	maxCapacity float64 // largest single link capacity
}

// RankPaths returns up to k paths from source to target, scored by
// score = costWeight*normalizedCost + (1-costWeight)*(1-normalizedBandwidth).
// Edges whose available bandwidth falls below requiredBandwidth are excluded
// outright (hard constraint). Each round after the first excludes every link
// used by previously accepted paths, so the set is diverse but, as with the
// path enumerator, not a guaranteed-optimal k-path set. The result is sorted
// ascending by score regardless of discovery order.
func RankPaths(t *topology.Topology, source, target string, requiredBandwidth, costWeight float64, k int) ([]RankedPath, error) {
	if err := validation.NewConfigValidator("RankPaths").
		Required("Source", source).
		Required("Target", target).
		NonNegativeFloat("RequiredBandwidth", requiredBandwidth).
		RangeFloat("CostWeight", costWeight, 0, 1).
		Positive("K", k).
		Err(); err != nil {
		return nil, err
	}

	g := buildCapacityGraph(t, requiredBandwidth)
	bounds := computeBounds(t)

	excluded := make(map[string]bool)
	ranked := make([]RankedPath, 0, k)

	for len(ranked) < k {
		candidate := constrainedShortestPath(g, source, target, excluded)
		if candidate == nil {
			break
		}
		candidate.Score = scorePath(candidate.Cost, candidate.AvailableBandwidth, bounds, costWeight)
		ranked = append(ranked, *candidate)

		for i := 0; i < len(candidate.Path)-1; i++ {
			excluded[g[candidate.Path[i]][candidate.Path[i+1]].linkID] = true
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	return ranked, nil
}

// buildCapacityGraph derives a directed graph carrying cost and headroom per
// edge, excluding edges that cannot satisfy the bandwidth requirement.
func buildCapacityGraph(t *topology.Topology, requiredBandwidth float64) capGraph {
	g := make(capGraph, len(t.Nodes))
	for i := range t.Nodes {
		g[t.Nodes[i].ID] = make(map[string]capEdge)
	}

	for i := range t.Links {
		l := &t.Links[i]
		available, _ := l.AvailableBandwidth()
		if available < requiredBandwidth {
			continue
		}

		fwd, _ := l.DirectionCost(l.Source, l.Target)
		rev, _ := l.DirectionCost(l.Target, l.Source)
		g[l.Source][l.Target] = capEdge{cost: fwd, available: available, linkID: l.ID}
		g[l.Target][l.Source] = capEdge{cost: rev, available: available, linkID: l.ID}
	}
	return g
}

func computeBounds(t *topology.Topology) normBounds {
	var b normBounds
	for i := range t.Links {
		l := &t.Links[i]
		fwd, _ := l.DirectionCost(l.Source, l.Target)
		rev, _ := l.DirectionCost(l.Target, l.Source)
		worst := fwd
		if rev > worst {
			worst = rev
		}
		b.maxCost += float64(worst)
		if l.Capacity > b.maxCapacity {
			b.maxCapacity = l.Capacity
		}
	}
	return b
}

// scorePath blends normalized cost and normalized bandwidth deficit. A zero
// bound would divide to NaN/Inf, so each term degrades to a neutral 0.
func scorePath(cost int, available float64, b normBounds, costWeight float64) float64 {
	normCost := 0.0
	if b.maxCost > 0 {
		normCost = float64(cost) / b.maxCost
	}
	bandwidthDeficit := 0.0
	if b.maxCapacity > 0 {
		bandwidthDeficit = 1 - available/b.maxCapacity
	}
	return costWeight*normCost + (1-costWeight)*bandwidthDeficit
}

type pqItem struct {
	node string
	dist int
}

type minHeap []pqItem

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].node < h[j].node
}
func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)   { *h = append(*h, x.(pqItem)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// constrainedShortestPath is a Dijkstra variant that, alongside the shortest
// cost, tracks the minimum available bandwidth seen along the best-known
// path to each node, so the final bottleneck reflects the chosen route.
func constrainedShortestPath(g capGraph, source, target string, excluded map[string]bool) *RankedPath {
	if _, ok := g[source]; !ok {
		return nil
	}
	if _, ok := g[target]; !ok {
		return nil
	}
	if source == target {
		return &RankedPath{Path: []string{source}, Cost: 0, Hops: 0}
	}

	dist := map[string]int{source: 0}
	avail := map[string]float64{source: math.Inf(1)}
	prev := make(map[string]string)
	done := make(map[string]bool)

	h := &minHeap{{node: source, dist: 0}}
	heap.Init(h)

	for h.Len() > 0 {
		cur := heap.Pop(h).(pqItem)
		if done[cur.node] {
			continue
		}
		done[cur.node] = true

		if cur.node == target {
			return assembleRanked(g, prev, avail, source, target, cur.dist)
		}

		neighbors := make([]string, 0, len(g[cur.node]))
		for nb := range g[cur.node] {
			neighbors = append(neighbors, nb)
		}
		sort.Strings(neighbors)

		for _, nb := range neighbors {
			if done[nb] {
				continue
			}
			edge := g[cur.node][nb]
			if excluded[edge.linkID] {
				continue
			}
			nd := cur.dist + edge.cost
			if d, seen := dist[nb]; !seen || nd < d {
				dist[nb] = nd
				avail[nb] = math.Min(avail[cur.node], edge.available)
				prev[nb] = cur.node
				heap.Push(h, pqItem{node: nb, dist: nd})
			}
		}
	}
	return nil
}

func assembleRanked(g capGraph, prev map[string]string, avail map[string]float64, source, target string, cost int) *RankedPath {
	path := []string{target}
	for node := target; node != source; {
		node = prev[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	available := avail[target]
	if math.IsInf(available, 1) {
		available = 0
	}

	// The bottleneck is the first hop matching the path's minimum headroom
	bottleneck := ""
	for i := 0; i < len(path)-1; i++ {
		edge := g[path[i]][path[i+1]]
		if edge.available == avail[target] {
			bottleneck = edge.linkID
			break
		}
	}

	return &RankedPath{
		Path:               path,
		Cost:               cost,
		Hops:               len(path) - 1,
		AvailableBandwidth: available,
		BottleneckLink:     bottleneck,
	}
}
