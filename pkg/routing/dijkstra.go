package routing

import (
	"container/heap"
	"sort"
)

// Route is a bare shortest-path answer: the node sequence and the sum of
// forward costs along it.
type Route struct {
	Path []string `json:"path"`
	Cost int      `json:"cost"`
}

// pqItem is a priority queue entry. The queue uses lazy decrease-key:
// a node may appear multiple times and stale entries are skipped on pop.
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
	// Equal-cost ties resolve by node id so two independently built copies
	// of the same graph always produce the same route.
	return h[i].node < h[j].node
}
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(pqItem)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ShortestPath runs single-pair Dijkstra over the graph with non-negative
// costs. It stops as soon as the target is popped and returns nil when the
// target is unreachable or either endpoint is absent. A node's path to
// itself is {[node], 0}.
func ShortestPath(g Graph, source, target string) *Route {
	if _, ok := g[source]; !ok {
		return nil
	}
	if _, ok := g[target]; !ok {
		return nil
	}
	if source == target {
		return &Route{Path: []string{source}, Cost: 0}
	}

	dist := map[string]int{source: 0}
	prev := make(map[string]string)
	done := make(map[string]bool)

	h := &minHeap{{node: source, dist: 0}}
	heap.Init(h)

	for h.Len() > 0 {
		cur := heap.Pop(h).(pqItem)
		if done[cur.node] {
			continue // stale entry
		}
		done[cur.node] = true

		if cur.node == target {
			return &Route{Path: reconstruct(prev, source, target), Cost: cur.dist}
		}

		// Neighbors relax in sorted order: together with the heap tie-break
		// this makes the chosen route independent of map iteration order.
		neighbors := make([]string, 0, len(g[cur.node]))
		for nb := range g[cur.node] {
			neighbors = append(neighbors, nb)
		}
		sort.Strings(neighbors)

		for _, nb := range neighbors {
			if done[nb] {
				continue
			}
			nd := cur.dist + g[cur.node][nb]
			if d, seen := dist[nb]; !seen || nd < d {
				dist[nb] = nd
				prev[nb] = cur.node
				heap.Push(h, pqItem{node: nb, dist: nd})
			}
		}
	}

	return nil // target unreachable
}

// reconstruct walks the predecessor map back from target to source.
func reconstruct(prev map[string]string, source, target string) []string {
	path := []string{target}
	for node := target; node != source; {
		node = prev[node]
		path = append(path, node)
	}
	// Reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
