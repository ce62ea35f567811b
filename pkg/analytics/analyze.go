// Package analytics aggregates all-pairs shortest-path results into
// country-level paths, critical-link rankings, and a redundancy score.
package analytics

import (
	"sort"

	"github.com/google/uuid"

	"github.com/stratonet/pathscope/pkg/parallel"
	"github.com/stratonet/pathscope/pkg/routing"
	"github.com/stratonet/pathscope/pkg/topology"
)

// DefaultCriticalLinkLimit is how many top links the ranking keeps.
const DefaultCriticalLinkLimit = 5

// CountryPath summarizes connectivity between two countries.
type CountryPath struct {
	CountryA    string              `json:"countryA"`
	CountryB    string              `json:"countryB"`
	BestPath    *routing.PathResult `json:"bestPath"`
	AverageCost float64             `json:"averageCost"`
	PairCount   int                 `json:"pairCount"`
}

// CriticalLink is a link ranked by how many shortest paths traverse it.
type CriticalLink struct {
	LinkID string `json:"linkId"`
	Count  int    `json:"count"`
}

// NetworkStats carries network-wide aggregates over all node pairs.
type NetworkStats struct {
	TotalPairs      int            `json:"totalPairs"`
	ReachablePairs  int            `json:"reachablePairs"`
	AvgHops         float64        `json:"avgHops"`
	MinHops         int            `json:"minHops"`
	MaxHops         int            `json:"maxHops"`
	CriticalLinks   []CriticalLink `json:"criticalLinks"`
	RedundancyScore float64        `json:"redundancyScore"` // percent of pairs with >=2 viable paths
}

// CountryConnectivity aggregates per-country figures.
type CountryConnectivity struct {
	Country        string  `json:"country"`
	NodeCount      int     `json:"nodeCount"`
	LinkCount      int     `json:"linkCount"`
	AvgUtilization float64 `json:"avgUtilization"`
}

// DeepAnalysis is the full analytics result.
type DeepAnalysis struct {
	ReportID            string                `json:"reportId"`
	CountryPaths        []CountryPath         `json:"countryPaths"`
	NetworkStats        NetworkStats          `json:"networkStats"`
	CountryConnectivity []CountryConnectivity `json:"countryConnectivity"`
}

// Options tunes an analysis run.
type Options struct {
	Workers           int
	MergePolicy       routing.MergePolicy
	CriticalLinkLimit int // 0 means DefaultCriticalLinkLimit
}

// Analyze computes the whole-topology aggregates. Each node pair's shortest
// path is computed exactly once (fanned out over the worker pool) and reused
// by every aggregate; the link-disjoint alternate check for the redundancy
// score runs alongside it on the same worker.
func Analyze(t *topology.Topology, opts Options) (*DeepAnalysis, error) {
	limit := opts.CriticalLinkLimit
	if limit <= 0 {
		limit = DefaultCriticalLinkLimit
	}

	g, err := routing.Build(t, opts.MergePolicy)
	if err != nil {
		return nil, err
	}

	ids := t.NodeIDs()
	total := parallel.PairCount(len(ids))
	routes := make([]*routing.Route, total)
	hasAlternate := make([]bool, total)

	parallel.ForEachPair(ids, opts.Workers, func(idx int, a, b string) {
		route := routing.ShortestPath(g, a, b)
		routes[idx] = route
		if route != nil {
			hasAlternate[idx] = routing.HasAlternate(g, route)
		}
	})

	analysis := &DeepAnalysis{
		ReportID:     uuid.NewString(),
		NetworkStats: NetworkStats{TotalPairs: total},
	}
	analysis.aggregateStats(t, routes, hasAlternate, limit)
	if err := analysis.aggregateCountryPaths(t, ids, routes); err != nil {
		return nil, err
	}
	analysis.aggregateConnectivity(t)

	return analysis, nil
}

func (d *DeepAnalysis) aggregateStats(t *topology.Topology, routes []*routing.Route, hasAlternate []bool, limit int) {
	stats := &d.NetworkStats

	linkCounts := make(map[string]int)
	firstSeen := make(map[string]int)
	hopSum := 0
	redundant := 0

	for i, route := range routes {
		if route == nil {
			continue
		}
		stats.ReachablePairs++
		if hasAlternate[i] {
			redundant++
		}

		hops := len(route.Path) - 1
		hopSum += hops
		if stats.ReachablePairs == 1 || hops < stats.MinHops {
			stats.MinHops = hops
		}
		if hops > stats.MaxHops {
			stats.MaxHops = hops
		}

		for j := 0; j < len(route.Path)-1; j++ {
			link := t.FindLink(route.Path[j], route.Path[j+1])
			if link == nil {
				continue
			}
			if _, seen := linkCounts[link.ID]; !seen {
				firstSeen[link.ID] = len(firstSeen)
			}
			linkCounts[link.ID]++
		}
	}

	if stats.ReachablePairs > 0 {
		stats.AvgHops = float64(hopSum) / float64(stats.ReachablePairs)
	}
	if stats.TotalPairs > 0 {
		stats.RedundancyScore = 100 * float64(redundant) / float64(stats.TotalPairs)
	}

	ranked := make([]CriticalLink, 0, len(linkCounts))
	for id, count := range linkCounts {
		ranked = append(ranked, CriticalLink{LinkID: id, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].LinkID] < firstSeen[ranked[j].LinkID]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	stats.CriticalLinks = ranked
}

// countryPairAgg accumulates cross-country pair results.
type countryPairAgg struct {
	best    *routing.Route
	costSum int
	count   int
}

func (d *DeepAnalysis) aggregateCountryPaths(t *topology.Topology, ids []string, routes []*routing.Route) error {
	aggs := make(map[[2]string]*countryPairAgg)

	idx := 0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			route := routes[idx]
			idx++
			if route == nil {
				continue
			}

			ca := t.Node(ids[i]).Country
			cb := t.Node(ids[j]).Country
			if ca == "" || cb == "" || ca == cb {
				continue
			}
			key := [2]string{ca, cb}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}

			agg, ok := aggs[key]
			if !ok {
				agg = &countryPairAgg{}
				aggs[key] = agg
			}
			agg.costSum += route.Cost
			agg.count++
			if agg.best == nil || route.Cost < agg.best.Cost {
				agg.best = route
			}
		}
	}

	d.CountryPaths = make([]CountryPath, 0, len(aggs))
	for key, agg := range aggs {
		best, err := routing.Annotate(t, agg.best.Path)
		if err != nil {
			return err
		}
		best.Cost = agg.best.Cost
		d.CountryPaths = append(d.CountryPaths, CountryPath{
			CountryA:    key[0],
			CountryB:    key[1],
			BestPath:    best,
			AverageCost: float64(agg.costSum) / float64(agg.count),
			PairCount:   agg.count,
		})
	}
	sort.Slice(d.CountryPaths, func(i, j int) bool {
		if d.CountryPaths[i].CountryA != d.CountryPaths[j].CountryA {
			return d.CountryPaths[i].CountryA < d.CountryPaths[j].CountryA
		}
		return d.CountryPaths[i].CountryB < d.CountryPaths[j].CountryB
	})
	return nil
}

func (d *DeepAnalysis) aggregateConnectivity(t *topology.Topology) {
	countries := t.Countries()
	d.CountryConnectivity = make([]CountryConnectivity, 0, len(countries))

	for _, country := range countries {
		nodeIDs := t.NodesInCountry(country)
		memberSet := make(map[string]bool, len(nodeIDs))
		for _, id := range nodeIDs {
			memberSet[id] = true
		}
		links := t.LinksTouching(memberSet)

		utilSum := 0.0
		utilCount := 0
		for _, l := range links {
			if l.Utilization != nil {
				utilSum += *l.Utilization
				utilCount++
			}
		}
		avgUtil := 0.0
		if utilCount > 0 {
			avgUtil = utilSum / float64(utilCount)
		}

		d.CountryConnectivity = append(d.CountryConnectivity, CountryConnectivity{
			Country:        country,
			NodeCount:      len(nodeIDs),
			LinkCount:      len(links),
			AvgUtilization: avgUtil,
		})
	}
}
