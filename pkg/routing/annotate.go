package routing

import (
	"errors"
	"fmt"

	"github.com/stratonet/pathscope/pkg/topology"
)

// ErrNoLinkBetween indicates a path whose consecutive nodes are not joined
// by any link in the topology.
var ErrNoLinkBetween = errors.New("routing: no link between consecutive path nodes")

// HopDetail describes one hop of a path with both direction costs.
type HopDetail struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	LinkID      string   `json:"linkId"`
	ForwardCost int      `json:"forwardCost"`
	ReverseCost int      `json:"reverseCost"`
	Capacity    float64  `json:"capacity,omitempty"`
	Utilization *float64 `json:"utilization,omitempty"`
	Interface   string   `json:"interface,omitempty"`
}

// Bottleneck identifies the hop with the least available headroom.
type Bottleneck struct {
	LinkID             string  `json:"linkId"`
	Capacity           float64 `json:"capacity"`
	Utilization        float64 `json:"utilization"`
	AvailableBandwidth float64 `json:"availableBandwidth"`
	HopIndex           int     `json:"hopIndex"`
}

// PathResult is a fully annotated path between two nodes.
type PathResult struct {
	Path        []string    `json:"path"`
	Cost        int         `json:"cost"`
	ForwardCost int         `json:"forwardCost"`
	ReverseCost int         `json:"reverseCost"`
	Hops        int         `json:"hops"`
	HopDetails  []HopDetail `json:"hopDetails"`
	MinCapacity float64     `json:"minCapacity,omitempty"`
	Bottleneck  *Bottleneck `json:"bottleneck,omitempty"`
}

// Annotate recomputes per-hop detail for a node sequence. ForwardCost sums
// the traversal-direction costs, ReverseCost the costs of walking the same
// sequence backwards. MinCapacity is the smallest capacity seen (bandwidth
// is bounded by the weakest hop, never summed); it is 0 when no hop carries
// a capacity figure.
func Annotate(t *topology.Topology, path []string) (*PathResult, error) {
	result := &PathResult{
		Path:       path,
		Hops:       len(path) - 1,
		HopDetails: make([]HopDetail, 0, len(path)-1),
	}
	if len(path) < 2 {
		result.Hops = 0
		return result, nil
	}

	minCapacity := 0.0
	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]
		link := t.FindLink(from, to)
		if link == nil {
			return nil, fmt.Errorf("%w: %s-%s", ErrNoLinkBetween, from, to)
		}

		fwd, _ := link.DirectionCost(from, to)
		rev, _ := link.DirectionCost(to, from)
		result.ForwardCost += fwd
		result.ReverseCost += rev

		if link.Capacity > 0 && (minCapacity == 0 || link.Capacity < minCapacity) {
			minCapacity = link.Capacity
		}

		result.HopDetails = append(result.HopDetails, HopDetail{
			From:        from,
			To:          to,
			LinkID:      link.ID,
			ForwardCost: fwd,
			ReverseCost: rev,
			Capacity:    link.Capacity,
			Utilization: link.Utilization,
			Interface:   link.Interface,
		})
	}

	result.Cost = result.ForwardCost
	result.MinCapacity = minCapacity
	result.Bottleneck = FindBottleneck(t, path)
	return result, nil
}

// FindBottleneck returns the hop with the least available headroom
// (capacity * (1 - utilization/100)) among hops that carry both a capacity
// and a utilization figure. Ties keep the first occurrence. Returns nil
// when no hop qualifies.
func FindBottleneck(t *topology.Topology, path []string) *Bottleneck {
	var bottleneck *Bottleneck
	for i := 0; i < len(path)-1; i++ {
		link := t.FindLink(path[i], path[i+1])
		if link == nil || link.Capacity <= 0 || link.Utilization == nil {
			continue
		}
		headroom := link.Capacity * (1 - *link.Utilization/100)
		if bottleneck == nil || headroom < bottleneck.AvailableBandwidth {
			bottleneck = &Bottleneck{
				LinkID:             link.ID,
				Capacity:           link.Capacity,
				Utilization:        *link.Utilization,
				AvailableBandwidth: headroom,
				HopIndex:           i,
			}
		}
	}
	return bottleneck
}
