package routing

import (
	"errors"
	"testing"

	"github.com/stratonet/pathscope/pkg/topology"
)

func floatPtr(f float64) *float64 { return &f }

// TestAnnotate_AsymmetricBothDirections tests forward/reverse accumulation:
// forward_cost=5, reverse_cost=9 between X and Y
func TestAnnotate_AsymmetricBothDirections(t *testing.T) {
	topo := topology.New(
		[]topology.Node{{ID: "X"}, {ID: "Y"}},
		[]topology.Link{{ID: "xy", Source: "X", Target: "Y", Cost: 7, ForwardCost: intPtr(5), ReverseCost: intPtr(9)}},
	)

	res, err := Annotate(topo, []string{"X", "Y"})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if res.ForwardCost != 5 || res.ReverseCost != 9 {
		t.Errorf("Path [X Y]: expected forward 5 / reverse 9, got %d/%d", res.ForwardCost, res.ReverseCost)
	}

	res, err = Annotate(topo, []string{"Y", "X"})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if res.ForwardCost != 9 || res.ReverseCost != 5 {
		t.Errorf("Path [Y X]: expected forward 9 / reverse 5, got %d/%d", res.ForwardCost, res.ReverseCost)
	}
}

// TestAnnotate_MinCapacityIsWeakestHop tests that capacity is min, not sum
func TestAnnotate_MinCapacityIsWeakestHop(t *testing.T) {
	topo := topology.New(
		[]topology.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		[]topology.Link{
			{ID: "ab", Source: "a", Target: "b", Cost: 1, Capacity: 10000},
			{ID: "bc", Source: "b", Target: "c", Cost: 1, Capacity: 1000},
		},
	)

	res, err := Annotate(topo, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if res.MinCapacity != 1000 {
		t.Errorf("Expected min capacity 1000, got %.0f", res.MinCapacity)
	}
	if res.Hops != 2 || len(res.HopDetails) != 2 {
		t.Errorf("Expected 2 hops, got %d with %d details", res.Hops, len(res.HopDetails))
	}
}

// TestAnnotate_HopDetails tests per-hop fields including interface labels
func TestAnnotate_HopDetails(t *testing.T) {
	topo := topology.New(
		[]topology.Node{{ID: "a"}, {ID: "b"}},
		[]topology.Link{{ID: "ab", Source: "a", Target: "b", Cost: 3, Capacity: 100, Utilization: floatPtr(25), Interface: "xe-1/0/0"}},
	)

	res, err := Annotate(topo, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	hop := res.HopDetails[0]
	if hop.LinkID != "ab" || hop.From != "a" || hop.To != "b" {
		t.Errorf("Unexpected hop identity: %+v", hop)
	}
	if hop.ForwardCost != 3 || hop.ReverseCost != 3 {
		t.Errorf("Expected 3/3 direction costs, got %d/%d", hop.ForwardCost, hop.ReverseCost)
	}
	if hop.Interface != "xe-1/0/0" {
		t.Errorf("Expected interface label, got %q", hop.Interface)
	}
}

// TestAnnotate_MissingLink tests the error for disconnected sequences
func TestAnnotate_MissingLink(t *testing.T) {
	topo := topology.New([]topology.Node{{ID: "a"}, {ID: "b"}}, nil)
	_, err := Annotate(topo, []string{"a", "b"})
	if !errors.Is(err, ErrNoLinkBetween) {
		t.Errorf("Expected ErrNoLinkBetween, got: %v", err)
	}
}

// TestAnnotate_SingleNode tests the degenerate path
func TestAnnotate_SingleNode(t *testing.T) {
	topo := topology.New([]topology.Node{{ID: "a"}}, nil)
	res, err := Annotate(topo, []string{"a"})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if res.Hops != 0 || res.ForwardCost != 0 {
		t.Errorf("Expected zero-hop result, got %+v", res)
	}
}

func bottleneckTopology() *topology.Topology {
	// Two hops with identical headroom (400), one with more
	return topology.New(
		[]topology.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		[]topology.Link{
			{ID: "ab", Source: "a", Target: "b", Cost: 1, Capacity: 1000, Utilization: floatPtr(60)},
			{ID: "bc", Source: "b", Target: "c", Cost: 1, Capacity: 800, Utilization: floatPtr(50)},
			{ID: "cd", Source: "c", Target: "d", Cost: 1, Capacity: 2000, Utilization: floatPtr(10)},
		},
	)
}

// TestFindBottleneck_LeastHeadroom tests headroom-based selection
func TestFindBottleneck_LeastHeadroom(t *testing.T) {
	topo := bottleneckTopology()
	b := FindBottleneck(topo, []string{"a", "b", "c", "d"})
	if b == nil {
		t.Fatal("Expected a bottleneck")
	}
	// ab: 1000*0.4=400, bc: 800*0.5=400, cd: 2000*0.9=1800
	if b.AvailableBandwidth != 400 {
		t.Errorf("Expected 400 Mbps headroom, got %.0f", b.AvailableBandwidth)
	}
}

// TestFindBottleneck_TieKeepsFirstHop pins the first-occurrence tie-break
func TestFindBottleneck_TieKeepsFirstHop(t *testing.T) {
	topo := bottleneckTopology()
	b := FindBottleneck(topo, []string{"a", "b", "c", "d"})
	if b == nil {
		t.Fatal("Expected a bottleneck")
	}
	if b.LinkID != "ab" || b.HopIndex != 0 {
		t.Errorf("Expected first tied hop ab at index 0, got %s at %d", b.LinkID, b.HopIndex)
	}
}

// TestFindBottleneck_RequiresBothFigures tests that hops missing capacity
// or utilization are skipped
func TestFindBottleneck_RequiresBothFigures(t *testing.T) {
	topo := topology.New(
		[]topology.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		[]topology.Link{
			{ID: "ab", Source: "a", Target: "b", Cost: 1, Capacity: 100}, // no utilization
			{ID: "bc", Source: "b", Target: "c", Cost: 1},                // no capacity
		},
	)
	if b := FindBottleneck(topo, []string{"a", "b", "c"}); b != nil {
		t.Errorf("Expected nil bottleneck, got %+v", b)
	}
}
