package topology

import (
	"testing"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

// testTopology builds a small topology used across tests:
//
//	a --(l1, fwd 5 / rev 9)-- b --(l2, cost 10)-- c
func testTopology() *Topology {
	return New(
		[]Node{
			{ID: "a", Country: "DE"},
			{ID: "b", Country: "DE"},
			{ID: "c", Country: "FR"},
		},
		[]Link{
			{ID: "l1", Source: "a", Target: "b", Cost: 7, ForwardCost: intPtr(5), ReverseCost: intPtr(9), Capacity: 1000, Utilization: floatPtr(50)},
			{ID: "l2", Source: "b", Target: "c", Cost: 10},
		},
	)
}

// TestDirectionCost_AsymmetricLink tests per-direction cost resolution
func TestDirectionCost_AsymmetricLink(t *testing.T) {
	topo := testTopology()
	l := topo.Link("l1")

	fwd, ok := l.DirectionCost("a", "b")
	if !ok || fwd != 5 {
		t.Errorf("Expected forward cost 5, got %d (ok=%v)", fwd, ok)
	}
	rev, ok := l.DirectionCost("b", "a")
	if !ok || rev != 9 {
		t.Errorf("Expected reverse cost 9, got %d (ok=%v)", rev, ok)
	}
	if !l.Asymmetric() {
		t.Error("Expected link to be asymmetric")
	}
}

// TestDirectionCost_SymmetricFallback tests that Cost is used without overrides
func TestDirectionCost_SymmetricFallback(t *testing.T) {
	topo := testTopology()
	l := topo.Link("l2")

	fwd, _ := l.DirectionCost("b", "c")
	rev, _ := l.DirectionCost("c", "b")
	if fwd != 10 || rev != 10 {
		t.Errorf("Expected symmetric cost 10/10, got %d/%d", fwd, rev)
	}
	if l.Asymmetric() {
		t.Error("Expected link to be symmetric")
	}
}

// TestDirectionCost_NoMatch tests endpoints that don't belong to the link
func TestDirectionCost_NoMatch(t *testing.T) {
	topo := testTopology()
	if _, ok := topo.Link("l1").DirectionCost("a", "c"); ok {
		t.Error("Expected no match for a-c on link l1")
	}
}

// TestFindLink_EitherOrder tests direction-agnostic lookup
func TestFindLink_EitherOrder(t *testing.T) {
	topo := testTopology()

	if l := topo.FindLink("a", "b"); l == nil || l.ID != "l1" {
		t.Errorf("Expected l1 for (a,b), got %v", l)
	}
	if l := topo.FindLink("b", "a"); l == nil || l.ID != "l1" {
		t.Errorf("Expected l1 for (b,a), got %v", l)
	}
	if l := topo.FindLink("a", "c"); l != nil {
		t.Errorf("Expected nil for (a,c), got %v", l)
	}
}

// TestAvailableBandwidth tests headroom computation
func TestAvailableBandwidth(t *testing.T) {
	topo := testTopology()

	bw, ok := topo.Link("l1").AvailableBandwidth()
	if !ok || bw != 500 {
		t.Errorf("Expected 500 Mbps headroom, got %.1f (ok=%v)", bw, ok)
	}

	// l2 has no capacity figure
	if _, ok := topo.Link("l2").AvailableBandwidth(); ok {
		t.Error("Expected no bandwidth figure for l2")
	}
}

// TestNodeIDs_Sorted tests deterministic node ordering
func TestNodeIDs_Sorted(t *testing.T) {
	topo := New(
		[]Node{{ID: "z"}, {ID: "a"}, {ID: "m"}},
		nil,
	)
	ids := topo.NodeIDs()
	if ids[0] != "a" || ids[1] != "m" || ids[2] != "z" {
		t.Errorf("Expected sorted ids, got %v", ids)
	}
}

// TestCountries tests country set extraction
func TestCountries(t *testing.T) {
	topo := testTopology()
	countries := topo.Countries()
	if len(countries) != 2 || countries[0] != "DE" || countries[1] != "FR" {
		t.Errorf("Expected [DE FR], got %v", countries)
	}

	de := topo.NodesInCountry("DE")
	if len(de) != 2 || de[0] != "a" || de[1] != "b" {
		t.Errorf("Expected [a b] in DE, got %v", de)
	}
}

// TestLinksTouching tests link membership by endpoint set
func TestLinksTouching(t *testing.T) {
	topo := testTopology()
	links := topo.LinksTouching(map[string]bool{"c": true})
	if len(links) != 1 || links[0].ID != "l2" {
		t.Errorf("Expected [l2], got %v", links)
	}
}
