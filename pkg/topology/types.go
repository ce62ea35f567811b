package topology

import (
	"sort"
)

// Node is a router or endpoint in the modeled network. Nodes are immutable
// once the topology is constructed.
type Node struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Link is a bidirectional physical connection modeled as two independently
// costed directed edges. Cost is the symmetric fallback; ForwardCost and
// ReverseCost override it per direction when present. Capacity is in Mbps,
// Utilization in percent (nil when unknown).
type Link struct {
	ID          string   `json:"id" yaml:"id"`
	Source      string   `json:"source" yaml:"source"`
	Target      string   `json:"target" yaml:"target"`
	Cost        int      `json:"cost" yaml:"cost"`
	ForwardCost *int     `json:"forward_cost,omitempty" yaml:"forward_cost,omitempty"`
	ReverseCost *int     `json:"reverse_cost,omitempty" yaml:"reverse_cost,omitempty"`
	Capacity    float64  `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Utilization *float64 `json:"utilization,omitempty" yaml:"utilization,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Interface   string   `json:"interface,omitempty" yaml:"interface,omitempty"`
}

// DirectionCost returns the cost of traversing the link from one endpoint
// to the other. The second return is false when the endpoints don't match
// the link in either order.
func (l *Link) DirectionCost(from, to string) (int, bool) {
	switch {
	case l.Source == from && l.Target == to:
		if l.ForwardCost != nil {
			return *l.ForwardCost, true
		}
		return l.Cost, true
	case l.Source == to && l.Target == from:
		if l.ReverseCost != nil {
			return *l.ReverseCost, true
		}
		return l.Cost, true
	}
	return 0, false
}

// Connects reports whether the link joins the two nodes in either order.
func (l *Link) Connects(a, b string) bool {
	return (l.Source == a && l.Target == b) || (l.Source == b && l.Target == a)
}

// Touches reports whether the link has the node as an endpoint.
func (l *Link) Touches(nodeID string) bool {
	return l.Source == nodeID || l.Target == nodeID
}

// Asymmetric reports whether the two direction costs differ.
func (l *Link) Asymmetric() bool {
	fwd := l.Cost
	if l.ForwardCost != nil {
		fwd = *l.ForwardCost
	}
	rev := l.Cost
	if l.ReverseCost != nil {
		rev = *l.ReverseCost
	}
	return fwd != rev
}

// AvailableBandwidth returns the unused capacity of the link in Mbps:
// capacity * (1 - utilization/100). Unknown utilization counts as 0%.
// The second return is false when the link carries no capacity figure.
func (l *Link) AvailableBandwidth() (float64, bool) {
	if l.Capacity <= 0 {
		return 0, false
	}
	util := 0.0
	if l.Utilization != nil {
		util = *l.Utilization
	}
	return l.Capacity * (1 - util/100), true
}

// Topology is an immutable-per-call set of nodes and links. Analyses read
// it but never mutate it; every call derives its own working structures.
type Topology struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Links []Link `json:"links" yaml:"links"`

	nodeByID map[string]*Node
	linkByID map[string]*Link
}

// New builds a Topology and its lookup indexes. It assumes the records have
// already been validated (see Load); it does not re-check invariants.
func New(nodes []Node, links []Link) *Topology {
	t := &Topology{
		Nodes:    nodes,
		Links:    links,
		nodeByID: make(map[string]*Node, len(nodes)),
		linkByID: make(map[string]*Link, len(links)),
	}
	for i := range t.Nodes {
		t.nodeByID[t.Nodes[i].ID] = &t.Nodes[i]
	}
	for i := range t.Links {
		t.linkByID[t.Links[i].ID] = &t.Links[i]
	}
	return t
}

// Node returns the node with the given id, or nil.
func (t *Topology) Node(id string) *Node {
	return t.nodeByID[id]
}

// Link returns the link with the given id, or nil.
func (t *Topology) Link(id string) *Link {
	return t.linkByID[id]
}

// FindLink returns the first link connecting the two nodes in either
// endpoint order, or nil when none exists.
func (t *Topology) FindLink(a, b string) *Link {
	for i := range t.Links {
		if t.Links[i].Connects(a, b) {
			return &t.Links[i]
		}
	}
	return nil
}

// NodeIDs returns all node ids in sorted order, so iteration over pairs is
// deterministic across calls.
func (t *Topology) NodeIDs() []string {
	ids := make([]string, 0, len(t.Nodes))
	for i := range t.Nodes {
		ids = append(ids, t.Nodes[i].ID)
	}
	sort.Strings(ids)
	return ids
}

// Countries returns the sorted set of non-empty countries among nodes.
func (t *Topology) Countries() []string {
	seen := make(map[string]bool)
	for i := range t.Nodes {
		if c := t.Nodes[i].Country; c != "" {
			seen[c] = true
		}
	}
	countries := make([]string, 0, len(seen))
	for c := range seen {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// NodesInCountry returns the ids of nodes belonging to the given country.
func (t *Topology) NodesInCountry(country string) []string {
	ids := make([]string, 0)
	for i := range t.Nodes {
		if t.Nodes[i].Country == country {
			ids = append(ids, t.Nodes[i].ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// LinksTouching returns the links with at least one endpoint in the set.
func (t *Topology) LinksTouching(nodeIDs map[string]bool) []*Link {
	links := make([]*Link, 0)
	for i := range t.Links {
		if nodeIDs[t.Links[i].Source] || nodeIDs[t.Links[i].Target] {
			links = append(links, &t.Links[i])
		}
	}
	return links
}
