package topology

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stratonet/pathscope/pkg/validation"
)

// topologyFile is the on-disk record layout. YAML is a superset of JSON, so
// one decoder covers both formats.
type topologyFile struct {
	Nodes []validation.NodeRecord `yaml:"nodes" json:"nodes"`
	Links []validation.LinkRecord `yaml:"links" json:"links"`
}

// LoadFile reads and validates a topology from a YAML or JSON file.
func LoadFile(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open topology file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads and validates a topology from a reader. Every record is
// validated individually, then link endpoint references are checked against
// the node set. The engine assumes these preconditions; this is the boundary
// that enforces them.
func Load(r io.Reader) (*Topology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}

	var file topologyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode topology: %w", err)
	}

	return FromRecords(file.Nodes, file.Links)
}

// FromRecords validates raw records and assembles a Topology.
func FromRecords(nodeRecs []validation.NodeRecord, linkRecs []validation.LinkRecord) (*Topology, error) {
	nodes := make([]Node, 0, len(nodeRecs))
	nodeIDs := make(map[string]bool, len(nodeRecs))
	for i := range nodeRecs {
		rec := &nodeRecs[i]
		if err := validation.ValidateNodeRecord(rec); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if nodeIDs[rec.ID] {
			return nil, fmt.Errorf("%w: %q", validation.ErrDuplicateNodeID, rec.ID)
		}
		nodeIDs[rec.ID] = true
		nodes = append(nodes, Node{
			ID:      rec.ID,
			Name:    rec.Name,
			Country: rec.Country,
			Type:    rec.Type,
		})
	}

	links := make([]Link, 0, len(linkRecs))
	linkIDs := make(map[string]bool, len(linkRecs))
	for i := range linkRecs {
		rec := &linkRecs[i]
		if err := validation.ValidateLinkRecord(rec); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		if linkIDs[rec.ID] {
			return nil, fmt.Errorf("%w: %q", validation.ErrDuplicateLinkID, rec.ID)
		}
		linkIDs[rec.ID] = true
		if !nodeIDs[rec.Source] {
			return nil, fmt.Errorf("%w: link %q source %q", validation.ErrUnknownNodeReference, rec.ID, rec.Source)
		}
		if !nodeIDs[rec.Target] {
			return nil, fmt.Errorf("%w: link %q target %q", validation.ErrUnknownNodeReference, rec.ID, rec.Target)
		}
		links = append(links, Link{
			ID:          rec.ID,
			Source:      rec.Source,
			Target:      rec.Target,
			Cost:        rec.Cost,
			ForwardCost: rec.ForwardCost,
			ReverseCost: rec.ReverseCost,
			Capacity:    rec.Capacity,
			Utilization: rec.Utilization,
			Type:        rec.Type,
			Interface:   rec.Interface,
		})
	}

	return New(nodes, links), nil
}
