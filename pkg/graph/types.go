package graph

import "fmt"

// NodeID identifies a node in the store.
type NodeID string

// Node is a stored node with optional property-graph attributes.
type Node struct {
	ID    NodeID         `json:"id"`
	Props map[string]any `json:"props,omitempty"`
}

// Relationship is a directed, typed edge between two nodes.
type Relationship struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Start  NodeID         `json:"start"`
	End    NodeID         `json:"end"`
	Weight float32        `json:"w,omitempty"`
	Props  map[string]any `json:"p,omitempty"`
}

// Other returns the endpoint opposite to n.
// For a self-loop it returns n itself.
func (r Relationship) Other(n NodeID) NodeID {
	if r.Start == n {
		return r.End
	}
	return r.Start
}

// Direction selects which relationships of a node are considered
// during enumeration, relative to that node.
type Direction int

const (
	// Outgoing matches relationships starting at the node.
	Outgoing Direction = iota
	// Incoming matches relationships ending at the node.
	Incoming
	// Both matches relationships in either direction.
	Both
)

func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "out"
	case Incoming:
		return "in"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts "out", "in" or "both" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "out":
		return Outgoing, nil
	case "in":
		return Incoming, nil
	case "both":
		return Both, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want out, in or both)", s)
	}
}
