// Package graph provides the in-memory property-graph store used by the
// traversal framework.
//
// The store keeps the node set in an ordered B-Tree (deterministic
// enumeration) and the adjacency lists in insertion order, so that two
// identical walks over an unchanged graph always enumerate relationships
// in the same order.
package graph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/btree"
)

// ErrBrokenReference indicates an operation against a node that does not
// exist in the store (e.g. a stale identifier held by a caller).
var ErrBrokenReference = errors.New("broken node reference")

// Store is a thread-safe in-memory graph.
//
// Reads (Relationships, Node, Nodes) take a shared lock and may run
// concurrently with each other; a traversal assumes the graph is not
// mutated while it runs.
type Store struct {
	mu sync.RWMutex

	nodes    *btree.BTreeG[Node]
	outgoing map[NodeID][]Relationship
	incoming map[NodeID][]Relationship
	relCount int
}

func nodeLess(a, b Node) bool { return a.ID < b.ID }

// NewStore creates an empty graph store.
func NewStore() *Store {
	return &Store{
		nodes:    btree.NewBTreeG[Node](nodeLess),
		outgoing: make(map[NodeID][]Relationship),
		incoming: make(map[NodeID][]Relationship),
	}
}

// AddNode inserts a node, or replaces its properties if it already exists.
// Existing relationships are untouched on replace.
func (s *Store) AddNode(id NodeID, props map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes.Set(Node{ID: id, Props: props})
}

// Node returns the stored node for id.
func (s *Store) Node(id NodeID) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.Get(Node{ID: id})
}

// HasNode reports whether id exists in the store.
func (s *Store) HasNode(id NodeID) bool {
	_, ok := s.Node(id)
	return ok
}

// Nodes returns all node IDs in ascending order.
func (s *Store) Nodes() []NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]NodeID, 0, s.nodes.Len())
	s.nodes.Scan(func(n Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}

// Link creates a directed relationship from start to end and returns it.
// A fresh relationship ID is minted; both endpoints must already exist.
func (s *Store) Link(start, end NodeID, relType string, weight float32, props map[string]any) (Relationship, error) {
	rel := Relationship{
		ID:     uuid.New().String(),
		Type:   relType,
		Start:  start,
		End:    end,
		Weight: weight,
		Props:  props,
	}
	if err := s.InsertRelationship(rel); err != nil {
		return Relationship{}, err
	}
	return rel, nil
}

// InsertRelationship inserts a fully-built relationship, preserving its ID.
// Used by journal replay, where IDs must survive a restart.
func (s *Store) InsertRelationship(rel Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes.Get(Node{ID: rel.Start}); !ok {
		return fmt.Errorf("link %s -[%s]-> %s: %w", rel.Start, rel.Type, rel.End, ErrBrokenReference)
	}
	if _, ok := s.nodes.Get(Node{ID: rel.End}); !ok {
		return fmt.Errorf("link %s -[%s]-> %s: %w", rel.Start, rel.Type, rel.End, ErrBrokenReference)
	}

	s.outgoing[rel.Start] = append(s.outgoing[rel.Start], rel)
	s.incoming[rel.End] = append(s.incoming[rel.End], rel)
	s.relCount++
	return nil
}

// Unlink removes every relationship of the given type between start and end.
// Removing a relationship that does not exist is not an error.
func (s *Store) Unlink(start, end NodeID, relType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := func(rels []Relationship) ([]Relationship, int) {
		out := rels[:0]
		removed := 0
		for _, r := range rels {
			if r.Start == start && r.End == end && r.Type == relType {
				removed++
				continue
			}
			out = append(out, r)
		}
		return out, removed
	}

	var removed int
	s.outgoing[start], removed = keep(s.outgoing[start])
	s.incoming[end], _ = keep(s.incoming[end])
	s.relCount -= removed
}

// Relationships enumerates the relationships of a node matching the given
// direction and type. An empty relType matches all types. For Both, outgoing
// relationships are enumerated before incoming ones, and each self-loop
// appears only once.
//
// Returns ErrBrokenReference if the node is not in the store.
func (s *Store) Relationships(node NodeID, dir Direction, relType string) ([]Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes.Get(Node{ID: node}); !ok {
		return nil, fmt.Errorf("relationships of %s: %w", node, ErrBrokenReference)
	}

	var result []Relationship
	appendMatching := func(rels []Relationship, skipSelfLoops bool) {
		for _, r := range rels {
			if relType != "" && r.Type != relType {
				continue
			}
			if skipSelfLoops && r.Start == r.End {
				continue
			}
			result = append(result, r)
		}
	}

	switch dir {
	case Outgoing:
		appendMatching(s.outgoing[node], false)
	case Incoming:
		appendMatching(s.incoming[node], false)
	case Both:
		appendMatching(s.outgoing[node], false)
		appendMatching(s.incoming[node], true)
	}
	return result, nil
}

// Degree returns how many relationships of the node match dir and relType.
func (s *Store) Degree(node NodeID, dir Direction, relType string) (int, error) {
	rels, err := s.Relationships(node, dir, relType)
	if err != nil {
		return 0, err
	}
	return len(rels), nil
}

// NodeCount returns the number of nodes in the store.
func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.Len()
}

// RelationshipCount returns the number of relationships in the store.
func (s *Store) RelationshipCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relCount
}
