package graph

import (
	"errors"
	"strings"
	"testing"
)

const sampleGraph = `
nodes:
  - id: A
  - id: B
    props: {kind: person}
  - id: C
relationships:
  - {start: A, end: B, type: friends}
  - {start: B, end: C, type: friends, weight: 0.5}
`

func TestLoadYAML(t *testing.T) {
	s, err := LoadYAML(strings.NewReader(sampleGraph))
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}

	if s.NodeCount() != 3 || s.RelationshipCount() != 2 {
		t.Fatalf("Got %d nodes / %d rels, want 3 / 2", s.NodeCount(), s.RelationshipCount())
	}

	n, ok := s.Node("B")
	if !ok || n.Props["kind"] != "person" {
		t.Errorf("Node B props not loaded: %+v", n)
	}

	rels, _ := s.Relationships("B", Outgoing, "friends")
	if len(rels) != 1 || rels[0].End != "C" || rels[0].Weight != 0.5 {
		t.Errorf("Relationship B->C not loaded correctly: %v", rels)
	}
}

func TestLoadYAMLDanglingRelationship(t *testing.T) {
	doc := `
nodes:
  - id: A
relationships:
  - {start: A, end: ghost, type: x}
`
	_, err := LoadYAML(strings.NewReader(doc))
	if !errors.Is(err, ErrBrokenReference) {
		t.Errorf("Got %v, want ErrBrokenReference", err)
	}
}

func TestLoadYAMLRejectsMissingID(t *testing.T) {
	doc := `
nodes:
  - props: {a: 1}
`
	if _, err := LoadYAML(strings.NewReader(doc)); err == nil {
		t.Error("LoadYAML should reject nodes without an id")
	}
}
