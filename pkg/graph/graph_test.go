package graph

import (
	"errors"
	"testing"
)

func TestStoreLinkAndEnumerate(t *testing.T) {
	// 1. Setup: A -[friends]-> B, A -[friends]-> C, B -[knows]-> A
	s := NewStore()
	s.AddNode("A", nil)
	s.AddNode("B", map[string]any{"kind": "person"})
	s.AddNode("C", nil)

	ab, err := s.Link("A", "B", "friends", 1.0, nil)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if _, err := s.Link("A", "C", "friends", 1.0, nil); err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if _, err := s.Link("B", "A", "knows", 1.0, nil); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	if s.NodeCount() != 3 || s.RelationshipCount() != 3 {
		t.Fatalf("Got %d nodes / %d rels, want 3 / 3", s.NodeCount(), s.RelationshipCount())
	}
	if ab.ID == "" {
		t.Error("Link should mint a relationship ID")
	}

	// 2. Outgoing enumeration preserves insertion order
	rels, err := s.Relationships("A", Outgoing, "friends")
	if err != nil {
		t.Fatalf("Relationships failed: %v", err)
	}
	if len(rels) != 2 || rels[0].End != "B" || rels[1].End != "C" {
		t.Errorf("Outgoing order wrong: %v", rels)
	}

	// 3. Incoming sees the reverse side
	rels, _ = s.Relationships("A", Incoming, "knows")
	if len(rels) != 1 || rels[0].Start != "B" {
		t.Errorf("Incoming lookup wrong: %v", rels)
	}

	// 4. Both = outgoing then incoming; empty type matches everything
	rels, _ = s.Relationships("A", Both, "")
	if len(rels) != 3 {
		t.Errorf("Both should see all 3 relationships, got %v", rels)
	}
	if rels[0].End != "B" || rels[2].Start != "B" {
		t.Errorf("Both should enumerate outgoing before incoming: %v", rels)
	}
}

func TestStoreSelfLoopEnumeratedOnce(t *testing.T) {
	s := NewStore()
	s.AddNode("A", nil)
	if _, err := s.Link("A", "A", "self", 1.0, nil); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	rels, err := s.Relationships("A", Both, "")
	if err != nil {
		t.Fatalf("Relationships failed: %v", err)
	}
	if len(rels) != 1 {
		t.Errorf("Self-loop should appear once under Both, got %d", len(rels))
	}
}

func TestStoreBrokenReference(t *testing.T) {
	s := NewStore()
	s.AddNode("A", nil)

	// Linking against a missing node fails
	if _, err := s.Link("A", "ghost", "x", 1.0, nil); !errors.Is(err, ErrBrokenReference) {
		t.Errorf("Link to unknown node: got %v, want ErrBrokenReference", err)
	}

	// Enumerating a missing node fails the same way
	if _, err := s.Relationships("ghost", Outgoing, ""); !errors.Is(err, ErrBrokenReference) {
		t.Errorf("Relationships of unknown node: got %v, want ErrBrokenReference", err)
	}
}

func TestStoreUnlink(t *testing.T) {
	s := NewStore()
	s.AddNode("A", nil)
	s.AddNode("B", nil)
	s.Link("A", "B", "friends", 1.0, nil)
	s.Link("A", "B", "knows", 1.0, nil)

	s.Unlink("A", "B", "friends")

	rels, _ := s.Relationships("A", Outgoing, "")
	if len(rels) != 1 || rels[0].Type != "knows" {
		t.Errorf("Unlink should only remove matching type, got %v", rels)
	}
	if s.RelationshipCount() != 1 {
		t.Errorf("RelationshipCount = %d, want 1", s.RelationshipCount())
	}

	// Unlinking something that is not there is a no-op
	s.Unlink("A", "B", "friends")
	if s.RelationshipCount() != 1 {
		t.Error("Repeated Unlink should not change the count")
	}
}

func TestStoreNodesSorted(t *testing.T) {
	s := NewStore()
	s.AddNode("C", nil)
	s.AddNode("A", nil)
	s.AddNode("B", nil)

	ids := s.Nodes()
	if len(ids) != 3 || ids[0] != "A" || ids[1] != "B" || ids[2] != "C" {
		t.Errorf("Nodes should come back in ascending order, got %v", ids)
	}
}

func TestStoreStats(t *testing.T) {
	s := NewStore()
	s.AddNode("A", nil)
	s.AddNode("B", nil)
	s.AddNode("C", nil)
	s.Link("A", "B", "x", 1.0, nil)
	s.Link("A", "C", "x", 1.0, nil)

	st := s.Stats()
	if st.Nodes != 3 || st.Relationships != 2 {
		t.Fatalf("Stats counts wrong: %+v", st)
	}
	if st.MaxDegree != 2 {
		t.Errorf("MaxDegree = %d, want 2", st.MaxDegree)
	}
	// Degrees are 2, 0, 0
	if got, want := st.MeanDegree, 2.0/3.0; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("MeanDegree = %v, want %v", got, want)
	}
}

func TestDirectionParse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Direction
	}{
		{"out", Outgoing},
		{"in", Incoming},
		{"both", Both},
	} {
		got, err := ParseDirection(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseDirection(%q) = %v, %v", tc.in, got, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection should reject unknown directions")
	}
}
