package traversal

import (
	"testing"

	"github.com/jtescher/graphwalk/pkg/graph"
)

func rel(id string, start, end graph.NodeID) graph.Relationship {
	return graph.Relationship{ID: id, Type: "t", Start: start, End: end}
}

func TestPathExtendSharesParent(t *testing.T) {
	root := StartPath("A")
	ab := root.Extend(rel("e1", "A", "B"))

	// Two children of the same parent share the prefix, not copy it
	abc := ab.Extend(rel("e2", "B", "C"))
	abd := ab.Extend(rel("e3", "B", "D"))

	if abc.parent != ab || abd.parent != ab {
		t.Fatal("children should share the parent path")
	}
	if root.Length() != 0 || ab.Length() != 1 || abc.Length() != 2 {
		t.Errorf("lengths wrong: %d %d %d", root.Length(), ab.Length(), abc.Length())
	}

	nodes := abc.Nodes()
	if len(nodes) != 3 || nodes[0] != "A" || nodes[1] != "B" || nodes[2] != "C" {
		t.Errorf("Nodes() = %v", nodes)
	}

	rels := abc.Relationships()
	if len(rels) != 2 || rels[0].ID != "e1" || rels[1].ID != "e2" {
		t.Errorf("Relationships() = %v", rels)
	}
}

func TestPathDirectionAgnosticEnd(t *testing.T) {
	// Following an incoming relationship still lands on the far endpoint
	root := StartPath("B")
	p := root.Extend(rel("e1", "A", "B")) // A -> B, traversed from B

	if p.EndNode() != "A" {
		t.Errorf("EndNode = %s, want A", p.EndNode())
	}
}

func TestPathContains(t *testing.T) {
	p := StartPath("A").Extend(rel("e1", "A", "B")).Extend(rel("e2", "B", "C"))

	if !p.containsNode("A") || !p.containsNode("C") || p.containsNode("Z") {
		t.Error("containsNode wrong")
	}
	if !p.containsRelationship("e1") || p.containsRelationship("e9") {
		t.Error("containsRelationship wrong")
	}
}

func TestPathString(t *testing.T) {
	p := StartPath("A").Extend(graph.Relationship{ID: "e1", Type: "friends", Start: "A", End: "B"})
	if got := p.String(); got != "A -[friends]-> B" {
		t.Errorf("String() = %q", got)
	}
	if got := StartPath("A").String(); got != "A" {
		t.Errorf("start path String() = %q", got)
	}
}
