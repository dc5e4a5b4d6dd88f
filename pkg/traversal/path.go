package traversal

import (
	"strings"

	"github.com/jtescher/graphwalk/pkg/graph"
)

// Path is the walk from a traversal's start node to a given node: an
// alternating sequence of nodes and relationships.
//
// A Path is immutable. Extending it allocates a new value that shares the
// parent chain, so sibling branches of one traversal share their common
// prefix instead of copying it.
type Path struct {
	parent *Path
	end    graph.NodeID
	rel    *graph.Relationship // nil on the start path
	length int
}

// StartPath returns the zero-length path holding only the start node.
func StartPath(start graph.NodeID) *Path {
	return &Path{end: start}
}

// Extend returns a new path with rel appended. The new end node is the
// endpoint of rel opposite to the current end node.
func (p *Path) Extend(rel graph.Relationship) *Path {
	return &Path{
		parent: p,
		end:    rel.Other(p.end),
		rel:    &rel,
		length: p.length + 1,
	}
}

// EndNode returns the terminal node of the path.
func (p *Path) EndNode() graph.NodeID { return p.end }

// Length returns the number of relationships in the path.
// The start path has length 0.
func (p *Path) Length() int { return p.length }

// LastRelationship returns the relationship that produced the terminal
// node, or false for the start path.
func (p *Path) LastRelationship() (graph.Relationship, bool) {
	if p.rel == nil {
		return graph.Relationship{}, false
	}
	return *p.rel, true
}

// Nodes returns the node sequence from the start node to the end node.
func (p *Path) Nodes() []graph.NodeID {
	nodes := make([]graph.NodeID, p.length+1)
	for cur := p; cur != nil; cur = cur.parent {
		nodes[cur.length] = cur.end
	}
	return nodes
}

// Relationships returns the relationship sequence in traversal order.
func (p *Path) Relationships() []graph.Relationship {
	rels := make([]graph.Relationship, p.length)
	for cur := p; cur.rel != nil; cur = cur.parent {
		rels[cur.length-1] = *cur.rel
	}
	return rels
}

// containsNode reports whether id occurs anywhere in the path,
// terminal node included.
func (p *Path) containsNode(id graph.NodeID) bool {
	for cur := p; cur != nil; cur = cur.parent {
		if cur.end == id {
			return true
		}
	}
	return false
}

// containsRelationship reports whether the relationship id was already
// traversed by this path.
func (p *Path) containsRelationship(id string) bool {
	for cur := p; cur.rel != nil; cur = cur.parent {
		if cur.rel.ID == id {
			return true
		}
	}
	return false
}

// String renders the path as A -[friends]-> B, for logs and tests.
func (p *Path) String() string {
	if p.parent == nil {
		return string(p.end)
	}
	var b strings.Builder
	b.WriteString(p.parent.String())
	b.WriteString(" -[")
	b.WriteString(p.rel.Type)
	b.WriteString("]-> ")
	b.WriteString(string(p.end))
	return b.String()
}
