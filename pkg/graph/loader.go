package graph

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML representation of a graph.
//
// Example:
//
//	nodes:
//	  - id: A
//	  - id: B
//	    props: {kind: person}
//	relationships:
//	  - {start: A, end: B, type: friends}
type Document struct {
	Nodes []struct {
		ID    string         `yaml:"id"`
		Props map[string]any `yaml:"props"`
	} `yaml:"nodes"`
	Relationships []struct {
		Start  string         `yaml:"start"`
		End    string         `yaml:"end"`
		Type   string         `yaml:"type"`
		Weight float32        `yaml:"weight"`
		Props  map[string]any `yaml:"props"`
	} `yaml:"relationships"`
}

// LoadYAML builds a Store from a YAML graph document.
// Relationships referencing undeclared nodes fail with ErrBrokenReference.
func LoadYAML(r io.Reader) (*Store, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode graph document: %w", err)
	}

	s := NewStore()
	for _, n := range doc.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("graph document contains a node without an id")
		}
		s.AddNode(NodeID(n.ID), n.Props)
	}
	for _, rel := range doc.Relationships {
		if _, err := s.Link(NodeID(rel.Start), NodeID(rel.End), rel.Type, rel.Weight, rel.Props); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadYAMLFile is a convenience wrapper around LoadYAML.
func LoadYAMLFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph document: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}
