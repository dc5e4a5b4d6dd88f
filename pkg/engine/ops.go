package engine

import (
	"encoding/json"
	"fmt"

	"github.com/jtescher/graphwalk/pkg/graph"
	"github.com/jtescher/graphwalk/pkg/persistence"
)

// Journal payloads. Link frames carry the full relationship, minted ID
// included, so replay reconstructs identical relationship identities.

type nodeRecord struct {
	ID    string         `json:"id"`
	Props map[string]any `json:"props,omitempty"`
}

type unlinkRecord struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Type  string `json:"type"`
}

// AddNode inserts or replaces a node and journals the mutation.
func (e *Engine) AddNode(id graph.NodeID, props map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	payload, err := json.Marshal(nodeRecord{ID: string(id), Props: props})
	if err != nil {
		return err
	}
	if err := e.journal.Append(persistence.OpAddNode, payload); err != nil {
		return fmt.Errorf("failed to journal node %s: %w", id, err)
	}
	e.Graph.AddNode(id, props)
	e.updateGauges()
	return nil
}

// Link creates a relationship between two existing nodes and journals it.
func (e *Engine) Link(start, end graph.NodeID, relType string, weight float32, props map[string]any) (graph.Relationship, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rel, err := e.Graph.Link(start, end, relType, weight, props)
	if err != nil {
		return graph.Relationship{}, err
	}
	payload, err := json.Marshal(rel)
	if err != nil {
		return graph.Relationship{}, err
	}
	if err := e.journal.Append(persistence.OpLink, payload); err != nil {
		return graph.Relationship{}, fmt.Errorf("failed to journal link %s -[%s]-> %s: %w", start, relType, end, err)
	}
	e.updateGauges()
	return rel, nil
}

// Unlink removes all relationships of relType between start and end and
// journals the removal.
func (e *Engine) Unlink(start, end graph.NodeID, relType string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	payload, err := json.Marshal(unlinkRecord{Start: string(start), End: string(end), Type: relType})
	if err != nil {
		return err
	}
	if err := e.journal.Append(persistence.OpUnlink, payload); err != nil {
		return fmt.Errorf("failed to journal unlink %s -[%s]-> %s: %w", start, relType, end, err)
	}
	e.Graph.Unlink(start, end, relType)
	e.updateGauges()
	return nil
}
