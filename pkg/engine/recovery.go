package engine

import (
	"encoding/json"
	"log/slog"

	"github.com/jtescher/graphwalk/pkg/graph"
	"github.com/jtescher/graphwalk/pkg/persistence"
)

// replayJournal rebuilds the in-memory store from the journal file.
// Malformed frames are skipped with a warning rather than failing the
// whole open, mirroring how much of the file is still recoverable.
func (e *Engine) replayJournal() error {
	return persistence.ReplayFile(e.journalPath, func(op persistence.Op, payload []byte) error {
		switch op {
		case persistence.OpAddNode:
			var rec nodeRecord
			if err := json.Unmarshal(payload, &rec); err != nil {
				slog.Warn("Skipping malformed node record in journal", "error", err)
				return nil
			}
			e.Graph.AddNode(graph.NodeID(rec.ID), rec.Props)

		case persistence.OpLink:
			var rel graph.Relationship
			if err := json.Unmarshal(payload, &rel); err != nil {
				slog.Warn("Skipping malformed link record in journal", "error", err)
				return nil
			}
			if err := e.Graph.InsertRelationship(rel); err != nil {
				// A link whose endpoints never made it into the journal.
				slog.Warn("Skipping dangling link record in journal", "error", err)
			}

		case persistence.OpUnlink:
			var rec unlinkRecord
			if err := json.Unmarshal(payload, &rec); err != nil {
				slog.Warn("Skipping malformed unlink record in journal", "error", err)
				return nil
			}
			e.Graph.Unlink(graph.NodeID(rec.Start), graph.NodeID(rec.End), rec.Type)

		default:
			slog.Warn("Skipping unknown journal opcode", "op", op)
		}
		return nil
	})
}
