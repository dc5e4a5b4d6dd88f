// Package engine provides the embedded, journal-backed entry point for
// graphwalk.
//
// It pairs the in-memory graph store with an append-only journal so a
// graph survives restarts, and binds traversal descriptions to the store.
//
// Basic usage:
//
//	eng, err := engine.Open(engine.DefaultOptions("./data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jtescher/graphwalk/pkg/graph"
	"github.com/jtescher/graphwalk/pkg/metrics"
	"github.com/jtescher/graphwalk/pkg/persistence"
	"github.com/jtescher/graphwalk/pkg/traversal"
)

// Options configures the engine's persistence behavior.
type Options struct {
	// DataDir is the directory holding the journal file.
	// It is created automatically if it does not exist.
	DataDir string

	// JournalFilename is the journal file name (default: "graphwalk.journal").
	JournalFilename string

	// FlushInterval defines how often buffered journal frames are pushed
	// to the OS in the background. Set to 0 to flush only on Close.
	FlushInterval time.Duration
}

// DefaultOptions returns a standard configuration suitable for most use cases.
func DefaultOptions(dataDir string) Options {
	return Options{
		DataDir:         dataDir,
		JournalFilename: "graphwalk.journal",
		FlushInterval:   time.Second,
	}
}

// Engine is a durable graph: an in-memory store whose mutations are
// appended to a journal and replayed on Open.
//
// Use Open() to initialize an Engine and Close() to shut it down.
type Engine struct {
	// Graph is the underlying store. It may be read directly (and passed
	// to traversal.Description.Traverse), but mutations should go through
	// Engine methods so they are journaled.
	Graph *graph.Store

	opts        Options
	journal     *persistence.JournalWriter
	journalPath string

	mu sync.Mutex // serializes mutations so store and journal agree on order

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Open loads the journal (if any) into a fresh store and starts the
// background flusher. It blocks until the graph is fully reconstructed.
func Open(opts Options) (*Engine, error) {
	if opts.JournalFilename == "" {
		opts.JournalFilename = "graphwalk.journal"
	}
	if err := os.MkdirAll(opts.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	e := &Engine{
		Graph:       graph.NewStore(),
		opts:        opts,
		journalPath: filepath.Join(opts.DataDir, opts.JournalFilename),
		closed:      make(chan struct{}),
	}

	if err := e.replayJournal(); err != nil {
		return nil, fmt.Errorf("failed to replay journal: %w", err)
	}

	journal, err := persistence.OpenJournal(e.journalPath)
	if err != nil {
		return nil, err
	}
	e.journal = journal

	e.updateGauges()

	if opts.FlushInterval > 0 {
		e.wg.Add(1)
		go e.backgroundFlush()
	}
	return e, nil
}

// Close performs a clean shutdown: it stops the background flusher and
// syncs the journal to disk. Safe to call more than once.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		close(e.closed)
		e.wg.Wait()
		if e.journal != nil {
			if serr := e.journal.Sync(); serr != nil {
				err = serr
			}
			if cerr := e.journal.Close(); err == nil {
				err = cerr
			}
		}
	})
	return err
}

// Traverse binds a traversal description to this engine's graph.
func (e *Engine) Traverse(d *traversal.Description, start graph.NodeID) (*traversal.Traverser, error) {
	return d.Traverse(e.Graph, start)
}

// Stats returns topology statistics for the current graph.
func (e *Engine) Stats() graph.Stats {
	return e.Graph.Stats()
}

func (e *Engine) backgroundFlush() {
	defer e.wg.Done()
	ticker := time.NewTicker(e.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.closed:
			return
		case <-ticker.C:
			if err := e.journal.Flush(); err != nil {
				slog.Error("Background journal flush failed", "error", err)
			}
		}
	}
}

func (e *Engine) updateGauges() {
	metrics.GraphNodes.WithLabelValues(e.opts.DataDir).Set(float64(e.Graph.NodeCount()))
	metrics.GraphRelationships.WithLabelValues(e.opts.DataDir).Set(float64(e.Graph.RelationshipCount()))
}
