package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level collectors, registered via promauto so callers only need
// to expose the default registry.

var (
	// TraversalsTotal counts walks started, labeled by how they were
	// materialized (paths, nodes, relationships, first, count).
	TraversalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphwalk_traversals_total",
			Help: "Total number of traversal runs started",
		},
		[]string{"shape"},
	)

	// PathsExpanded counts expansion calls against the graph store.
	PathsExpanded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "graphwalk_paths_expanded_total",
			Help: "Total number of paths expanded during traversals",
		},
	)

	// PathsDiscarded counts candidate paths dropped before inclusion,
	// labeled by the reason (uniqueness, filtered, pruned).
	PathsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphwalk_paths_discarded_total",
			Help: "Total number of candidate paths discarded during traversals",
		},
		[]string{"reason"},
	)

	// GraphNodes tracks the size of journal-backed graphs by data directory.
	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphwalk_graph_nodes",
			Help: "Number of nodes in an open graph engine",
		},
		[]string{"data_dir"},
	)

	// GraphRelationships tracks the edge count of journal-backed graphs.
	GraphRelationships = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphwalk_graph_relationships",
			Help: "Number of relationships in an open graph engine",
		},
		[]string{"data_dir"},
	)
)
