// Command graphwalk runs a single traversal over a graph loaded from a
// YAML document or a journal-backed data directory, and prints the
// results one per line.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/jtescher/graphwalk/pkg/engine"
	"github.com/jtescher/graphwalk/pkg/graph"
	"github.com/jtescher/graphwalk/pkg/traversal"
)

func main() {
	graphPath := flag.String("graph", "", "Path to a YAML graph document")
	dataDir := flag.String("data", "", "Journal-backed data directory (alternative to -graph)")
	start := flag.String("start", "", "Start node ID (required)")
	direction := flag.String("direction", "out", "Expansion direction: out, in or both")
	relTypes := flag.String("types", "", "Comma-separated relationship types to follow (empty = all)")
	depth := flag.Int("depth", traversal.DepthAll, "Maximum traversal depth (-1 = unbounded)")
	unique := flag.String("unique", "node-global", "Uniqueness policy (node-global, node-path, node-recent:N, rel-global, rel-path, rel-recent:N, none)")
	includeStart := flag.Bool("include-start", false, "Include the start node in the results")
	shape := flag.String("shape", "nodes", "Result shape: nodes, rels, paths or count")
	showStats := flag.Bool("stats", false, "Print graph statistics before the results")

	flag.Parse()

	if *start == "" {
		log.Fatal("-start is required")
	}

	store, cleanup, err := openStore(*graphPath, *dataDir)
	if err != nil {
		log.Fatalf("Failed to open graph: %v", err)
	}
	defer cleanup()

	if *showStats {
		st := store.Stats()
		fmt.Printf("nodes=%d relationships=%d mean_degree=%.2f max_degree=%d\n",
			st.Nodes, st.Relationships, st.MeanDegree, st.MaxDegree)
	}

	td, err := buildDescription(*direction, *relTypes, *depth, *unique, *includeStart)
	if err != nil {
		log.Fatalf("Invalid traversal configuration: %v", err)
	}

	tr, err := td.Traverse(store, graph.NodeID(*start))
	if err != nil {
		log.Fatalf("Invalid traversal configuration: %v", err)
	}

	if err := printResults(tr, *shape); err != nil {
		log.Fatalf("Traversal failed: %v", err)
	}
}

func openStore(graphPath, dataDir string) (*graph.Store, func(), error) {
	switch {
	case graphPath != "" && dataDir != "":
		return nil, nil, fmt.Errorf("-graph and -data are mutually exclusive")
	case graphPath != "":
		store, err := graph.LoadYAMLFile(graphPath)
		return store, func() {}, err
	case dataDir != "":
		eng, err := engine.Open(engine.DefaultOptions(dataDir))
		if err != nil {
			return nil, nil, err
		}
		return eng.Graph, func() { eng.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("one of -graph or -data is required")
	}
}

func buildDescription(direction, relTypes string, depth int, unique string, includeStart bool) (*traversal.Description, error) {
	dir, err := graph.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	policy, err := traversal.ParseUniqueness(unique)
	if err != nil {
		return nil, err
	}

	td := traversal.NewDescription().Depth(depth).Unique(policy)
	if includeStart {
		td = td.IncludeStartNode()
	}

	types := []string{traversal.AllTypes}
	if relTypes != "" {
		types = strings.Split(relTypes, ",")
	}
	for _, relType := range types {
		switch dir {
		case graph.Outgoing:
			td = td.Outgoing(relType)
		case graph.Incoming:
			td = td.Incoming(relType)
		case graph.Both:
			td = td.Both(relType)
		}
	}
	return td, td.Err()
}

func printResults(tr *traversal.Traverser, shape string) error {
	switch shape {
	case "nodes":
		for node, err := range tr.Nodes() {
			if err != nil {
				return err
			}
			fmt.Println(node)
		}
	case "rels":
		for rel, err := range tr.Relationships() {
			if err != nil {
				return err
			}
			fmt.Printf("%s -[%s]-> %s\n", rel.Start, rel.Type, rel.End)
		}
	case "paths":
		for p, err := range tr.Paths() {
			if err != nil {
				return err
			}
			fmt.Println(p)
		}
	case "count":
		n, err := tr.Count()
		if err != nil {
			return err
		}
		fmt.Println(n)
	default:
		return fmt.Errorf("unknown shape %q", shape)
	}
	return nil
}
