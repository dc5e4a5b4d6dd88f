// Package traversal implements a lazily-evaluated, depth-first graph
// traversal framework driven by a fluent configuration builder.
//
// A traversal is described before it runs: direction and relationship
// types (or a custom expander), a depth bound, filter and prune
// predicates (or a single evaluator), and a uniqueness policy. No graph
// access happens until the result is iterated.
//
// Basic usage:
//
//	td := traversal.NewDescription().
//		Outgoing("friends").
//		Depth(2)
//	tr, err := td.Traverse(store, "A")
//	if err != nil {
//		return err
//	}
//	for node, err := range tr.Nodes() {
//		...
//	}
package traversal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jtescher/graphwalk/pkg/graph"
)

var (
	// ErrConfigConflict indicates mutually exclusive builder options were
	// combined on one description.
	ErrConfigConflict = errors.New("conflicting traversal configuration")
	// ErrInvalidDepth indicates a negative depth bound.
	ErrInvalidDepth = errors.New("depth must be non-negative")
)

// DepthAll disables the depth bound. On a cyclic graph the caller is then
// responsible for a uniqueness policy or prune rule that terminates the walk.
const DepthAll = -1

// AllTypes matches every relationship type.
const AllTypes = ""

// Predicate evaluates a path for the Filter and Prune hooks.
type Predicate func(*Path) (bool, error)

// Evaluator jointly decides inclusion and pruning for a path.
type Evaluator func(*Path) (Decision, error)

// Expander produces the relationships eligible for traversal from a node,
// replacing the direction/type based expansion.
type Expander func(graph.NodeID) ([]graph.Relationship, error)

// relSpec is one direction/type pair of the static expansion.
type relSpec struct {
	dir     graph.Direction
	relType string
}

// Description is the accumulated traversal configuration.
//
// Each builder call returns a new Description reflecting the added option;
// the receiver is never modified, so descriptions may be shared and reused
// as templates. A conflicting combination is recorded at configuration
// time as a sticky error, readable via Err and returned by Traverse.
type Description struct {
	specs        []relSpec
	expander     Expander
	filter       Predicate
	prune        Predicate
	evaluator    Evaluator
	depth        int
	includeStart bool
	uniqueness   Uniqueness
	err          error
}

// NewDescription returns the default configuration: unbounded depth,
// NodeGlobal uniqueness, start node excluded, all relationships followed
// in both directions.
func NewDescription() *Description {
	return &Description{
		depth:      DepthAll,
		uniqueness: NodeGlobal,
	}
}

// clone copies the description so builder calls keep value semantics.
func (d *Description) clone() *Description {
	next := *d
	next.specs = slices.Clone(d.specs)
	return &next
}

// fail records the first configuration error; later calls keep it.
func (d *Description) fail(err error) *Description {
	next := d.clone()
	if next.err == nil {
		next.err = err
	}
	return next
}

func (d *Description) addSpec(dir graph.Direction, relType string) *Description {
	if d.expander != nil {
		return d.fail(fmt.Errorf("%w: direction/type expansion cannot be combined with a custom expander", ErrConfigConflict))
	}
	if d.evaluator != nil {
		return d.fail(fmt.Errorf("%w: direction/type expansion cannot be combined with an evaluator", ErrConfigConflict))
	}
	next := d.clone()
	next.specs = append(next.specs, relSpec{dir: dir, relType: relType})
	return next
}

// Outgoing adds relationships of the given type, followed start to end.
func (d *Description) Outgoing(relType string) *Description {
	return d.addSpec(graph.Outgoing, relType)
}

// Incoming adds relationships of the given type, followed end to start.
func (d *Description) Incoming(relType string) *Description {
	return d.addSpec(graph.Incoming, relType)
}

// Both adds relationships of the given type in either direction.
// Pass AllTypes to follow every relationship.
func (d *Description) Both(relType string) *Description {
	return d.addSpec(graph.Both, relType)
}

// Expand installs a custom expander, replacing direction/type expansion.
func (d *Description) Expand(fn Expander) *Description {
	if len(d.specs) > 0 {
		return d.fail(fmt.Errorf("%w: a custom expander cannot be combined with direction/type expansion", ErrConfigConflict))
	}
	if d.evaluator != nil {
		return d.fail(fmt.Errorf("%w: a custom expander cannot be combined with an evaluator", ErrConfigConflict))
	}
	next := d.clone()
	next.expander = fn
	return next
}

// Depth bounds the walk to paths of at most n relationships.
// Pass DepthAll for no bound.
func (d *Description) Depth(n int) *Description {
	if n < 0 && n != DepthAll {
		return d.fail(fmt.Errorf("%w: got %d", ErrInvalidDepth, n))
	}
	next := d.clone()
	next.depth = n
	return next
}

// IncludeStartNode makes the start node itself the first result.
func (d *Description) IncludeStartNode() *Description {
	next := d.clone()
	next.includeStart = true
	return next
}

// Filter installs an inclusion predicate: paths for which it returns
// false are skipped but still expanded. Independent of pruning.
func (d *Description) Filter(fn Predicate) *Description {
	if d.evaluator != nil {
		return d.fail(fmt.Errorf("%w: a filter cannot be combined with an evaluator", ErrConfigConflict))
	}
	next := d.clone()
	next.filter = fn
	return next
}

// Prune installs a pruning predicate: paths for which it returns true are
// not expanded further. The path itself may still be included.
func (d *Description) Prune(fn Predicate) *Description {
	if d.evaluator != nil {
		return d.fail(fmt.Errorf("%w: a prune rule cannot be combined with an evaluator", ErrConfigConflict))
	}
	next := d.clone()
	next.prune = fn
	return next
}

// Evaluate installs a single evaluator subsuming Filter and Prune.
// Mutually exclusive with Filter, Prune, direction/type expansion and
// custom expanders.
func (d *Description) Evaluate(fn Evaluator) *Description {
	if d.filter != nil || d.prune != nil {
		return d.fail(fmt.Errorf("%w: an evaluator cannot be combined with filter or prune rules", ErrConfigConflict))
	}
	if len(d.specs) > 0 || d.expander != nil {
		return d.fail(fmt.Errorf("%w: an evaluator cannot be combined with a configured expansion", ErrConfigConflict))
	}
	next := d.clone()
	next.evaluator = fn
	return next
}

// Unique sets the uniqueness policy. The default is NodeGlobal.
func (d *Description) Unique(u Uniqueness) *Description {
	next := d.clone()
	next.uniqueness = u
	return next
}

// Err returns the first configuration error recorded on the description,
// or nil. Conflicts surface here immediately, not at iteration time.
func (d *Description) Err() error {
	return d.err
}

// Traverse binds the description to a graph and a start node. It fails
// with the recorded configuration error, if any; the graph itself is not
// touched until the Traverser is iterated.
func (d *Description) Traverse(g Graph, start graph.NodeID) (*Traverser, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &Traverser{desc: d.clone(), graph: g, start: start}, nil
}
