package traversal

import (
	"errors"
	"iter"

	"github.com/jtescher/graphwalk/pkg/graph"
	"github.com/jtescher/graphwalk/pkg/metrics"
)

// Graph is the store surface the walker pulls from. *graph.Store
// satisfies it; tests substitute fakes.
type Graph interface {
	// Relationships enumerates the relationships of a node matching the
	// direction and type; an empty relType matches all types. The
	// enumeration order must be deterministic for a given graph state.
	Relationships(node graph.NodeID, dir graph.Direction, relType string) ([]graph.Relationship, error)
}

// Traverser is a bound traversal: an immutable description, a graph and a
// start node. Materializing it walks the graph depth-first, pre-order,
// lazily; every materialization re-runs the walk from the start node, so
// a Traverser can be iterated any number of times.
type Traverser struct {
	desc  *Description
	graph Graph
	start graph.NodeID
}

// frame is one suspended level of the depth-first walk: the path at that
// level plus a cursor over its not-yet-tried relationships.
type frame struct {
	path     *Path
	rels     []graph.Relationship
	next     int
	expanded bool
}

// walker is a single run over the graph. It keeps an explicit stack of
// frames, one per depth level of the active branch, so the walk can be
// suspended between results and resumed on the next pull.
type walker struct {
	t       *Traverser
	tracker tracker
	stack   []*frame
	started bool
	done    bool
}

func (t *Traverser) newWalker() *walker {
	return &walker{t: t, tracker: newTracker(t.desc.uniqueness)}
}

// next advances the walk to the next included path. It returns (nil, nil)
// when the walk is exhausted. A non-nil error with done unset means a
// single branch failed (stale reference); pulling again resumes with the
// sibling branches. Callback errors end the run.
func (w *walker) next() (*Path, error) {
	if w.done {
		return nil, nil
	}

	if !w.started {
		w.started = true
		root := StartPath(w.t.start)
		// Record the start node so global policies refuse to re-enter it.
		w.tracker.admit(root)

		dec := ExcludeAndContinue
		if w.t.desc.includeStart {
			var err error
			dec, err = w.evaluate(root)
			if err != nil {
				w.done = true
				return nil, err
			}
		}
		if !dec.Prunes() && !w.depthReached(root) {
			w.stack = append(w.stack, &frame{path: root})
		}
		if dec.Includes() {
			return root, nil
		}
	}

	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]

		if !top.expanded {
			top.expanded = true
			rels, err := w.expand(top.path.EndNode())
			if err != nil {
				// A stale reference fails only this branch; anything
				// else is a callback failure and ends the run.
				w.stack = w.stack[:len(w.stack)-1]
				if !errors.Is(err, graph.ErrBrokenReference) {
					w.done = true
				}
				return nil, err
			}
			top.rels = rels
		}

		if top.next >= len(top.rels) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		rel := top.rels[top.next]
		top.next++

		// Never step straight back along the edge just traversed,
		// unless the caller explicitly disabled uniqueness.
		if !w.t.desc.uniqueness.isNone() {
			if last, ok := top.path.LastRelationship(); ok && last.ID == rel.ID {
				continue
			}
		}

		child := top.path.Extend(rel)
		adm := w.tracker.admit(child)
		if adm == rejectBranch {
			metrics.PathsDiscarded.WithLabelValues("uniqueness").Inc()
			continue
		}

		dec, err := w.evaluate(child)
		if err != nil {
			w.done = true
			return nil, err
		}

		stop := dec.Prunes() || adm == admitStop || w.depthReached(child)
		if stop {
			metrics.PathsDiscarded.WithLabelValues("pruned").Inc()
		} else {
			w.stack = append(w.stack, &frame{path: child})
		}
		if dec.Includes() {
			return child, nil
		}
		metrics.PathsDiscarded.WithLabelValues("filtered").Inc()
	}

	return nil, nil
}

// expand produces the eligible relationships of the path's terminal node,
// per the configured expansion.
func (w *walker) expand(node graph.NodeID) ([]graph.Relationship, error) {
	metrics.PathsExpanded.Inc()

	d := w.t.desc
	if d.expander != nil {
		return d.expander(node)
	}
	if len(d.specs) == 0 {
		return w.t.graph.Relationships(node, graph.Both, AllTypes)
	}

	var rels []graph.Relationship
	for _, spec := range d.specs {
		part, err := w.t.graph.Relationships(node, spec.dir, spec.relType)
		if err != nil {
			return nil, err
		}
		rels = append(rels, part...)
	}
	return rels, nil
}

// evaluate runs the configured decision logic for one path.
func (w *walker) evaluate(p *Path) (Decision, error) {
	d := w.t.desc
	if d.evaluator != nil {
		return d.evaluator(p)
	}

	include := true
	if d.filter != nil {
		var err error
		include, err = d.filter(p)
		if err != nil {
			return ExcludeAndPrune, err
		}
	}
	prune := false
	if d.prune != nil {
		var err error
		prune, err = d.prune(p)
		if err != nil {
			return ExcludeAndPrune, err
		}
	}
	return decisionOf(include, prune), nil
}

func (w *walker) depthReached(p *Path) bool {
	return w.t.desc.depth != DepthAll && p.Length() >= w.t.desc.depth
}

// run adapts a fresh walker into a push iterator. Yielding (nil, err)
// reports a failed branch; the consumer may keep ranging to continue
// with the remaining branches, or break to abandon the walk.
func (t *Traverser) run(shape string) iter.Seq2[*Path, error] {
	return func(yield func(*Path, error) bool) {
		metrics.TraversalsTotal.WithLabelValues(shape).Inc()
		w := t.newWalker()
		for {
			p, err := w.next()
			if p == nil && err == nil {
				return
			}
			if !yield(p, err) {
				return
			}
		}
	}
}

// Paths returns the lazy sequence of included paths.
func (t *Traverser) Paths() iter.Seq2[*Path, error] {
	return t.run("paths")
}

// Nodes returns the terminal nodes of the included paths, in walk order.
func (t *Traverser) Nodes() iter.Seq2[graph.NodeID, error] {
	return func(yield func(graph.NodeID, error) bool) {
		for p, err := range t.run("nodes") {
			if err != nil {
				if !yield("", err) {
					return
				}
				continue
			}
			if !yield(p.EndNode(), nil) {
				return
			}
		}
	}
}

// Relationships returns the terminal relationships of the included paths.
// The start path has no relationship and contributes nothing.
func (t *Traverser) Relationships() iter.Seq2[graph.Relationship, error] {
	return func(yield func(graph.Relationship, error) bool) {
		for p, err := range t.run("relationships") {
			if err != nil {
				if !yield(graph.Relationship{}, err) {
					return
				}
				continue
			}
			rel, ok := p.LastRelationship()
			if !ok {
				continue
			}
			if !yield(rel, nil) {
				return
			}
		}
	}
}

// First returns the first included path and stops the walk immediately.
// It returns (nil, nil) when the traversal yields nothing.
func (t *Traverser) First() (*Path, error) {
	metrics.TraversalsTotal.WithLabelValues("first").Inc()
	return t.newWalker().next()
}

// Count drains the walk and returns the number of included paths.
// It stops at the first error.
func (t *Traverser) Count() (int, error) {
	metrics.TraversalsTotal.WithLabelValues("count").Inc()
	w := t.newWalker()
	n := 0
	for {
		p, err := w.next()
		if err != nil {
			return n, err
		}
		if p == nil {
			return n, nil
		}
		n++
	}
}
