package traversal

import (
	"fmt"
	"strconv"
	"strings"
)

// Uniqueness controls how often a node or relationship may be revisited
// during one traversal run.
type Uniqueness struct {
	kind   uniquenessKind
	window int // for the Recent variants
}

type uniquenessKind int

const (
	uniqueNodeGlobal uniquenessKind = iota
	uniqueNodePath
	uniqueNodeRecent
	uniqueRelGlobal
	uniqueRelPath
	uniqueRelRecent
	uniqueNone
)

var (
	// NodeGlobal never admits a node twice in the whole run. The default.
	NodeGlobal = Uniqueness{kind: uniqueNodeGlobal}
	// NodePath allows revisiting a node via a different branch, but a
	// path that returns to one of its own nodes is admitted once and
	// then stops expanding (per-branch cycle detection).
	NodePath = Uniqueness{kind: uniqueNodePath}
	// RelGlobal never traverses a relationship twice in the whole run.
	RelGlobal = Uniqueness{kind: uniqueRelGlobal}
	// RelPath never traverses a relationship twice within one path.
	RelPath = Uniqueness{kind: uniqueRelPath}
	// None admits everything. The caller must bound depth or prune,
	// or a cyclic graph produces an infinite walk.
	None = Uniqueness{kind: uniqueNone}
)

// NodeRecent admits a node unless it is among the last n visited nodes.
// Eviction is FIFO: revisiting a node inside the window does not renew it.
func NodeRecent(n int) Uniqueness {
	return Uniqueness{kind: uniqueNodeRecent, window: n}
}

// RelRecent is NodeRecent keyed on relationship identity.
func RelRecent(n int) Uniqueness {
	return Uniqueness{kind: uniqueRelRecent, window: n}
}

func (u Uniqueness) isNone() bool { return u.kind == uniqueNone }

// ParseUniqueness converts a textual policy name into a Uniqueness.
// Recognized: node-global, node-path, node-recent:N, rel-global, rel-path,
// rel-recent:N, none.
func ParseUniqueness(s string) (Uniqueness, error) {
	if window, ok := strings.CutPrefix(s, "node-recent:"); ok {
		n, err := strconv.Atoi(window)
		if err != nil || n < 0 {
			return Uniqueness{}, fmt.Errorf("invalid recent window %q", window)
		}
		return NodeRecent(n), nil
	}
	if window, ok := strings.CutPrefix(s, "rel-recent:"); ok {
		n, err := strconv.Atoi(window)
		if err != nil || n < 0 {
			return Uniqueness{}, fmt.Errorf("invalid recent window %q", window)
		}
		return RelRecent(n), nil
	}
	switch s {
	case "node-global":
		return NodeGlobal, nil
	case "node-path":
		return NodePath, nil
	case "rel-global":
		return RelGlobal, nil
	case "rel-path":
		return RelPath, nil
	case "none":
		return None, nil
	default:
		return Uniqueness{}, fmt.Errorf("unknown uniqueness policy %q", s)
	}
}

func (u Uniqueness) String() string {
	switch u.kind {
	case uniqueNodeGlobal:
		return "node-global"
	case uniqueNodePath:
		return "node-path"
	case uniqueNodeRecent:
		return fmt.Sprintf("node-recent:%d", u.window)
	case uniqueRelGlobal:
		return "rel-global"
	case uniqueRelPath:
		return "rel-path"
	case uniqueRelRecent:
		return fmt.Sprintf("rel-recent:%d", u.window)
	default:
		return "none"
	}
}

// admission is the tracker's verdict on a candidate path.
type admission int

const (
	// rejectBranch drops the candidate entirely: not yielded, not expanded.
	rejectBranch admission = iota
	// admitContinue accepts the candidate for evaluation and expansion.
	admitContinue
	// admitStop accepts the candidate for evaluation but forbids
	// expanding beyond it (a branch that closed a cycle).
	admitStop
)

// tracker enforces one Uniqueness policy for the duration of a single run.
// admit is called once per candidate path, root included, and records the
// candidate as visited when it does not reject it.
type tracker interface {
	admit(p *Path) admission
}

func newTracker(u Uniqueness) tracker {
	switch u.kind {
	case uniqueNodeGlobal:
		return &globalTracker{seen: make(map[string]struct{}), key: nodeKey}
	case uniqueRelGlobal:
		return &globalTracker{seen: make(map[string]struct{}), key: relKey}
	case uniqueNodePath:
		return nodePathTracker{}
	case uniqueRelPath:
		return relPathTracker{}
	case uniqueNodeRecent:
		return &recentTracker{limit: u.window, key: nodeKey}
	case uniqueRelRecent:
		return &recentTracker{limit: u.window, key: relKey}
	default:
		return noneTracker{}
	}
}

// nodeKey keys a path by its terminal node.
func nodeKey(p *Path) (string, bool) {
	return string(p.EndNode()), true
}

// relKey keys a path by its terminal relationship; the start path has
// none and is always admitted without being recorded.
func relKey(p *Path) (string, bool) {
	rel, ok := p.LastRelationship()
	if !ok {
		return "", false
	}
	return rel.ID, true
}

type globalTracker struct {
	seen map[string]struct{}
	key  func(*Path) (string, bool)
}

func (t *globalTracker) admit(p *Path) admission {
	k, ok := t.key(p)
	if !ok {
		return admitContinue
	}
	if _, dup := t.seen[k]; dup {
		return rejectBranch
	}
	t.seen[k] = struct{}{}
	return admitContinue
}

// nodePathTracker needs no state of its own: the visited set is the
// ancestor chain of the candidate itself.
type nodePathTracker struct{}

func (nodePathTracker) admit(p *Path) admission {
	if p.parent != nil && p.parent.containsNode(p.EndNode()) {
		// The step closed a cycle within this branch. Let it through
		// once so the closing step is observable, then stop.
		return admitStop
	}
	return admitContinue
}

type relPathTracker struct{}

func (relPathTracker) admit(p *Path) admission {
	rel, ok := p.LastRelationship()
	if !ok {
		return admitContinue
	}
	if p.parent.containsRelationship(rel.ID) {
		return rejectBranch
	}
	return admitContinue
}

type recentTracker struct {
	window []string
	limit  int
	key    func(*Path) (string, bool)
}

func (t *recentTracker) admit(p *Path) admission {
	k, ok := t.key(p)
	if !ok {
		return admitContinue
	}
	for _, seen := range t.window {
		if seen == k {
			return rejectBranch
		}
	}
	t.window = append(t.window, k)
	if t.limit >= 0 && len(t.window) > t.limit {
		t.window = t.window[1:]
	}
	return admitContinue
}

type noneTracker struct{}

func (noneTracker) admit(*Path) admission { return admitContinue }
