package traversal

import "testing"

func TestGlobalTrackerRejectsRevisit(t *testing.T) {
	tr := newTracker(NodeGlobal)

	root := StartPath("A")
	ab := root.Extend(rel("e1", "A", "B"))
	aba := ab.Extend(rel("e2", "B", "A"))

	if tr.admit(root) != admitContinue || tr.admit(ab) != admitContinue {
		t.Fatal("fresh nodes should be admitted")
	}
	if tr.admit(aba) != rejectBranch {
		t.Error("global policy must reject a node seen anywhere in the run")
	}

	// Revisit from a completely different branch is rejected too
	ac := root.Extend(rel("e3", "A", "C"))
	tr.admit(ac)
	acb := ac.Extend(rel("e4", "C", "B"))
	if tr.admit(acb) != rejectBranch {
		t.Error("global policy is run-wide, not per-branch")
	}
}

func TestPathTrackerIsPerBranch(t *testing.T) {
	tr := newTracker(NodePath)

	root := StartPath("A")
	ab := root.Extend(rel("e1", "A", "B"))
	aba := ab.Extend(rel("e2", "B", "A"))
	abab := aba.Extend(rel("e1", "A", "B"))

	if tr.admit(ab) != admitContinue {
		t.Error("fresh node should be admitted")
	}
	// The step that closes the cycle is observable once, then stops
	if tr.admit(aba) != admitStop {
		t.Error("cycle-closing step should be admitted but stop expansion")
	}
	if tr.admit(abab) != admitStop {
		t.Error("a repeated node keeps the branch stopped")
	}

	// A different branch may revisit the same node freely
	ac := root.Extend(rel("e3", "A", "C"))
	acb := ac.Extend(rel("e4", "C", "B"))
	if tr.admit(acb) != admitContinue {
		t.Error("path policy must not leak state across branches")
	}
}

func TestRelPathTracker(t *testing.T) {
	tr := newTracker(RelPath)

	root := StartPath("A")
	ab := root.Extend(rel("e1", "A", "B"))
	aba := ab.Extend(rel("e2", "B", "A"))
	reuse := aba.Extend(rel("e1", "A", "B"))

	if tr.admit(root) != admitContinue || tr.admit(ab) != admitContinue || tr.admit(aba) != admitContinue {
		t.Fatal("distinct relationships should be admitted")
	}
	if tr.admit(reuse) != rejectBranch {
		t.Error("a relationship may not repeat within one path")
	}
}

func TestRecentTrackerFIFONotLRU(t *testing.T) {
	// Window of 2. Visit A, B; re-check A (still in window, and the
	// rejection must NOT renew it); visit C evicting A; then A again.
	tr := newTracker(NodeRecent(2)).(*recentTracker)

	a := StartPath("A")
	b := StartPath("B")
	c := StartPath("C")

	if tr.admit(a) != admitContinue || tr.admit(b) != admitContinue {
		t.Fatal("window not full yet, should admit")
	}
	if tr.admit(a) != rejectBranch {
		t.Fatal("A is in the window")
	}
	if tr.admit(c) != admitContinue {
		t.Fatal("C should be admitted")
	}
	// FIFO: A was the oldest despite the recent duplicate check, so C
	// evicted it and A is admissible again.
	if tr.admit(a) != admitContinue {
		t.Errorf("A should have been evicted FIFO, window=%v", tr.window)
	}
	// B was evicted by A's re-admission.
	if tr.admit(b) != admitContinue {
		t.Errorf("B should have been evicted, window=%v", tr.window)
	}
}

func TestNoneTrackerAdmitsEverything(t *testing.T) {
	tr := newTracker(None)
	p := StartPath("A")
	for i := 0; i < 3; i++ {
		if tr.admit(p) != admitContinue {
			t.Fatal("None must always admit")
		}
	}
}

func TestParseUniqueness(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Uniqueness
	}{
		{"node-global", NodeGlobal},
		{"node-path", NodePath},
		{"rel-global", RelGlobal},
		{"rel-path", RelPath},
		{"none", None},
		{"node-recent:5", NodeRecent(5)},
		{"rel-recent:3", RelRecent(3)},
	} {
		got, err := ParseUniqueness(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseUniqueness(%q) = %v, %v", tc.in, got, err)
		}
		if got.String() != tc.in {
			t.Errorf("String() round-trip: %q != %q", got.String(), tc.in)
		}
	}
	for _, bad := range []string{"", "node", "node-recent:x", "node-recent:-1"} {
		if _, err := ParseUniqueness(bad); err == nil {
			t.Errorf("ParseUniqueness(%q) should fail", bad)
		}
	}
}
