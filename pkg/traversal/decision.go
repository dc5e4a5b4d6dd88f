package traversal

import "fmt"

// Decision is the outcome of evaluating a path: whether to include it in
// the results, and whether to keep expanding beyond it. The two axes are
// independent; pruning a path does not exclude it.
type Decision int

const (
	// ExcludeAndContinue skips the path but keeps expanding beyond it.
	ExcludeAndContinue Decision = iota
	// ExcludeAndPrune skips the path and stops expanding the branch.
	ExcludeAndPrune
	// IncludeAndContinue yields the path and keeps expanding beyond it.
	IncludeAndContinue
	// IncludeAndPrune yields the path and stops expanding the branch.
	IncludeAndPrune
)

// Includes reports whether the path is part of the results.
func (d Decision) Includes() bool {
	return d == IncludeAndContinue || d == IncludeAndPrune
}

// Prunes reports whether expansion stops beyond the path.
func (d Decision) Prunes() bool {
	return d == ExcludeAndPrune || d == IncludeAndPrune
}

func (d Decision) String() string {
	switch d {
	case ExcludeAndContinue:
		return "exclude-and-continue"
	case ExcludeAndPrune:
		return "exclude-and-prune"
	case IncludeAndContinue:
		return "include-and-continue"
	case IncludeAndPrune:
		return "include-and-prune"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// decisionOf combines separate inclusion and pruning answers into a
// Decision, the single shape the walker acts on.
func decisionOf(include, prune bool) Decision {
	switch {
	case include && prune:
		return IncludeAndPrune
	case include:
		return IncludeAndContinue
	case prune:
		return ExcludeAndPrune
	default:
		return ExcludeAndContinue
	}
}
