package loops

import (
	"slices"

	"github.com/matzehuels/treelink/pkg/hierarchy"
)

// Status is the outcome of proposing a next node for a path.
type Status int

const (
	// NoLoop means the node is not on the path.
	NoLoop Status = iota
	// HasLoop means the revisit closes a genuine cycle.
	HasLoop
	// Terminate means the revisit is not a cycle worth reporting.
	Terminate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case NoLoop:
		return "no-loop"
	case HasLoop:
		return "loop"
	case Terminate:
		return "terminate"
	}
	return "unknown"
}

// baseline selects which depth the rise scan compares against.
type baseline int

const (
	previousNode baseline = iota // the rule as applied
	firstNode                    // alternate reading, used for review flags
)

// Classify decides what proposing next after path means. For a revisit it
// also returns the slice of path from the first occurrence of next to the
// tail. The slice aliases path.
func Classify(path []hierarchy.Node, next hierarchy.Node) (Status, []hierarchy.Node) {
	idx := slices.Index(path, next)
	if idx < 0 {
		return NoLoop, nil
	}
	slice := path[idx:]
	return classifySlice(slice, previousNode), slice
}

// classifySlice applies the rise scan and the minimum-depth test to a
// revisited slice.
func classifySlice(slice []hierarchy.Node, base baseline) Status {
	if len(slice) == 0 {
		return Terminate
	}

	lowest := slice[0].Depth
	for _, n := range slice[1:] {
		lowest = min(lowest, n.Depth)
	}

	rise := false
	prev := slice[0].Depth
	atLowest := 0
	for _, n := range slice {
		if n.Depth == lowest {
			atLowest++
		}
		switch {
		case n.Depth > prev:
			rise = true
		case n.Depth < prev && rise:
			return Terminate
		default:
			rise = false
		}
		if base == previousNode {
			prev = n.Depth
		}
	}

	if atLowest == len(slice) || atLowest > 1 {
		return HasLoop
	}
	return Terminate
}
