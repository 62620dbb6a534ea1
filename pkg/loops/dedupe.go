package loops

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/treelink/pkg/hierarchy"
)

// Dedupe keeps the first loop of each distinct node set, preserving
// discovery order. Rotations and reversals of one cycle collapse to a single
// entry.
func Dedupe(loops []Loop) []Loop {
	seen := make(map[string]bool, len(loops))
	out := make([]Loop, 0, len(loops))
	for _, l := range loops {
		key := setKey(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}

// setKey returns a canonical key for the set of nodes in ns.
func setKey(ns []hierarchy.Node) string {
	set := slices.Clone(ns)
	slices.SortFunc(set, func(a, b hierarchy.Node) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	set = slices.Compact(set)

	var sb strings.Builder
	for _, n := range set {
		sb.WriteString(strconv.Itoa(n.Depth))
		sb.WriteByte(':')
		sb.WriteString(strconv.Quote(n.Name))
		sb.WriteByte(';')
	}
	return sb.String()
}
