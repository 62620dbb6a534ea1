package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	ruleWidth  = 100
	pairHeader = "from_node   to_node     weight"
	pairFormat = "%-11s %-11s %s\n"
	indent     = "       "
)

var rule = strings.Repeat("-", ruleWidth)

// WriteText writes the human-readable report.
func WriteText(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, r.Method.Banner())

	fmt.Fprintln(bw, rule)
	if len(r.InvalidNodes) > 0 {
		fmt.Fprintf(bw, "%d pairs of nodes were not found in the tree.\n", len(r.InvalidNodes))
		writePairs(bw, r.InvalidNodes)
	} else {
		fmt.Fprintln(bw, "All nodes seem to be valid.")
	}

	fmt.Fprintln(bw, rule)
	if len(r.InvalidWeights) > 0 {
		fmt.Fprintf(bw, "%d weightings were unreasonable.\n", len(r.InvalidWeights))
		writePairs(bw, r.InvalidWeights)
	} else {
		fmt.Fprintln(bw, "All weightings seem to be valid.")
	}

	fmt.Fprintln(bw, rule)
	if len(r.Loops) > 0 {
		fmt.Fprintf(bw, "%d loops were found.\n", len(r.Loops))
		for i, l := range r.Loops {
			fmt.Fprintf(bw, "Loop %d:\n", i+1)
			writeNodes(bw, l.Nodes)
		}
	} else {
		fmt.Fprintln(bw, "There does not seem to be loops.")
	}

	if r.NeedsReview() {
		fmt.Fprintln(bw, rule)
		writeReview(bw, r)
	}

	return bw.Flush()
}

func writePairs(w io.Writer, ps []Pair) {
	fmt.Fprintln(w, pairHeader)
	for _, p := range ps {
		fmt.Fprintf(w, pairFormat, p.From, p.To, p.Weight)
	}
}

func writeNodes(w io.Writer, ns []Node) {
	for _, n := range ns {
		fmt.Fprintf(w, "%s%s\n", indent, n)
	}
}

func writeReview(w io.Writer, r *Report) {
	if len(r.Reviews) > 0 {
		fmt.Fprintf(w, "%d revisits need manual review.\n", len(r.Reviews))
		for i, rv := range r.Reviews {
			fmt.Fprintf(w, "Review %d: classified %s, alternate reading gives %s\n", i+1, rv.Status, rv.Alternate)
			writeNodes(w, rv.Nodes)
		}
	}
	if len(r.Conflicts) > 0 {
		fmt.Fprintf(w, "%d tree rows gave a node a second parent; the last parent was kept.\n", len(r.Conflicts))
		for _, c := range r.Conflicts {
			fmt.Fprintf(w, "%s%s kept under %s, ignored %s\n", indent, c.Child, c.Kept, c.Ignored)
		}
	}
}
