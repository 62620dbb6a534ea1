// Package report assembles validation findings into a report and writes it
// as plain text or JSON.
//
// The text layout has fixed sections separated by 100-character rules: the
// method banner, linkages naming nodes that are not in the tree, linkages
// with unreasonable weights, and confirmed loops. An empty section says so
// explicitly. A review section follows only when there is something to
// review: revisits whose classification depends on how the loop rule is
// read, and tree rows that tried to give a node a second parent.
//
// The JSON form carries the same data and round-trips through [ReadJSON];
// the pipeline caches it between runs.
package report
