// Package linkage ingests the auxiliary cross-links layered on a knowledge
// tree and validates every record against it.
//
// # Input Shapes
//
// Two table shapes are supported, selected by [Method]:
//
//   - [MethodSerial]: (from_id, to_id, weight), nodes addressed by the
//     synthetic identifiers assigned by the hierarchy builder
//   - [MethodResolved]: (node_depth, from_node, to_node, weight), nodes
//     addressed by name at an explicit depth
//
// Columns are addressed by position; header spelling is free.
//
// # Validation
//
// A weight must lie in (0, 1]. Both endpoints must exist in the tree.
// Records failing either check are kept, with their raw field values, in
// [Result.InvalidWeights] or [Result.InvalidNodes] and never enter the
// linkage graph. These are findings, not errors. Only structural problems
// (wrong column count, a weight or depth that does not parse as a number)
// abort ingestion with a MALFORMED_INPUT error.
//
// # Linkages
//
// Valid records become [Edge] values in [Linkages], keyed by destination
// node and kept in input order. The serial variant additionally keeps the
// resolved records so they can be persisted as a resolved-form table with
// [Result.WriteTable]; once persisted the weight plays no further part and
// only the destination depth is carried on the edge.
package linkage
