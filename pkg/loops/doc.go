// Package loops finds circular references created by layering linkage
// edges on a knowledge tree.
//
// # Overview
//
// A pure tree cannot cycle, so every search starts from a node touched by a
// linkage. From there a depth-first walk follows three kinds of edges:
// structural children, the structural parent, and, when the current node is
// a linkage destination, every linkage source pointing at it. A walk stops
// when it reaches home depth.
//
// # Classification
//
// Each step proposes a next node for the current path. [Classify] decides
// what the step means:
//
//   - [NoLoop]: the node is not on the path; the walk continues through it
//   - [Terminate]: the node is on the path but the revisit is ordinary
//     hierarchical back-and-forth; the branch is abandoned
//   - [HasLoop]: the node is on the path and the revisit is a genuine cycle;
//     it is recorded and the branch is abandoned
//
// The revisited slice runs from the first occurrence of the node to the
// current tail. Scanning it in order, a depth increase arms a "rise" flag; a
// depth decrease while the flag is armed is a rise-then-fall and classifies
// as Terminate immediately; any other transition disarms the flag. A slice
// that survives the scan is a loop when every node sits at the slice's
// minimum depth or when more than one node does. Otherwise it is Terminate.
// A cycle that only walks down into children and back up to the same parent
// is therefore never reported; lateral cycles through siblings or linkages
// at a shared depth are.
//
// # Review Flags
//
// The rise scan compares each node with the node before it. Reading the
// rule against the first node of the slice instead can change the outcome
// for some slices. Those revisits are returned as [Review] values so a human
// can confirm them; they do not change what is reported as a loop.
//
// # Deduplication
//
// The same cycle is usually found once per rotation. [Dedupe] keeps the first
// loop of each distinct node set, in discovery order.
//
// # Complexity
//
// The walk uses an explicit stack, so memory is bounded by the longest path
// (at most the number of nodes) rather than by goroutine stack depth. Nodes
// reached during a search are dropped from the seed queue so they are not
// restarted. Callers may bound work with [Options.MaxSteps] and with the
// context passed to [Detect].
package loops
