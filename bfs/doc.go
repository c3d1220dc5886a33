// Package bfs provides breadth-first exploration over a core.Graph from a
// set of start nodes, returning the reached set, the visit order and the
// depth (edge count) of every reached node.
//
// What
//
//   - Explore nodes in non-decreasing distance from the start set.
//   - Follow successors (default) or, with WithReverse, predecessors.
//   - Hooks: OnVisit (may abort with an error) and FilterEdge (prune edges).
//   - Honors MaxDepth (d>0) or explicit "no limit" (d==0).
//
// Why
//
//   - Forward exploration reports which states are reachable from the
//     initial states; backward exploration gives graph-level reachability
//     of a target set, independent of players and weights.
//
// Determinism
//
//	Start nodes are enqueued in ascending order and successors in edge-index
//	order, so the visit sequence is fully reproducible.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V) for the queue, depth slice and reached bitset.
package bfs
