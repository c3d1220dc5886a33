// Package dfs provides depth-first algorithms on a core.Graph: Tarjan's
// strongly connected components and the orderings derived from them.
//
// SCC returns components in reverse topological order: every edge leaving a
// component leads to a component listed earlier. Value iteration converges
// fastest when nodes are updated in this sinks-first order, which is what
// Components.Order returns.
//
// The traversal is iterative (explicit stack), so deep chains do not grow
// the goroutine stack.
//
// Complexity:
//
//   - Time:   O(V + E) (each node and edge visited once)
//   - Memory: O(V)     (index, lowlink, component ID and the explicit stack)
package dfs
