// Package core defines the explicit stochastic graph used by every other
// stochgraph package.
//
// A Graph stores nodes as dense integer IDs 0..NumNodes()-1 and successor
// lists in compressed-row form: one offsets slice and one flat successor
// slice. Edge i of node n is addressed by the pair (n, i), which is stable for
// the lifetime of the graph.
//
// Every node carries two load-bearing properties:
//
//	State  - true for nodes that are model states, false for auxiliary nodes
//	         (the distribution nodes of an MDP, for example).
//	Player - who resolves the choice at the node: PlayerStochastic picks a
//	         successor according to the edge weights, PlayerOne and PlayerTwo
//	         pick one deliberately.
//
// Edge weights are stored in a typed edge column under PropWeight; the value
// type is generic, so the same topology serves real probabilities and
// probability intervals alike.
//
// An MDP is expressed as an alternating graph:
//
//	s0 (state, PlayerOne) ──► d0 (aux, stochastic) ──0.5──► s1
//	                      │                         └─0.5──► s2
//	                      └─► d1 (aux, stochastic) ──1.0──► s0
//
// The predecessor index is computed on demand by ComputePredecessors and is
// memoised; accessing it before it was computed is a programmer error and
// panics. Any topology mutation invalidates it.
//
// Concurrency: a Graph may be read from many goroutines. Mutation
// (SetSuccessor, property registration) must be serialised by the caller.
// ComputePredecessors is safe to call concurrently.
package core
