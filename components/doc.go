// Package components computes qualitative reachability sets on a core.Graph:
// the nodes that reach a target with positive probability (ReachPre) and the
// nodes that reach it with probability one under the best (ReachMaxOne) or
// every (ReachMinOne) resolution of the players' choices.
//
// All algorithms are backward fixpoints over the predecessor index, which
// they compute with core.Graph.ComputePredecessors if necessary. Each pass
// is O(V+E); ReachMaxOne runs at most V outer rounds.
//
// Player semantics follow the direction of PlayerOne: in ReachPre with Max a
// PlayerOne node needs one successor in the set, with Min it needs all of
// them; PlayerTwo always uses the opposite quantifier. Stochastic nodes need
// one successor. Nodes owned by core.PlayerExplorer are rejected with a panic.
//
// Optional schedulers record, for each PlayerOne state that enters the
// result through an edge, that edge as its decision. Decisions already
// present are never overwritten.
//
// EndComponents decomposes a graph into its maximal end components, the
// building blocks of long-run objectives.
package components
