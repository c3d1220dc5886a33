// Package solver implements the iterative numeric solver for reachability
// and cumulative-reward objectives on DTMCs, MDPs and turn-based stochastic
// games.
//
// Values are propagated backwards by value iteration:
//
//	stochastic node:  x(u) = r(u) + Σ_i w(u,i) · x(succ_i)
//	PlayerOne node:   x(u) = r(u) + opt_i x(succ_i)   (opt = the objective's direction)
//	PlayerTwo node:   x(u) = r(u) + opt'_i x(succ_i)  (opt' = the opposite direction)
//
// where r is zero for reachability. Target nodes are pinned to One, zero-set
// nodes and nodes that cannot reach the target at all to Zero, and nodes of
// the infinity set to PosInf; pinned nodes are never updated.
//
// One iteration is one sweep over the free nodes. Jacobi sweeps update the
// auxiliary (non-state) nodes first from the previous state values and then
// the states from the fresh auxiliary values, so a sweep is exactly one
// model step; bounded objectives always use Jacobi sweeps. Gauss–Seidel
// sweeps update in place, optionally in the sinks-first SCC order.
//
// Convergence is declared when, for every updated node, the stop criterion
// applied to the change and the new value's norm is at most the tolerance.
// A solver that hits its iteration cap returns a *NotConvergedError and
// leaves the objective unsolved.
//
// Schedulers are read off the converged values: among the edges whose value
// is within tolerance of the best, each state takes one that moves it closer
// to the target in a backward attractor, so the induced chain attains the
// values.
//
// Direct solves DTMC reachability exactly through an LU factorisation.
// LongRun computes long-run average rewards on DTMCs and MDPs from their
// maximal end components.
package solver
