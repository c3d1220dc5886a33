// Package objective describes what a solver computes on a core.Graph:
// unbounded or step-bounded reachability probabilities, unbounded or
// step-bounded cumulative rewards and long-run average rewards, each
// optimised in a core.Direction.
//
// Every objective moves through three stages:
//
//	Created ──preprocessors──► Preprocessed ──solver──► Solved
//
// Preprocessors may rewrite the target, zero and infinity sets and swap the
// graph for a derived one; the solver then writes one value per node into
// the result buffer and, when requested, a scheduler. Reading results before
// Solved, or mutating an objective after it, is a programmer error and
// panics.
package objective
