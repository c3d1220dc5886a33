// Package matrix provides the dense linear algebra behind the direct
// solver: a row-major Dense matrix, Doolittle LU factorisation and
// triangular solves.
//
// Systems arising from reachability on a Markov chain have the form
// (I - P) x = b where P is substochastic over nodes that can reach the
// target. Such matrices are non-singular M-matrices, so LU without pivoting
// is well defined; a zero pivot is still reported as ErrSingular.
//
// Complexity
//
//   - NewDense: O(r*c) zero-init; At/Set/Add: O(1).
//   - Factor: O(n^3) time, O(n^2) space. Solve: O(n^2).
package matrix
