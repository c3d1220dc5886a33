// Package algebra defines the value capabilities the numeric solver relies
// on, and the two value types stochgraph ships with: Real (float64) and
// Interval (closed float64 intervals).
//
// The solver is generic over V and only ever touches values through an
// Algebra[V], so new value types plug in without changes to the iteration
// code.
package algebra

// Algebra is the set of operations on values of type V.
//
// Compare must be a total order; for intervals it is lexicographic.
// Distance and Norm feed the stopping criterion and must be non-negative.
type Algebra[V any] interface {
	// Name identifies the algebra in logs, e.g. "real".
	Name() string

	Zero() V
	One() V
	// PosInf is the value of rewards that are never bounded.
	PosInf() V
	// FromFloat lifts a float64 constant into V.
	FromFloat(f float64) V

	Add(a, b V) V
	Subtract(a, b V) V
	Multiply(a, b V) V
	Divide(a, b V) V

	// Compare returns -1, 0 or +1.
	Compare(a, b V) int
	IsZero(a V) bool
	IsOne(a V) bool
	IsPosInf(a V) bool

	// ClampUnit restricts a to [Zero, One].
	ClampUnit(a V) V

	// Distance is the absolute difference of a and b.
	Distance(a, b V) float64
	// Norm is the magnitude of a.
	Norm(a V) float64
}

// Better reports whether a is strictly preferable to b when maximising
// (max=true) or minimising (max=false).
func Better[V any](alg Algebra[V], a, b V, maximise bool) bool {
	c := alg.Compare(a, b)
	if maximise {
		return c > 0
	}
	return c < 0
}

// Sum folds Add over vs starting from Zero.
func Sum[V any](alg Algebra[V], vs ...V) V {
	acc := alg.Zero()
	for _, v := range vs {
		acc = alg.Add(acc, v)
	}
	return acc
}
