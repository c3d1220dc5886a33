package algebra

import "math"

// Real is the float64 algebra.
type Real struct{}

// Reals is the shared Real instance.
var Reals Algebra[float64] = Real{}

func (Real) Name() string                { return "real" }
func (Real) Zero() float64               { return 0 }
func (Real) One() float64                { return 1 }
func (Real) PosInf() float64             { return math.Inf(1) }
func (Real) FromFloat(f float64) float64 { return f }
func (Real) Add(a, b float64) float64    { return a + b }
func (Real) Subtract(a, b float64) float64 {
	return a - b
}

// Multiply treats 0 * Inf as 0, so that unreachable infinite rewards do not
// poison weighted sums.
func (Real) Multiply(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a * b
}

func (Real) Divide(a, b float64) float64 { return a / b }

func (Real) Compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (Real) IsZero(a float64) bool   { return a == 0 }
func (Real) IsOne(a float64) bool    { return a == 1 }
func (Real) IsPosInf(a float64) bool { return math.IsInf(a, 1) }

func (Real) ClampUnit(a float64) float64 {
	return math.Min(1, math.Max(0, a))
}

// Distance returns |a-b|, and 0 for equal infinities.
func (Real) Distance(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a - b)
}

func (Real) Norm(a float64) float64 { return math.Abs(a) }
