package algebra

import (
	"fmt"
	"math"
)

// Interval is the closed interval [Lo, Hi].
type Interval struct {
	Lo float64
	Hi float64
}

// Point returns the degenerate interval [f, f].
func Point(f float64) Interval { return Interval{Lo: f, Hi: f} }

// Width returns Hi - Lo.
func (i Interval) Width() float64 { return i.Hi - i.Lo }

// Contains reports whether f lies in i.
func (i Interval) Contains(f float64) bool { return i.Lo <= f && f <= i.Hi }

// Valid reports whether Lo <= Hi.
func (i Interval) Valid() bool { return i.Lo <= i.Hi }

func (i Interval) String() string { return fmt.Sprintf("[%g, %g]", i.Lo, i.Hi) }

// Intervals is the interval algebra. Arithmetic is the usual interval
// arithmetic; comparison is lexicographic on (Lo, Hi).
type Intervals struct{}

// IntervalAlgebra is the shared Intervals instance.
var IntervalAlgebra Algebra[Interval] = Intervals{}

func (Intervals) Name() string                 { return "interval" }
func (Intervals) Zero() Interval               { return Interval{} }
func (Intervals) One() Interval                { return Point(1) }
func (Intervals) PosInf() Interval             { return Point(math.Inf(1)) }
func (Intervals) FromFloat(f float64) Interval { return Point(f) }

func (Intervals) Add(a, b Interval) Interval {
	return Interval{Lo: a.Lo + b.Lo, Hi: a.Hi + b.Hi}
}

func (Intervals) Subtract(a, b Interval) Interval {
	return Interval{Lo: a.Lo - b.Hi, Hi: a.Hi - b.Lo}
}

func (Intervals) Multiply(a, b Interval) Interval {
	m := Real{}
	p := [4]float64{m.Multiply(a.Lo, b.Lo), m.Multiply(a.Lo, b.Hi), m.Multiply(a.Hi, b.Lo), m.Multiply(a.Hi, b.Hi)}
	out := Interval{Lo: p[0], Hi: p[0]}
	for _, v := range p[1:] {
		out.Lo = math.Min(out.Lo, v)
		out.Hi = math.Max(out.Hi, v)
	}
	return out
}

// Divide requires a divisor not containing zero; otherwise the result is
// the whole real line.
func (Intervals) Divide(a, b Interval) Interval {
	if b.Contains(0) {
		return Interval{Lo: math.Inf(-1), Hi: math.Inf(1)}
	}
	return Intervals{}.Multiply(a, Interval{Lo: 1 / b.Hi, Hi: 1 / b.Lo})
}

func (Intervals) Compare(a, b Interval) int {
	r := Real{}
	if c := r.Compare(a.Lo, b.Lo); c != 0 {
		return c
	}
	return r.Compare(a.Hi, b.Hi)
}

func (Intervals) IsZero(a Interval) bool   { return a.Lo == 0 && a.Hi == 0 }
func (Intervals) IsOne(a Interval) bool    { return a.Lo == 1 && a.Hi == 1 }
func (Intervals) IsPosInf(a Interval) bool { return math.IsInf(a.Lo, 1) }

func (Intervals) ClampUnit(a Interval) Interval {
	r := Real{}
	return Interval{Lo: r.ClampUnit(a.Lo), Hi: r.ClampUnit(a.Hi)}
}

// Distance is the larger endpoint distance.
func (Intervals) Distance(a, b Interval) float64 {
	r := Real{}
	return math.Max(r.Distance(a.Lo, b.Lo), r.Distance(a.Hi, b.Hi))
}

func (Intervals) Norm(a Interval) float64 { return math.Max(math.Abs(a.Lo), math.Abs(a.Hi)) }
