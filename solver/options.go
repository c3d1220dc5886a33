package solver

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Method selects the sweep strategy.
type Method uint8

const (
	// Jacobi computes each sweep from the previous iterate only.
	Jacobi Method = iota
	// GaussSeidel updates values in place during a sweep.
	GaussSeidel
)

func (m Method) String() string {
	if m == GaussSeidel {
		return "gauss-seidel"
	}
	return "jacobi"
}

// ParseMethod maps "jacobi" or "gauss-seidel" to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "jacobi":
		return Jacobi, nil
	case "gauss-seidel", "gaussseidel":
		return GaussSeidel, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrOptionViolation, s)
}

// Criterion maps a node's change and the norm of its new value to the
// quantity compared with the tolerance.
type Criterion func(distance, norm float64) float64

// Absolute compares the change itself.
func Absolute(distance, _ float64) float64 { return distance }

// Relative compares the change divided by the new value's norm.
func Relative(distance, norm float64) float64 {
	if norm == 0 {
		return distance
	}
	return distance / norm
}

// ParseCriterion maps "absolute" or "relative" to a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	switch s {
	case "absolute":
		return Absolute, nil
	case "relative":
		return Relative, nil
	}
	return nil, fmt.Errorf("%w: unknown stop criterion %q", ErrOptionViolation, s)
}

// Defaults.
const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 1_000_000
)

// Option configures an Iterative solver.
type Option func(*Options)

// Options holds the solver settings.
type Options struct {
	Method           Method
	Tolerance        float64
	Criterion        Criterion
	MaxIterations    int
	TopologicalOrder bool
	Logger           zerolog.Logger

	err error
}

// DefaultOptions returns Gauss–Seidel, absolute criterion, DefaultTolerance,
// DefaultMaxIterations and the global logger.
func DefaultOptions() Options {
	return Options{
		Method:        GaussSeidel,
		Tolerance:     DefaultTolerance,
		Criterion:     Absolute,
		MaxIterations: DefaultMaxIterations,
		Logger:        log.Logger,
	}
}

// WithMethod sets the sweep strategy.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithTolerance sets the convergence threshold; it must be positive.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) {
			o.err = fmt.Errorf("%w: tolerance must be positive (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithStopCriterion sets the stop criterion.
func WithStopCriterion(c Criterion) Option {
	return func(o *Options) {
		if c != nil {
			o.Criterion = c
		}
	}
}

// WithMaxIterations caps the number of sweeps. Zero is a literal cap:
// any objective with free nodes then fails with ErrNotConverged.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: negative iteration cap (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithTopologicalOrder makes Gauss–Seidel sweeps visit nodes sinks first.
func WithTopologicalOrder() Option {
	return func(o *Options) { o.TopologicalOrder = true }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
