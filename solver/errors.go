package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConverged is wrapped by every NotConvergedError.
	ErrNotConverged = errors.New("solver: iteration did not converge")

	// ErrUnsupportedObjective is returned when Solve is called with an
	// objective CanSolve rejects.
	ErrUnsupportedObjective = errors.New("solver: objective not supported")

	// ErrOptionViolation is returned when an invalid Option was supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")
)

// NotConvergedError reports that the iteration cap was reached. It carries
// the last iterate, aligned to node index.
type NotConvergedError[V any] struct {
	Iterations    int
	Distance      float64
	Tolerance     float64
	Approximation []V
}

func (e *NotConvergedError[V]) Error() string {
	return fmt.Sprintf("solver: no convergence after %d iterations (distance %g, tolerance %g)",
		e.Iterations, e.Distance, e.Tolerance)
}

// Unwrap makes errors.Is(err, ErrNotConverged) hold.
func (e *NotConvergedError[V]) Unwrap() error { return ErrNotConverged }
