package solver

import (
	"context"

	"github.com/katalvlaran/stochgraph/objective"
)

// Solver computes the values of an objective.
type Solver interface {
	// Name identifies the solver in logs and metrics.
	Name() string
	// CanSolve reports whether the solver handles obj in its current state.
	CanSolve(obj objective.Objective) bool
	// Solve writes the values (and scheduler, when requested) into obj and
	// marks it solved.
	Solve(ctx context.Context, obj objective.Objective) error
}
