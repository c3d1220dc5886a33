// Package constraint is the boundary to external linear-programming
// solvers. A Problem is a small LP over bounded real variables; a Solver
// answers it synchronously.
//
// The only shipped Solver, LPSolve, runs the lp_solve command-line tool.
// Calls are blocking and never retried.
package constraint

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors returned by solvers.
var (
	// ErrInfeasible is returned when no assignment satisfies the constraints.
	ErrInfeasible = errors.New("constraint: problem is infeasible")

	// ErrUnbounded is returned when the objective is unbounded.
	ErrUnbounded = errors.New("constraint: problem is unbounded")

	// ErrSolverFailed is returned when the solver could not produce an answer.
	ErrSolverFailed = errors.New("constraint: solver failed")
)

// VarID indexes Problem.Vars.
type VarID int

// Variable is a real variable with bounds. Use math.Inf for free sides.
type Variable struct {
	Name string
	Lo   float64
	Hi   float64
}

// Term is Coef * Var.
type Term struct {
	Var  VarID
	Coef float64
}

// Relation compares a linear expression with a constant.
type Relation uint8

const (
	LessEqual Relation = iota
	Equal
	GreaterEqual
)

func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case Equal:
		return "="
	case GreaterEqual:
		return ">="
	}
	return fmt.Sprintf("relation(%d)", uint8(r))
}

// Constraint is Σ Terms Rel RHS.
type Constraint struct {
	Terms []Term
	Rel   Relation
	RHS   float64
}

// Problem is a linear program. With an empty Objective it is a pure
// feasibility question.
type Problem struct {
	Name        string
	Vars        []Variable
	Constraints []Constraint
	Objective   []Term
	Maximize    bool
}

// AddVariable appends a variable and returns its ID.
func (p *Problem) AddVariable(name string, lo, hi float64) VarID {
	p.Vars = append(p.Vars, Variable{Name: name, Lo: lo, Hi: hi})
	return VarID(len(p.Vars) - 1)
}

// AddConstraint appends Σ terms rel rhs.
func (p *Problem) AddConstraint(terms []Term, rel Relation, rhs float64) {
	p.Constraints = append(p.Constraints, Constraint{Terms: terms, Rel: rel, RHS: rhs})
}

// SetObjective sets the linear objective.
func (p *Problem) SetObjective(terms []Term, maximize bool) {
	p.Objective = terms
	p.Maximize = maximize
}

// Solution is an optimal (or, without objective, feasible) assignment.
type Solution struct {
	Objective float64
	Values    []float64
}

// Value returns the assignment of v.
func (s *Solution) Value(v VarID) float64 { return s.Values[v] }

// Solver answers linear programs.
type Solver interface {
	// Solve returns a solution, or ErrInfeasible, ErrUnbounded or an error
	// wrapping ErrSolverFailed.
	Solve(ctx context.Context, p *Problem) (*Solution, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, p *Problem) (*Solution, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, p *Problem) (*Solution, error) { return f(ctx, p) }
