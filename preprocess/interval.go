package preprocess

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/constraint"
	"github.com/katalvlaran/stochgraph/core"
)

// feasibilityEps absorbs rounding in interval sums.
const feasibilityEps = 1e-12

// IntervalNormalise tightens the weight interval of every edge leaving a
// stochastic node to the range actually attainable by some distribution:
//
//	lo' = max(lo, 1 - Σ_{j≠i} hi_j)
//	hi' = min(hi, 1 - Σ_{j≠i} lo_j)
//
// The tightened column lives on a derived graph.
type IntervalNormalise struct {
	binding[graphOwner]
	lp constraint.Solver
}

// IntervalOption configures IntervalNormalise.
type IntervalOption func(*IntervalNormalise)

// WithConstraintSolver delegates the feasibility check of each
// distribution to an external LP solver.
func WithConstraintSolver(s constraint.Solver) IntervalOption {
	return func(n *IntervalNormalise) { n.lp = s }
}

// NewIntervalNormalise returns an unbound IntervalNormalise.
func NewIntervalNormalise(opts ...IntervalOption) *IntervalNormalise {
	n := &IntervalNormalise{binding: binding[graphOwner]{
		name:  "interval-normalise",
		match: Match{ValueTypes: []core.ValueType{core.Interval}},
	}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Process tightens the distributions.
func (n *IntervalNormalise) Process(ctx context.Context) error {
	obj := n.mustHandle()
	g := obj.Graph()
	weights, err := core.Weights[algebra.Interval](g)
	if err != nil {
		return fmt.Errorf("preprocess: %s: %w", n.name, err)
	}
	tight := weights.Clone()
	for node := 0; node < g.NumNodes(); node++ {
		if g.Player(node) != core.PlayerStochastic || g.NumSuccessors(node) == 0 {
			continue
		}
		if err = ctx.Err(); err != nil {
			return err
		}
		row := tight.Row(node)
		if n.lp != nil {
			if err = n.checkLP(ctx, node, row); err != nil {
				return err
			}
		}
		if err = Tighten(row); err != nil {
			return fmt.Errorf("%w: node %d", err, node)
		}
	}
	d := g.Derive()
	if err = d.RegisterEdgeProperty(core.PropWeight, tight); err != nil {
		return fmt.Errorf("preprocess: %s: %w", n.name, err)
	}
	obj.SetGraph(d)
	return nil
}

// Tighten normalises one distribution in place.
func Tighten(row []algebra.Interval) error {
	var sumLo, sumHi float64
	for _, w := range row {
		if !w.Valid() || w.Lo < 0 {
			return fmt.Errorf("%w: bad interval %s", ErrInfeasibleDistribution, w)
		}
		sumLo += w.Lo
		sumHi += w.Hi
	}
	if sumLo > 1+feasibilityEps || sumHi < 1-feasibilityEps {
		return fmt.Errorf("%w: bounds sum to [%g, %g]", ErrInfeasibleDistribution, sumLo, sumHi)
	}
	for i, w := range row {
		row[i] = algebra.Interval{
			Lo: math.Max(w.Lo, 1-(sumHi-w.Hi)),
			Hi: math.Min(w.Hi, 1-(sumLo-w.Lo)),
		}
	}
	return nil
}

// checkLP asks the LP solver whether Σ p_i = 1 with p_i in row[i] is feasible.
func (n *IntervalNormalise) checkLP(ctx context.Context, node int, row []algebra.Interval) error {
	p := &constraint.Problem{Name: fmt.Sprintf("dist%d", node)}
	terms := make([]constraint.Term, len(row))
	for i, w := range row {
		v := p.AddVariable(fmt.Sprintf("p%d", i), w.Lo, w.Hi)
		terms[i] = constraint.Term{Var: v, Coef: 1}
	}
	p.AddConstraint(terms, constraint.Equal, 1)
	if _, err := n.lp.Solve(ctx, p); err != nil {
		if errors.Is(err, constraint.ErrInfeasible) {
			return fmt.Errorf("%w: node %d", ErrInfeasibleDistribution, node)
		}
		return fmt.Errorf("preprocess: %s: node %d: %w", n.name, node, err)
	}
	return nil
}
