package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/dfs"
	"github.com/katalvlaran/stochgraph/objective"
)

// Iterative is the value-iteration solver over algebra V.
type Iterative[V any] struct {
	alg  algebra.Algebra[V]
	opts Options
}

// NewIterative returns a solver over alg. Invalid options surface as
// ErrOptionViolation from Solve.
func NewIterative[V any](alg algebra.Algebra[V], opts ...Option) *Iterative[V] {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Iterative[V]{alg: alg, opts: o}
}

// Name returns "iterative-" followed by the method.
func (s *Iterative[V]) Name() string { return "iterative-" + s.opts.Method.String() }

// Options returns the effective settings.
func (s *Iterative[V]) Options() Options { return s.opts }

// CanSolve accepts reachability and cumulative objectives over V on DTMC,
// MDP and SMG graphs. Continuous-time graphs must be embedded first;
// unbounded rewards over intervals are not supported.
func (s *Iterative[V]) CanSolve(obj objective.Objective) bool {
	switch obj.(type) {
	case *objective.Reachability[V], *objective.Cumulative[V]:
	default:
		return false
	}
	g := obj.Graph()
	switch g.Semantics() {
	case core.DTMC, core.MDP, core.SMG:
	default:
		return false
	}
	if obj.Kind() == objective.UnboundedCumulative && g.ValueType() == core.Interval {
		return false
	}
	_, err := core.Weights[V](g)
	return err == nil
}

// outcome summarises an iteration.
type outcome struct {
	sweeps    int
	distance  float64
	converged bool
}

// Solve runs value iteration and completes obj.
//
// Steps:
//  1. Lower obj to arrays and pin the nodes whose value is known.
//  2. Sweep the free nodes until the largest change drops to the
//     tolerance, or for exactly Bound sweeps on bounded kinds.
//  3. Extract the scheduler when one was requested.
//
// Complexity:
//
//	Time:   O(V + E) per sweep, at most MaxIterations sweeps; O(V + E) for
//	        the scheduler and the optional topological order.
//	Memory: O(V) beyond the graph, O(V) more for Jacobi.
func (s *Iterative[V]) Solve(ctx context.Context, obj objective.Objective) error {
	if s.opts.err != nil {
		return s.opts.err
	}
	typed, ok := obj.(solvable[V])
	if !ok || !s.CanSolve(obj) {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedObjective, obj.Kind(), obj.Graph())
	}
	g := obj.Graph()
	kind := obj.Kind().String()
	ctx, span := startSolveSpan(ctx, s.Name(), kind, g.NumNodes(), g.NumEdges())
	defer span.End()
	start := time.Now()

	p, err := lower(s.alg, typed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	values, out, err := s.iterate(ctx, p)

	elapsed := time.Since(start)
	recordSolveMetrics(ctx, kind, elapsed, out.sweeps, out.converged)
	setSolveSpanResult(span, out.sweeps, out.distance, out.converged)
	s.opts.Logger.Debug().
		Str("solver", s.Name()).
		Str("objective", kind).
		Str("direction", obj.Direction().String()).
		Int("nodes", g.NumNodes()).
		Int("iterations", out.sweeps).
		Float64("distance", out.distance).
		Bool("converged", out.converged).
		Dur("elapsed", elapsed).
		Msg("Value iteration finished")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if draft := typed.SchedulerDraft(); draft != nil {
		p.schedule(draft, values, s.opts.Tolerance)
	}
	typed.Complete(values)
	return nil
}

// iterate runs the sweeps and returns the values in the objective's buffer.
func (s *Iterative[V]) iterate(ctx context.Context, p *problem[V]) ([]V, outcome, error) {
	g := p.graph
	n := g.NumNodes()
	out := outcome{distance: math.Inf(1)}

	var aux, states, order []int
	for node := 0; node < n; node++ {
		if p.fixed.Get(node) {
			continue
		}
		if g.IsState(node) {
			states = append(states, node)
		} else {
			aux = append(aux, node)
		}
	}
	free := len(aux) + len(states)

	jacobi := p.bounded || s.opts.Method == Jacobi
	if !jacobi {
		if s.opts.TopologicalOrder {
			comps, err := dfs.SCC(g, dfs.WithCancelContext(ctx))
			if err != nil {
				return nil, out, err
			}
			order = make([]int, 0, free)
			for _, node := range comps.Order() {
				if !p.fixed.Get(node) {
					order = append(order, node)
				}
			}
		} else {
			order = append(append(order, aux...), states...)
		}
	}

	cur := p.values
	var next []V
	if jacobi {
		next = make([]V, n)
		copy(next, cur)
	}
	sweep := func() float64 {
		if jacobi {
			d := s.jacobiSweep(p, aux, states, cur, next)
			cur, next = next, cur
			return d
		}
		return s.gaussSeidelSweep(p, order, cur)
	}
	finish := func() []V {
		if &cur[0] != &p.values[0] {
			copy(p.values, cur)
		}
		return p.values
	}

	if free == 0 {
		out.distance, out.converged = 0, true
		return finish(), out, nil
	}

	if p.bounded {
		steps := min(p.steps, s.opts.MaxIterations)
		for out.sweeps < steps {
			if err := ctx.Err(); err != nil {
				return nil, out, err
			}
			out.distance = sweep()
			out.sweeps++
		}
		if p.steps > s.opts.MaxIterations {
			return nil, out, s.notConverged(out, finish())
		}
		out.converged = true
		return finish(), out, nil
	}

	for {
		if out.sweeps >= s.opts.MaxIterations {
			return nil, out, s.notConverged(out, finish())
		}
		if err := ctx.Err(); err != nil {
			return nil, out, err
		}
		out.distance = sweep()
		out.sweeps++
		if out.distance <= s.opts.Tolerance {
			out.converged = true
			return finish(), out, nil
		}
	}
}

func (s *Iterative[V]) notConverged(out outcome, approx []V) error {
	cp := make([]V, len(approx))
	copy(cp, approx)
	return &NotConvergedError[V]{
		Iterations:    out.sweeps,
		Distance:      out.distance,
		Tolerance:     s.opts.Tolerance,
		Approximation: cp,
	}
}

func (s *Iterative[V]) change(old, v V) float64 {
	return s.opts.Criterion(s.alg.Distance(old, v), s.alg.Norm(v))
}

// jacobiSweep updates auxiliary nodes from cur's states, then states from
// the fresh auxiliary values, writing the new iterate to next.
func (s *Iterative[V]) jacobiSweep(p *problem[V], aux, states []int, cur, next []V) float64 {
	var dist float64
	for _, node := range aux {
		v := p.update(node, cur)
		dist = math.Max(dist, s.change(cur[node], v))
		next[node] = v
	}
	// states read the fresh auxiliary values through cur
	for _, node := range aux {
		cur[node], next[node] = next[node], cur[node]
	}
	for _, node := range states {
		v := p.update(node, cur)
		dist = math.Max(dist, s.change(cur[node], v))
		next[node] = v
	}
	for _, node := range aux {
		next[node] = cur[node]
	}
	return dist
}

// gaussSeidelSweep updates nodes in place in the given order.
func (s *Iterative[V]) gaussSeidelSweep(p *problem[V], order []int, x []V) float64 {
	var dist float64
	for _, node := range order {
		v := p.update(node, x)
		dist = math.Max(dist, s.change(x[node], v))
		x[node] = v
	}
	return dist
}
