package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/components"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
)

// DefaultAperiodicity is the weight LongRun gives to the real transition in
// every relative value iteration step; the rest stays in place.
const DefaultAperiodicity = 0.5

// LongRun computes long-run average rewards over float64 on DTMCs and MDPs.
// Rewards are collected in states, one per state visited.
type LongRun struct {
	// Aperiodicity must lie in (0, 1].
	Aperiodicity float64
	opts         Options
}

// NewLongRun returns a long-run average solver. Tolerance, MaxIterations,
// Criterion and Logger apply; invalid options surface as ErrOptionViolation
// from Solve.
func NewLongRun(opts ...Option) *LongRun {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &LongRun{Aperiodicity: DefaultAperiodicity, opts: o}
}

// Name returns "long-run-relative".
func (s *LongRun) Name() string { return "long-run-relative" }

// CanSolve accepts long-run averages over float64 on DTMC and MDP graphs.
// Solve additionally requires PlayerTwo-free graphs whose auxiliary nodes
// lead straight to states.
func (s *LongRun) CanSolve(obj objective.Objective) bool {
	if _, ok := obj.(*objective.LongRun[float64]); !ok {
		return false
	}
	g := obj.Graph()
	switch g.Semantics() {
	case core.DTMC, core.MDP:
	default:
		return false
	}
	_, err := core.Weights[float64](g)
	return err == nil
}

// Solve computes the optimal long-run average of every node and completes
// obj. Auxiliary nodes get the expectation over their successors.
//
// Steps:
//  1. Decompose the graph into maximal end components.
//  2. Find the optimal gain of each component by relative value iteration
//     on the component alone.
//  3. Iterate over the whole graph, letting each component state stop with
//     its component's gain. Max starts from the lowest gain, Min from the
//     highest.
//
// Time complexity: O(V·(V + E)) for step 1 plus O(E) per sweep.
// Memory: O(V).
func (s *LongRun) Solve(ctx context.Context, obj objective.Objective) error {
	if s.opts.err != nil {
		return s.opts.err
	}
	if !(s.Aperiodicity > 0 && s.Aperiodicity <= 1) {
		return fmt.Errorf("%w: aperiodicity must lie in (0, 1] (%g)", ErrOptionViolation, s.Aperiodicity)
	}
	if !s.CanSolve(obj) {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedObjective, obj.Kind(), obj.Graph())
	}
	typed := obj.(*objective.LongRun[float64])
	g := obj.Graph()
	kind := obj.Kind().String()
	ctx, span := startSolveSpan(ctx, s.Name(), kind, g.NumNodes(), g.NumEdges())
	defer span.End()
	start := time.Now()

	values, out, mecs, err := s.solve(ctx, typed)
	elapsed := time.Since(start)
	recordSolveMetrics(ctx, kind, elapsed, out.sweeps, out.converged)
	setSolveSpanResult(span, out.sweeps, out.distance, out.converged)
	s.opts.Logger.Debug().
		Str("solver", s.Name()).
		Str("direction", obj.Direction().String()).
		Int("nodes", g.NumNodes()).
		Int("end_components", mecs).
		Int("iterations", out.sweeps).
		Bool("converged", out.converged).
		Dur("elapsed", elapsed).
		Err(err).
		Msg("Long-run average solved")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	typed.Complete(values)
	return nil
}

// longRun is a long-run objective lowered to arrays.
type longRun struct {
	graph   *core.Graph
	weights *core.EdgeValues[float64]
	rewards []float64
	max     bool
	tau     float64
}

func (s *LongRun) solve(ctx context.Context, obj *objective.LongRun[float64]) ([]float64, outcome, int, error) {
	out := outcome{distance: math.Inf(1)}
	g := obj.Graph()
	w, err := core.Weights[float64](g)
	if err != nil {
		return nil, out, 0, fmt.Errorf("solver: %w", err)
	}
	if err = checkShape(g); err != nil {
		return nil, out, 0, err
	}
	lr := &longRun{
		graph:   g,
		weights: w,
		rewards: obj.Rewards(),
		max:     obj.Direction() == core.Max || g.Semantics() == core.DTMC,
		tau:     s.Aperiodicity,
	}
	n := g.NumNodes()

	mecs, err := components.EndComponents(g, components.WithCancelContext(ctx))
	if err != nil {
		return nil, out, 0, err
	}

	// stop[node] is what a node may settle for; NaN when it has no option.
	stop := make([]float64, n)
	for i := range stop {
		stop[i] = math.NaN()
	}
	h := make([]float64, n)
	next := make([]float64, n)
	for _, mec := range mecs {
		gain, sweeps, err := s.gain(ctx, lr, mec, h, next)
		out.sweeps += sweeps
		if err != nil {
			return nil, out, len(mecs), err
		}
		for node := range mec.All() {
			stop[node] = gain
		}
	}
	for node := 0; node < n; node++ {
		if g.IsState(node) && g.NumSuccessors(node) == 0 {
			stop[node] = lr.rewards[node]
		}
	}

	values := obj.ResultBuffer()
	if values == nil {
		values = make([]float64, n)
	}
	sweeps, dist, err := s.settle(ctx, lr, stop, values)
	out.sweeps += sweeps
	out.distance = dist
	if err != nil {
		return nil, out, len(mecs), err
	}
	out.converged = true
	for node := 0; node < n; node++ {
		if !g.IsState(node) {
			values[node] = lr.expect(node, values)
		}
	}
	return values, out, len(mecs), nil
}

// checkShape rejects PlayerTwo nodes and auxiliary nodes that have no
// successors or lead to other auxiliary nodes.
func checkShape(g *core.Graph) error {
	for node := 0; node < g.NumNodes(); node++ {
		if p := g.Player(node); p != core.PlayerOne && p != core.PlayerStochastic {
			return fmt.Errorf("%w: node %d is owned by %s", ErrUnsupportedObjective, node, p)
		}
		if g.IsState(node) {
			continue
		}
		succs := g.Successors(node)
		if len(succs) == 0 {
			return fmt.Errorf("%w: auxiliary node %d has no successors", ErrUnsupportedObjective, node)
		}
		for _, sc := range succs {
			if !g.IsState(int(sc)) {
				return fmt.Errorf("%w: auxiliary node %d leads to auxiliary node %d", ErrUnsupportedObjective, node, sc)
			}
		}
	}
	return nil
}

// expect returns the value of moving to node: its own value for a state,
// the expectation over its successors otherwise.
func (lr *longRun) expect(node int, h []float64) float64 {
	if lr.graph.IsState(node) {
		return h[node]
	}
	succs := lr.graph.Successors(node)
	var acc float64
	for i, w := range lr.weights.Row(node) {
		acc += w * h[succs[i]]
	}
	return acc
}

// step returns the optimal one-step successor value of state node, only
// considering successors in within when it is non-nil. ok is false when no
// successor qualifies.
func (lr *longRun) step(node int, h []float64, within *bitset.BitSet) (v float64, ok bool) {
	g := lr.graph
	succs := g.Successors(node)
	if g.Player(node) == core.PlayerStochastic {
		for i, w := range lr.weights.Row(node) {
			v += w * lr.expect(int(succs[i]), h)
		}
		return v, len(succs) > 0
	}
	for _, sc := range succs {
		x := int(sc)
		if within != nil && !within.Get(x) {
			continue
		}
		e := lr.expect(x, h)
		if !ok || lr.better(e, v) {
			v, ok = e, true
		}
	}
	return v, ok
}

func (lr *longRun) better(a, b float64) bool {
	if lr.max {
		return a > b
	}
	return a < b
}

// gain runs relative value iteration on the states of mec until the span of
// the per-step differences drops below the tolerance, and returns its
// midpoint.
func (s *LongRun) gain(ctx context.Context, lr *longRun, mec *bitset.BitSet, h, next []float64) (float64, int, error) {
	var states []int
	for node := range mec.All() {
		if lr.graph.IsState(node) {
			states = append(states, node)
			h[node] = 0
		}
	}
	if len(states) == 0 {
		return 0, 0, nil
	}
	for sweeps := 0; ; {
		if sweeps >= s.opts.MaxIterations {
			approx := make([]float64, len(h))
			copy(approx, h)
			return 0, sweeps, &NotConvergedError[float64]{
				Iterations:    sweeps,
				Distance:      math.Inf(1),
				Tolerance:     s.opts.Tolerance,
				Approximation: approx,
			}
		}
		if err := ctx.Err(); err != nil {
			return 0, sweeps, err
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, node := range states {
			move, _ := lr.step(node, h, mec)
			v := lr.rewards[node] + (1-lr.tau)*h[node] + lr.tau*move
			next[node] = v
			d := v - h[node]
			lo, hi = math.Min(lo, d), math.Max(hi, d)
		}
		sweeps++
		ref := next[states[0]]
		for _, node := range states {
			h[node] = next[node] - ref
		}
		if hi-lo <= s.opts.Tolerance {
			return (lo + hi) / 2, sweeps, nil
		}
	}
}

// settle iterates the stopping problem over all states in place.
func (s *LongRun) settle(ctx context.Context, lr *longRun, stop, values []float64) (int, float64, error) {
	g := lr.graph
	init := math.NaN()
	for _, v := range stop {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(init) || lr.better(init, v) {
			init = v
		}
	}
	if math.IsNaN(init) {
		init = 0
	}
	var states []int
	for node := range values {
		values[node] = init
		if g.IsState(node) {
			states = append(states, node)
		}
	}

	dist := math.Inf(1)
	for sweeps := 0; ; {
		if sweeps >= s.opts.MaxIterations {
			approx := make([]float64, len(values))
			copy(approx, values)
			return sweeps, dist, &NotConvergedError[float64]{
				Iterations:    sweeps,
				Distance:      dist,
				Tolerance:     s.opts.Tolerance,
				Approximation: approx,
			}
		}
		if err := ctx.Err(); err != nil {
			return sweeps, dist, err
		}
		dist = 0
		for _, node := range states {
			v, ok := lr.step(node, values, nil)
			if st := stop[node]; !math.IsNaN(st) && (!ok || lr.better(st, v)) {
				v = st
			}
			dist = math.Max(dist, s.opts.Criterion(math.Abs(v-values[node]), math.Abs(v)))
			values[node] = v
		}
		sweeps++
		if dist <= s.opts.Tolerance {
			return sweeps, dist, nil
		}
	}
}
