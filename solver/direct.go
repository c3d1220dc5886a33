package solver

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/matrix"
	"github.com/katalvlaran/stochgraph/objective"
)

// DefaultDirectMaxNodes bounds the graphs Direct accepts.
const DefaultDirectMaxNodes = 2048

// Direct solves unbounded reachability on real-valued DTMCs exactly, as the
// linear system (I - P) x = b over the nodes that are neither pinned nor
// targets. The system is dense, so Direct only accepts graphs up to
// MaxNodes nodes.
type Direct struct {
	MaxNodes int
	opts     Options
}

// NewDirect returns a direct solver. Only WithLogger is relevant; invalid
// options surface as ErrOptionViolation from Solve.
func NewDirect(opts ...Option) *Direct {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Direct{MaxNodes: DefaultDirectMaxNodes, opts: o}
}

// Name returns "direct-lu".
func (s *Direct) Name() string { return "direct-lu" }

// CanSolve accepts unbounded reachability over float64 on DTMCs of at most
// MaxNodes nodes.
func (s *Direct) CanSolve(obj objective.Objective) bool {
	if _, ok := obj.(*objective.Reachability[float64]); !ok {
		return false
	}
	g := obj.Graph()
	if obj.Kind() != objective.UnboundedReachability || g.Semantics() != core.DTMC || g.NumNodes() > s.MaxNodes {
		return false
	}
	_, err := core.Weights[float64](g)
	return err == nil
}

// Solve assembles and solves the system and completes obj.
func (s *Direct) Solve(ctx context.Context, obj objective.Objective) error {
	if s.opts.err != nil {
		return s.opts.err
	}
	if !s.CanSolve(obj) {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedObjective, obj.Kind(), obj.Graph())
	}
	typed := obj.(*objective.Reachability[float64])
	g := obj.Graph()
	kind := obj.Kind().String()
	ctx, span := startSolveSpan(ctx, s.Name(), kind, g.NumNodes(), g.NumEdges())
	defer span.End()
	start := time.Now()

	values, free, err := s.solve(ctx, typed)
	elapsed := time.Since(start)
	recordSolveMetrics(ctx, kind, elapsed, 1, err == nil)
	setSolveSpanResult(span, 1, 0, err == nil)
	s.opts.Logger.Debug().
		Str("solver", s.Name()).
		Int("nodes", g.NumNodes()).
		Int("unknowns", free).
		Dur("elapsed", elapsed).
		Err(err).
		Msg("Linear system solved")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	typed.Complete(values)
	return nil
}

func (s *Direct) solve(ctx context.Context, obj *objective.Reachability[float64]) ([]float64, int, error) {
	p, err := lower(algebra.Reals, solvable[float64](obj))
	if err != nil {
		return nil, 0, err
	}
	g := p.graph
	n := g.NumNodes()

	row := make([]int, n)
	var unknowns []int
	for node := 0; node < n; node++ {
		row[node] = -1
		if !p.fixed.Get(node) {
			row[node] = len(unknowns)
			unknowns = append(unknowns, node)
		}
	}
	if len(unknowns) == 0 {
		return p.values, 0, nil
	}
	if err = ctx.Err(); err != nil {
		return nil, len(unknowns), err
	}

	a, err := matrix.Identity(len(unknowns))
	if err != nil {
		return nil, len(unknowns), err
	}
	b := make([]float64, len(unknowns))
	for i, node := range unknowns {
		succs := g.Successors(node)
		for k, w := range p.weights.Row(node) {
			succ := int(succs[k])
			if j := row[succ]; j >= 0 {
				if err = a.Add(i, j, -w); err != nil {
					return nil, len(unknowns), err
				}
			} else {
				b[i] += w * p.values[succ]
			}
		}
	}
	x, err := matrix.SolveDense(a, b)
	if err != nil {
		return nil, len(unknowns), fmt.Errorf("solver: %s: %w", s.Name(), err)
	}
	for i, node := range unknowns {
		p.values[node] = algebra.Reals.ClampUnit(x[i])
	}
	return p.values, len(unknowns), nil
}
