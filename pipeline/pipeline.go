package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
)

// Option configures a Pipeline.
type Option func(*Options)

// Options holds the pipeline settings.
type Options struct {
	// Disabled lists preprocessor names that are never run.
	Disabled []string
	// Concurrency bounds SolveAll; zero or less means unbounded.
	Concurrency int
	Logger      zerolog.Logger
}

// WithDisabled skips the named preprocessors.
func WithDisabled(names ...string) Option {
	return func(o *Options) { o.Disabled = append(o.Disabled, names...) }
}

// WithConcurrency bounds the number of objectives SolveAll runs at once.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Pipeline runs objectives through a Registry.
type Pipeline[V any] struct {
	reg      *Registry[V]
	opts     Options
	disabled map[string]bool
}

// New returns a pipeline over reg. Disabling a name reg does not know
// returns ErrUnknownPreprocessor.
func New[V any](reg *Registry[V], opts ...Option) (*Pipeline[V], error) {
	o := Options{Logger: log.Logger}
	for _, opt := range opts {
		opt(&o)
	}
	p := &Pipeline[V]{reg: reg, opts: o, disabled: make(map[string]bool, len(o.Disabled))}
	for _, name := range o.Disabled {
		if !reg.has(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreprocessor, name)
		}
		p.disabled[name] = true
	}
	return p, nil
}

// Solve preprocesses and solves obj. Errors from preprocessors and solvers
// are wrapped with the name of the step that failed.
func (p *Pipeline[V]) Solve(ctx context.Context, obj objective.Objective) error {
	if obj == nil {
		return ErrNilObjective
	}
	if obj.Stage() == objective.Solved {
		return ErrAlreadySolved
	}
	start := time.Now()
	err := p.solve(ctx, obj)
	solveDuration.WithLabelValues(obj.Kind().String(), resultLabel(err)).Observe(time.Since(start).Seconds())
	return err
}

func (p *Pipeline[V]) solve(ctx context.Context, obj objective.Objective) error {
	logger := p.opts.Logger.With().
		Str("query", uuid.NewString()).
		Str("objective", obj.Kind().String()).
		Logger()
	obj.Graph().ComputePredecessors()

	for _, e := range p.reg.preprocessors {
		if p.disabled[e.name] {
			continue
		}
		pp := e.factory()
		pp.Bind(obj)
		if !pp.CanHandle() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		t0 := time.Now()
		err := pp.Process(ctx)
		preprocessorRuns.WithLabelValues(e.name, resultLabel(err)).Inc()
		if err != nil {
			return fmt.Errorf("pipeline: %s: %w", e.name, err)
		}
		obj.MarkPreprocessed()
		logger.Debug().
			Str("preprocessor", e.name).
			Dur("elapsed", time.Since(t0)).
			Msg("Preprocessor applied")
	}

	for _, s := range p.reg.solvers {
		if !s.CanSolve(obj) {
			continue
		}
		logger.Debug().Str("solver", s.Name()).Msg("Solver selected")
		if err := s.Solve(ctx, obj); err != nil {
			return fmt.Errorf("pipeline: %s: %w", s.Name(), err)
		}
		return nil
	}

	g := obj.Graph()
	unsupportedTotal.WithLabelValues(obj.Kind().String()).Inc()
	logger.Debug().
		Str("semantics", g.Semantics().String()).
		Str("value_type", g.ValueType().String()).
		Msg("No solver accepts objective")
	return &UnsupportedError{Kind: obj.Kind(), Semantics: g.Semantics(), ValueType: g.ValueType()}
}

// SolveAll solves independent objectives concurrently. The predecessor
// index of every distinct graph is computed before any objective starts.
// The first error cancels the remaining objectives and is returned.
func (p *Pipeline[V]) SolveAll(ctx context.Context, objs ...objective.Objective) error {
	seen := make(map[*core.Graph]bool)
	for i, obj := range objs {
		if obj == nil {
			return fmt.Errorf("objective %d: %w", i, ErrNilObjective)
		}
		if g := obj.Graph(); !seen[g] {
			seen[g] = true
			g.ComputePredecessors()
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	if p.opts.Concurrency > 0 {
		g.SetLimit(p.opts.Concurrency)
	}
	for i, obj := range objs {
		g.Go(func() error {
			if err := p.Solve(gCtx, obj); err != nil {
				return fmt.Errorf("objective %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}
