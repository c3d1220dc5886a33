package pipeline

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/preprocess"
	"github.com/katalvlaran/stochgraph/solver"
)

// Factory returns a fresh, unbound preprocessor.
type Factory func() preprocess.Preprocessor

type entry struct {
	name    string
	factory Factory
}

// Registry is the ordered table of preprocessors and solvers for values of
// type V. It is not safe for concurrent registration; register everything
// before building a Pipeline.
type Registry[V any] struct {
	preprocessors []entry
	solvers       []solver.Solver
}

// NewRegistry returns an empty registry.
func NewRegistry[V any]() *Registry[V] {
	return &Registry[V]{}
}

// DefaultRegistry registers, in order, reachability-prob0,
// reachability-prob1, ctmc-embed, interval-normalise and reward-infinity,
// followed by an Iterative solver over alg and a LongRun solver, both
// configured with opts. LongRun only takes float64 long-run objectives.
func DefaultRegistry[V any](alg algebra.Algebra[V], opts ...solver.Option) *Registry[V] {
	r := NewRegistry[V]()
	r.mustRegister("reachability-prob0", func() preprocess.Preprocessor { return preprocess.NewProbZero[V]() })
	r.mustRegister("reachability-prob1", func() preprocess.Preprocessor { return preprocess.NewProbOne[V]() })
	r.mustRegister("ctmc-embed", func() preprocess.Preprocessor { return preprocess.NewEmbed(alg) })
	r.mustRegister("interval-normalise", func() preprocess.Preprocessor { return preprocess.NewIntervalNormalise() })
	r.mustRegister("reward-infinity", func() preprocess.Preprocessor { return preprocess.NewRewardInfinity[V]() })
	r.solvers = append(r.solvers, solver.NewIterative(alg, opts...), solver.NewLongRun(opts...))
	return r
}

func (r *Registry[V]) mustRegister(name string, f Factory) {
	if err := r.RegisterPreprocessor(name, f); err != nil {
		panic(err)
	}
}

// RegisterPreprocessor appends a named factory. Registering a name that is
// already present replaces its factory and keeps its position.
func (r *Registry[V]) RegisterPreprocessor(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("%w: preprocessor %q", ErrInvalidRegistration, name)
	}
	for i := range r.preprocessors {
		if r.preprocessors[i].name == name {
			r.preprocessors[i].factory = f
			return nil
		}
	}
	r.preprocessors = append(r.preprocessors, entry{name: name, factory: f})
	return nil
}

// RegisterSolver appends s. Solvers are tried in registration order.
func (r *Registry[V]) RegisterSolver(s solver.Solver) error {
	if s == nil {
		return fmt.Errorf("%w: nil solver", ErrInvalidRegistration)
	}
	r.solvers = append(r.solvers, s)
	return nil
}

// PreferSolver registers s ahead of every solver registered so far.
func (r *Registry[V]) PreferSolver(s solver.Solver) error {
	if s == nil {
		return fmt.Errorf("%w: nil solver", ErrInvalidRegistration)
	}
	r.solvers = append([]solver.Solver{s}, r.solvers...)
	return nil
}

// Preprocessors returns the registered preprocessor names in order.
func (r *Registry[V]) Preprocessors() []string {
	names := make([]string, len(r.preprocessors))
	for i, e := range r.preprocessors {
		names[i] = e.name
	}
	return names
}

// Solvers returns the registered solver names in order.
func (r *Registry[V]) Solvers() []string {
	names := make([]string, len(r.solvers))
	for i, s := range r.solvers {
		names[i] = s.Name()
	}
	return names
}

func (r *Registry[V]) has(name string) bool {
	for _, e := range r.preprocessors {
		if e.name == name {
			return true
		}
	}
	return false
}
