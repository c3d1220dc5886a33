package preprocess

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
)

// ErrInfeasibleDistribution is returned when interval weights admit no
// probability distribution.
var ErrInfeasibleDistribution = errors.New("preprocess: interval distribution is infeasible")

// Preprocessor rewrites an objective before it is solved.
type Preprocessor interface {
	// Name identifies the preprocessor in logs, metrics and configuration.
	Name() string
	// Match declares the objectives the preprocessor applies to.
	Match() Match
	// Bind attaches the objective. Binding twice panics.
	Bind(obj objective.Objective)
	// CanHandle reports whether the bound objective matches.
	CanHandle() bool
	// Process rewrites the bound objective.
	Process(ctx context.Context) error
}

// Match is a declarative applicability filter. Empty fields match anything.
type Match struct {
	Kinds      []objective.Kind
	Semantics  []core.Semantics
	ValueTypes []core.ValueType
}

// Matches reports whether obj's kind and graph tags are all accepted.
func (m Match) Matches(obj objective.Objective) bool {
	g := obj.Graph()
	return matchOne(m.Kinds, obj.Kind()) &&
		matchOne(m.Semantics, g.Semantics()) &&
		matchOne(m.ValueTypes, g.ValueType())
}

func matchOne[T comparable](accepted []T, v T) bool {
	return len(accepted) == 0 || slices.Contains(accepted, v)
}

// binding is the Bind/CanHandle plumbing shared by every preprocessor. T is
// the concrete objective type the preprocessor needs.
type binding[T objective.Objective] struct {
	name  string
	match Match
	obj   T
	bound bool
	typed bool
}

func (b *binding[T]) Name() string { return b.name }
func (b *binding[T]) Match() Match { return b.match }

func (b *binding[T]) Bind(obj objective.Objective) {
	if b.bound {
		panic(fmt.Sprintf("preprocess: %s bound twice", b.name))
	}
	b.bound = true
	b.obj, b.typed = obj.(T)
}

func (b *binding[T]) CanHandle() bool {
	if !b.bound {
		panic(fmt.Sprintf("preprocess: %s used before Bind", b.name))
	}
	return b.typed && b.match.Matches(b.obj)
}

func (b *binding[T]) mustHandle() T {
	if !b.CanHandle() {
		panic(fmt.Sprintf("preprocess: %s cannot handle the bound objective", b.name))
	}
	return b.obj
}
