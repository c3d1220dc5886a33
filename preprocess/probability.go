package preprocess

import (
	"context"

	"github.com/katalvlaran/stochgraph/components"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
)

// ProbZero adds the nodes that cannot reach the target under the
// objective's direction to the zero set.
type ProbZero[V any] struct {
	binding[*objective.Reachability[V]]
}

// NewProbZero returns an unbound ProbZero.
func NewProbZero[V any]() *ProbZero[V] {
	return &ProbZero[V]{binding[*objective.Reachability[V]]{
		name: "reachability-prob0",
		match: Match{
			Kinds: []objective.Kind{objective.UnboundedReachability, objective.BoundedReachability},
		},
	}}
}

// Process extends the zero set.
func (p *ProbZero[V]) Process(ctx context.Context) error {
	obj := p.mustHandle()
	if err := ctx.Err(); err != nil {
		return err
	}
	g := obj.Graph()
	zero := obj.ZeroSet().Clone()
	zero.Or(components.ProbZero(g, obj.Target(), obj.Direction()))
	obj.SetZeroSet(zero)
	return nil
}

// ProbOne replaces the target with the nodes that reach it with probability
// one under the objective's direction. For Max it also records the
// qualitative decisions in the objective's scheduler draft.
type ProbOne[V any] struct {
	binding[*objective.Reachability[V]]
}

// NewProbOne returns an unbound ProbOne.
func NewProbOne[V any]() *ProbOne[V] {
	return &ProbOne[V]{binding[*objective.Reachability[V]]{
		name: "reachability-prob1",
		match: Match{
			Kinds:      []objective.Kind{objective.UnboundedReachability},
			ValueTypes: []core.ValueType{core.Real},
		},
	}}
}

// Process enlarges the target.
func (p *ProbOne[V]) Process(ctx context.Context) error {
	obj := p.mustHandle()
	if err := ctx.Err(); err != nil {
		return err
	}
	var opts []components.Option
	if s := obj.SchedulerDraft(); s != nil {
		opts = append(opts, components.WithScheduler(s))
	}
	obj.SetTarget(components.ProbOne(obj.Graph(), obj.Target(), obj.Direction(), opts...))
	return nil
}
