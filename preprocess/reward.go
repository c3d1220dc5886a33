package preprocess

import (
	"context"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/components"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
)

// RewardInfinity marks the nodes whose expected accumulated reward is
// unbounded: those that miss the sinks with positive probability under the
// objective's direction. Maximising, the controller may avoid the sinks
// whenever they are not reached with probability one regardless of choices;
// minimising, it is forced to miss them only where it cannot reach them
// with probability one.
type RewardInfinity[V any] struct {
	binding[*objective.Cumulative[V]]
}

// NewRewardInfinity returns an unbound RewardInfinity.
func NewRewardInfinity[V any]() *RewardInfinity[V] {
	return &RewardInfinity[V]{binding[*objective.Cumulative[V]]{
		name: "reward-infinity",
		match: Match{
			Kinds:      []objective.Kind{objective.UnboundedCumulative},
			ValueTypes: []core.ValueType{core.Real},
		},
	}}
}

// Process computes the infinity set.
func (r *RewardInfinity[V]) Process(ctx context.Context) error {
	obj := r.mustHandle()
	if err := ctx.Err(); err != nil {
		return err
	}
	g := obj.Graph()
	sinks := obj.Sinks()
	var one *bitset.BitSet
	if obj.Direction() == core.Min {
		one = components.ReachMaxOne(g, sinks)
	} else {
		one = components.ReachMinOne(g, sinks)
	}
	obj.SetInfinite(one.Complement(g.NumNodes()))
	return nil
}
