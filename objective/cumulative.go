package objective

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
)

// Cumulative is the expected reward accumulated in states. The unbounded
// form accumulates until a sink is reached; the bounded form over Bound
// steps, optionally discounted.
type Cumulative[V any] struct {
	Base[V]
	rewards     []V
	sinks       *bitset.BitSet
	infinite    *bitset.BitSet
	discount    V
	hasDiscount bool
}

// NewCumulative poses the expected reward accumulated until sinks is
// reached. A nil rewards slice reads the graph's core.PropReward column.
func NewCumulative[V any](g *core.Graph, rewards []V, sinks *bitset.BitSet, opts ...Option) (*Cumulative[V], error) {
	c, err := newCumulative[V](UnboundedCumulative, g, rewards, 0, opts)
	if err != nil {
		return nil, err
	}
	if err = checkSet(g, sinks, "sinks"); err != nil {
		return nil, err
	}
	c.sinks = sinks.Clone()
	return c, nil
}

// NewBoundedCumulative poses the expected reward accumulated over bound steps.
func NewBoundedCumulative[V any](g *core.Graph, rewards []V, bound int, opts ...Option) (*Cumulative[V], error) {
	if bound < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeBound, bound)
	}
	c, err := newCumulative[V](BoundedCumulative, g, rewards, bound, opts)
	if err != nil {
		return nil, err
	}
	c.sinks = bitset.New(g.NumNodes())
	return c, nil
}

func newCumulative[V any](kind Kind, g *core.Graph, rewards []V, bound int, opts []Option) (*Cumulative[V], error) {
	base, s, err := newBase[V](kind, g, opts)
	if err != nil {
		return nil, err
	}
	base.bound = bound
	if rewards, err = stateRewards(g, rewards); err != nil {
		return nil, err
	}
	c := &Cumulative[V]{
		Base:     base,
		rewards:  rewards,
		infinite: bitset.New(g.NumNodes()),
	}
	if s.discount != nil {
		d, ok := s.discount.(V)
		if !ok {
			return nil, fmt.Errorf("objective: discount has type %T", s.discount)
		}
		c.discount, c.hasDiscount = d, true
	}
	return c, nil
}

// stateRewards checks rewards against g, reading the core.PropReward
// column when rewards is nil.
func stateRewards[V any](g *core.Graph, rewards []V) ([]V, error) {
	if rewards == nil {
		col, err := core.NodeColumn[V](g, core.PropReward)
		if err != nil {
			if errors.Is(err, core.ErrPropertyNotFound) {
				return nil, ErrNoRewards
			}
			return nil, fmt.Errorf("objective: %w", err)
		}
		rewards = col.Values()
	}
	if len(rewards) != g.NumNodes() {
		return nil, fmt.Errorf("%w: %d rewards, %d nodes", ErrRewardSize, len(rewards), g.NumNodes())
	}
	return rewards, nil
}

// Rewards returns the state reward vector.
func (c *Cumulative[V]) Rewards() []V { return c.rewards }

// Sinks returns the nodes where accumulation stops.
func (c *Cumulative[V]) Sinks() *bitset.BitSet { return c.sinks }

// Infinite returns the nodes whose expected reward is unbounded.
func (c *Cumulative[V]) Infinite() *bitset.BitSet { return c.infinite }

// SetInfinite replaces the infinity set.
func (c *Cumulative[V]) SetInfinite(inf *bitset.BitSet) {
	c.mustBeOpen()
	c.infinite = inf
}

// Discount returns the discount factor and whether one was set.
func (c *Cumulative[V]) Discount() (V, bool) { return c.discount, c.hasDiscount }
