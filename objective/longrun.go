package objective

import (
	"github.com/katalvlaran/stochgraph/core"
)

// LongRun is the expected average reward per state visited, in the limit of
// an infinite run. Rewards of auxiliary nodes are ignored.
type LongRun[V any] struct {
	Base[V]
	rewards []V
}

// NewLongRun poses the long-run average of rewards. A nil rewards slice
// reads the graph's core.PropReward column. WithScheduler is rejected with
// ErrLongRunScheduler.
func NewLongRun[V any](g *core.Graph, rewards []V, opts ...Option) (*LongRun[V], error) {
	base, _, err := newBase[V](UnboundedLRA, g, opts)
	if err != nil {
		return nil, err
	}
	if rewards, err = stateRewards(g, rewards); err != nil {
		return nil, err
	}
	return &LongRun[V]{Base: base, rewards: rewards}, nil
}

// Rewards returns the state reward vector.
func (l *LongRun[V]) Rewards() []V { return l.rewards }
