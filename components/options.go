package components

import (
	"context"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/scheduler"
)

// Option configures a reachability computation.
type Option func(*options)

type options struct {
	nodes         *bitset.BitSet
	sched         *scheduler.Settable
	excludeTarget bool
	ctx           context.Context
}

// WithNodes restricts the computation to the given domain. Nodes outside it
// never enter the result, except target nodes themselves.
func WithNodes(nodes *bitset.BitSet) Option {
	return func(o *options) { o.nodes = nodes }
}

// WithScheduler records the edge through which each PlayerOne state joins
// the result.
func WithScheduler(s *scheduler.Settable) Option {
	return func(o *options) { o.sched = s }
}

// WithoutTarget removes the target nodes from the returned set.
func WithoutTarget() Option {
	return func(o *options) { o.excludeTarget = true }
}

// WithCancelContext makes EndComponents stop early when ctx is cancelled.
func WithCancelContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

func collect(n int, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.nodes == nil {
		o.nodes = bitset.Range(0, n)
	}
	return o
}
