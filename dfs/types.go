package dfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/stochgraph/bitset"
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")
)

// Option configures optional behavior of SCC.
type Option func(*options)

// options holds settings for a traversal.
type options struct {
	ctx   context.Context // allows cancellation; defaults to Background
	nodes *bitset.BitSet  // restricts the traversal; nil means all nodes
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithCancelContext returns an Option that sets the cancellation context.
// Passing a nil context has no effect.
func WithCancelContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithNodes restricts the traversal to the subgraph induced by nodes.
func WithNodes(nodes *bitset.BitSet) Option {
	return func(o *options) { o.nodes = nodes }
}
