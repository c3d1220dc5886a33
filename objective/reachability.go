package objective

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
)

// Reachability is the probability of reaching Target, optionally within
// Bound steps. ZeroSet lists nodes known to have probability zero.
type Reachability[V any] struct {
	Base[V]
	target  *bitset.BitSet
	zeroSet *bitset.BitSet
}

// NewReachability poses the unbounded reachability objective for target.
// The target set is cloned.
func NewReachability[V any](g *core.Graph, target *bitset.BitSet, opts ...Option) (*Reachability[V], error) {
	return newReachability[V](UnboundedReachability, g, target, 0, opts)
}

// NewBoundedReachability poses the probability of reaching target within
// bound steps.
func NewBoundedReachability[V any](g *core.Graph, target *bitset.BitSet, bound int, opts ...Option) (*Reachability[V], error) {
	if bound < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeBound, bound)
	}
	return newReachability[V](BoundedReachability, g, target, bound, opts)
}

func newReachability[V any](kind Kind, g *core.Graph, target *bitset.BitSet, bound int, opts []Option) (*Reachability[V], error) {
	base, _, err := newBase[V](kind, g, opts)
	if err != nil {
		return nil, err
	}
	if err = checkSet(g, target, "target"); err != nil {
		return nil, err
	}
	base.bound = bound
	return &Reachability[V]{
		Base:    base,
		target:  target.Clone(),
		zeroSet: bitset.New(g.NumNodes()),
	}, nil
}

// Target returns the target set. Callers must not mutate it; use SetTarget.
func (r *Reachability[V]) Target() *bitset.BitSet { return r.target }

// SetTarget replaces the target set.
func (r *Reachability[V]) SetTarget(t *bitset.BitSet) {
	r.mustBeOpen()
	r.target = t
}

// ZeroSet returns the nodes known to have probability zero.
func (r *Reachability[V]) ZeroSet() *bitset.BitSet { return r.zeroSet }

// SetZeroSet replaces the zero set.
func (r *Reachability[V]) SetZeroSet(z *bitset.BitSet) {
	r.mustBeOpen()
	r.zeroSet = z
}
