package builder

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/core"
)

const (
	methodChain = "Chain"
	methodCycle = "Cycle"

	minChainNodes = 2
	minCycleNodes = 1
)

// Chain appends n states where state i advances to i+1 with probability p
// and stays put otherwise. The last state is absorbing. A self-loop of
// weight 0 is never emitted, so Chain(n, 1) is a plain path.
func Chain(n int, p float64) Constructor {
	return func(b *core.Builder[float64], _ config) error {
		if n < minChainNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodChain, n, minChainNodes, ErrTooFewNodes)
		}
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%s: p=%g not in [0,1]: %w", methodChain, p, ErrInvalidProbability)
		}
		base := b.NumNodes()
		for i := 0; i < n-1; i++ {
			node := base + i
			var edges []core.Edge[float64]
			if p > 0 {
				edges = append(edges, core.Edge[float64]{To: node + 1, Weight: p})
			}
			if p < 1 {
				edges = append(edges, core.Edge[float64]{To: node, Weight: 1 - p})
			}
			b.AddState(edges...)
		}
		last := base + n - 1
		b.AddState(core.Edge[float64]{To: last, Weight: 1})
		return nil
	}
}

// Cycle appends n states each moving to the next with probability one; the
// last returns to the first.
func Cycle(n int) Constructor {
	return func(b *core.Builder[float64], _ config) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewNodes)
		}
		base := b.NumNodes()
		for i := 0; i < n; i++ {
			b.AddState(core.Edge[float64]{To: base + (i+1)%n, Weight: 1})
		}
		return nil
	}
}
