package builder

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/katalvlaran/stochgraph/core"
)

const (
	methodRandomDTMC = "RandomDTMC"
	methodRandomMDP  = "RandomMDP"
)

// RandomDTMC appends n states, each with outDegree distinct successors drawn
// uniformly among the n new states and random weights summing to one.
func RandomDTMC(n, outDegree int) Constructor {
	return func(b *core.Builder[float64], cfg config) error {
		if err := checkRandom(methodRandomDTMC, n, outDegree, cfg); err != nil {
			return err
		}
		base := b.NumNodes()
		for i := 0; i < n; i++ {
			b.AddState(distribution(cfg, base, n, outDegree)...)
		}
		return nil
	}
}

// RandomMDP appends states player-one states followed by their
// states*actions distribution nodes. Action a of state s is the
// distribution node at offset states + s*actions + a, with outDegree
// distinct successor states and random weights summing to one.
func RandomMDP(states, actions, outDegree int) Constructor {
	return func(b *core.Builder[float64], cfg config) error {
		if err := checkRandom(methodRandomMDP, states, outDegree, cfg); err != nil {
			return err
		}
		if actions < 1 {
			return fmt.Errorf("%s: actions=%d < 1: %w", methodRandomMDP, actions, ErrInvalidDegree)
		}
		base := b.NumNodes()
		choices := make([]int, actions)
		for s := 0; s < states; s++ {
			for a := range choices {
				choices[a] = base + states + s*actions + a
			}
			b.AddChoice(core.PlayerOne, choices...)
		}
		for i := 0; i < states*actions; i++ {
			b.AddDistribution(distribution(cfg, base, states, outDegree)...)
		}
		return nil
	}
}

func checkRandom(method string, n, outDegree int, cfg config) error {
	if n < 1 {
		return fmt.Errorf("%s: n=%d < min=1: %w", method, n, ErrTooFewNodes)
	}
	if outDegree < 1 || outDegree > n {
		return fmt.Errorf("%s: outDegree=%d not in [1,%d]: %w", method, outDegree, n, ErrInvalidDegree)
	}
	if cfg.rng == nil {
		return fmt.Errorf("%s: %w", method, ErrNeedRandSource)
	}
	return nil
}

// distribution draws k distinct targets in [base, base+n) with weights
// summing to one. Targets come out in ascending order.
func distribution(cfg config, base, n, k int) []core.Edge[float64] {
	targets := sample(cfg.rng, n, k)
	edges := make([]core.Edge[float64], k)
	var sum float64
	for i, t := range targets {
		w := cfg.minWeight + (1-cfg.minWeight)*cfg.rng.Float64()
		edges[i] = core.Edge[float64]{To: base + t, Weight: w}
		sum += w
	}
	for i := range edges {
		edges[i].Weight /= sum
	}
	return edges
}

// sample picks k distinct values from [0, n) with Floyd's algorithm.
func sample(rng *rand.Rand, n, k int) []int {
	picked := make(map[int]bool, k)
	for j := n - k; j < n; j++ {
		t := rng.Intn(j + 1)
		if picked[t] {
			t = j
		}
		picked[t] = true
	}
	out := make([]int, 0, k)
	for t := range picked {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
