package builder

import "math/rand"

// Option customises a constructor run by mutating config before any node is
// added.
type Option func(*config)

// config aggregates the knobs used by constructors. It is passed by value.
type config struct {
	// rng drives stochastic constructors; nil means none was configured.
	rng *rand.Rand
	// minWeight is the smallest raw weight drawn before normalisation.
	minWeight float64
}

const defaultMinWeight = 0.05

func newConfig(opts ...Option) config {
	cfg := config{minWeight: defaultMinWeight}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithMinWeight sets the smallest raw weight drawn for a random edge before
// a row is normalised. Panics unless 0 < w < 1.
func WithMinWeight(w float64) Option {
	if !(w > 0 && w < 1) {
		panic("builder: WithMinWeight(w) needs 0 < w < 1")
	}
	return func(c *config) { c.minWeight = w }
}
