package builder

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/core"
)

// Constructor appends a fixture to b using the resolved config. Node IDs
// start at b.NumNodes(). Constructors validate parameters before adding
// anything and never panic.
type Constructor func(b *core.Builder[float64], cfg config) error

// Build creates a core.Builder with gopts, resolves the options and applies
// all constructors in order. Constructors emitting player nodes need a
// graph semantics that allows them, e.g. core.WithSemantics(core.MDP).
func Build(gopts []core.GraphOption, opts []Option, cons ...Constructor) (*core.Graph, error) {
	b := core.NewBuilder[float64](gopts...)
	cfg := newConfig(opts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(b, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}
	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
	}
	return g, nil
}

// MustBuild is Build that panics on error. Intended for tests and benchmarks.
func MustBuild(gopts []core.GraphOption, opts []Option, cons ...Constructor) *core.Graph {
	g, err := Build(gopts, opts, cons...)
	if err != nil {
		panic(err)
	}
	return g
}
