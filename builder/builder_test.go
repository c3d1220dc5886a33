package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgraph/builder"
	"github.com/katalvlaran/stochgraph/core"
)

func rowSum(t *testing.T, g *core.Graph, node int) float64 {
	t.Helper()
	w, err := core.Weights[float64](g)
	require.NoError(t, err)
	var sum float64
	for _, x := range w.Row(node) {
		sum += x
	}
	return sum
}

func TestChain(t *testing.T) {
	g, err := builder.Build(nil, nil, builder.Chain(3, 0.25))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 5, g.NumEdges())
	assert.Equal(t, []int32{1, 0}, g.Successors(0))
	assert.Equal(t, []int32{2}, g.Successors(2))
	for node := 0; node < g.NumNodes(); node++ {
		assert.InDelta(t, 1.0, rowSum(t, g, node), 1e-12)
	}

	path, err := builder.Build(nil, nil, builder.Chain(3, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, path.NumEdges())
}

func TestCycleComposition(t *testing.T) {
	g, err := builder.Build(nil, nil, builder.Chain(2, 1), builder.Cycle(3))
	require.NoError(t, err)
	assert.Equal(t, 5, g.NumNodes())
	assert.Equal(t, []int32{3}, g.Successors(2))
	assert.Equal(t, []int32{2}, g.Successors(4))
}

func TestRandomDTMC_Deterministic(t *testing.T) {
	opts := []builder.Option{builder.WithSeed(42)}
	a, err := builder.Build(nil, opts, builder.RandomDTMC(50, 3))
	require.NoError(t, err)
	b, err := builder.Build(nil, opts, builder.RandomDTMC(50, 3))
	require.NoError(t, err)

	wa, _ := core.Weights[float64](a)
	wb, _ := core.Weights[float64](b)
	assert.Equal(t, wa.Values(), wb.Values())
	for node := 0; node < a.NumNodes(); node++ {
		succs := a.Successors(node)
		require.Len(t, succs, 3)
		assert.Equal(t, succs, b.Successors(node))
		assert.Less(t, succs[0], succs[1], "distinct ascending successors")
		assert.Less(t, succs[1], succs[2])
		assert.InDelta(t, 1.0, rowSum(t, a, node), 1e-12)
	}
}

func TestRandomMDP(t *testing.T) {
	g, err := builder.Build(
		[]core.GraphOption{core.WithSemantics(core.MDP), core.WithInitial(0)},
		[]builder.Option{builder.WithRand(rand.New(rand.NewSource(1)))},
		builder.RandomMDP(4, 2, 2),
	)
	require.NoError(t, err)
	assert.Equal(t, 4+8, g.NumNodes())
	assert.Equal(t, 4, g.NumStates())
	assert.Equal(t, []int32{6, 7}, g.Successors(1))
	for node := 4; node < g.NumNodes(); node++ {
		assert.False(t, g.IsState(node))
		assert.Equal(t, core.PlayerStochastic, g.Player(node))
		for _, s := range g.Successors(node) {
			assert.Less(t, s, int32(4))
		}
		assert.False(t, math.IsNaN(rowSum(t, g, node)))
	}
	assert.Equal(t, core.PlayerOne, g.Player(0))
}

func TestErrors(t *testing.T) {
	seeded := []builder.Option{builder.WithSeed(1)}
	cases := []struct {
		name string
		opts []builder.Option
		ctor builder.Constructor
		want error
	}{
		{"chain too short", nil, builder.Chain(1, 0.5), builder.ErrTooFewNodes},
		{"chain probability", nil, builder.Chain(3, 1.5), builder.ErrInvalidProbability},
		{"cycle empty", nil, builder.Cycle(0), builder.ErrTooFewNodes},
		{"dtmc degree", seeded, builder.RandomDTMC(3, 4), builder.ErrInvalidDegree},
		{"dtmc rng", nil, builder.RandomDTMC(3, 1), builder.ErrNeedRandSource},
		{"mdp actions", seeded, builder.RandomMDP(3, 0, 1), builder.ErrInvalidDegree},
		{"nil constructor", nil, nil, builder.ErrConstructFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.Build(nil, tc.opts, tc.ctor)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithMinWeight(0) })
	assert.Panics(t, func() { builder.MustBuild(nil, nil, builder.Cycle(0)) })
}

func TestGridWorld(t *testing.T) {
	g, err := builder.Build([]core.GraphOption{core.WithSemantics(core.MDP)}, nil, builder.GridWorld(2, 3, 0.1))
	require.NoError(t, err)
	assert.Equal(t, 6+24, g.NumNodes())
	assert.Equal(t, 6, g.NumStates())

	// cell (0,0): right moves to (0,1), up hits the wall
	right := g.Successor(0, 0)
	up := g.Successor(0, 3)
	assert.Equal(t, []int32{1, 0}, g.Successors(right))
	assert.Equal(t, []int32{0}, g.Successors(up))
	for node := 6; node < g.NumNodes(); node++ {
		assert.InDelta(t, 1.0, rowSum(t, g, node), 1e-12)
	}

	_, err = builder.Build(nil, nil, builder.GridWorld(0, 3, 0))
	assert.ErrorIs(t, err, builder.ErrTooFewNodes)
	_, err = builder.Build(nil, nil, builder.GridWorld(2, 2, 1))
	assert.ErrorIs(t, err, builder.ErrInvalidProbability)
}
