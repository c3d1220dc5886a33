package preprocess_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/constraint"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
	"github.com/katalvlaran/stochgraph/preprocess"
)

type edge = core.Edge[float64]

// gamble: state 0 gambles via 1 (half back, half to goal 3) or quits via 2
// to the sink 4. States 3 and 4 loop through 5 and 6.
func gamble(t *testing.T) *core.Graph {
	t.Helper()
	b := core.NewBuilder[float64](core.WithSemantics(core.MDP))
	b.AddChoice(core.PlayerOne, 1, 2)
	b.AddDistribution(edge{To: 0, Weight: 0.5}, edge{To: 3, Weight: 0.5})
	b.AddDistribution(edge{To: 4, Weight: 1})
	b.AddChoice(core.PlayerOne, 5)
	b.AddChoice(core.PlayerOne, 6)
	b.AddDistribution(edge{To: 3, Weight: 1})
	b.AddDistribution(edge{To: 4, Weight: 1})
	return b.MustBuild()
}

func run(t *testing.T, p preprocess.Preprocessor, obj objective.Objective) {
	t.Helper()
	p.Bind(obj)
	require.True(t, p.CanHandle(), "%s should handle %s", p.Name(), obj.Kind())
	require.NoError(t, p.Process(context.Background()))
}

func TestMatch(t *testing.T) {
	g := gamble(t)
	obj, err := objective.NewReachability[float64](g, bitset.Of(3))
	require.NoError(t, err)

	assert.True(t, preprocess.Match{}.Matches(obj))
	assert.True(t, preprocess.Match{Semantics: []core.Semantics{core.DTMC, core.MDP}}.Matches(obj))
	assert.False(t, preprocess.Match{ValueTypes: []core.ValueType{core.Interval}}.Matches(obj))
	assert.False(t, preprocess.Match{Kinds: []objective.Kind{objective.BoundedCumulative}}.Matches(obj))
}

func TestBindTwicePanics(t *testing.T) {
	g := gamble(t)
	obj, err := objective.NewReachability[float64](g, bitset.Of(3))
	require.NoError(t, err)
	p := preprocess.NewProbZero[float64]()
	assert.Panics(t, func() { p.CanHandle() }, "CanHandle needs a bound objective")
	p.Bind(obj)
	assert.Panics(t, func() { p.Bind(obj) })
}

func TestProbZero(t *testing.T) {
	g := gamble(t)
	obj, err := objective.NewReachability[float64](g, bitset.Of(3))
	require.NoError(t, err)

	run(t, preprocess.NewProbZero[float64](), obj)
	assert.Equal(t, []int{2, 4, 6}, obj.ZeroSet().Indices())

	// idempotent
	run(t, preprocess.NewProbZero[float64](), obj)
	assert.Equal(t, []int{2, 4, 6}, obj.ZeroSet().Indices())
	assert.Equal(t, []int{3}, obj.Target().Indices())
}

func TestProbZero_WrongValueTypeParameter(t *testing.T) {
	g := gamble(t)
	obj, err := objective.NewReachability[float64](g, bitset.Of(3))
	require.NoError(t, err)
	p := preprocess.NewProbZero[algebra.Interval]()
	p.Bind(obj)
	assert.False(t, p.CanHandle())
	assert.Panics(t, func() { _ = p.Process(context.Background()) })
}

func TestProbOne(t *testing.T) {
	g := gamble(t)
	obj, err := objective.NewReachability[float64](g, bitset.Of(3), objective.WithScheduler())
	require.NoError(t, err)

	run(t, preprocess.NewProbOne[float64](), obj)
	assert.Equal(t, []int{0, 1, 3, 5}, obj.Target().Indices())
	assert.Equal(t, 0, obj.SchedulerDraft().Decision(0))

	run(t, preprocess.NewProbOne[float64](), obj)
	assert.Equal(t, []int{0, 1, 3, 5}, obj.Target().Indices())
}

func TestProbOne_Min(t *testing.T) {
	g := gamble(t)
	obj, err := objective.NewReachability[float64](g, bitset.Of(3), objective.WithDirection(core.Min))
	require.NoError(t, err)
	run(t, preprocess.NewProbOne[float64](), obj)
	assert.Equal(t, []int{3, 5}, obj.Target().Indices())
}

func TestProbOne_NotForBounded(t *testing.T) {
	g := gamble(t)
	obj, err := objective.NewBoundedReachability[float64](g, bitset.Of(3), 4)
	require.NoError(t, err)
	p := preprocess.NewProbOne[float64]()
	p.Bind(obj)
	assert.False(t, p.CanHandle())
}

func TestEmbed(t *testing.T) {
	b := core.NewBuilder[float64](core.WithSemantics(core.CTMC))
	b.AddState(edge{To: 1, Weight: 2}, edge{To: 2, Weight: 6})
	b.AddState(edge{To: 1, Weight: 1})
	b.AddState(edge{To: 2, Weight: 1})
	g := b.MustBuild()

	obj, err := objective.NewReachability[float64](g, bitset.Of(1))
	require.NoError(t, err)
	run(t, preprocess.NewEmbed(algebra.Reals), obj)

	d := obj.Graph()
	assert.NotSame(t, g, d)
	assert.True(t, d.SharesTopology(g))
	assert.Equal(t, core.DTMC, d.Semantics())
	w, err := core.Weights[float64](d)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.75}, w.Row(0))

	orig, err := core.Weights[float64](g)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 6}, orig.Row(0), "caller's rates are untouched")
	assert.Equal(t, core.CTMC, g.Semantics())

	again := preprocess.NewEmbed(algebra.Reals)
	again.Bind(obj)
	assert.False(t, again.CanHandle(), "embedded graph is no longer a CTMC")
}

func intervalGraph(t *testing.T, lo0, hi0, lo1, hi1 float64) *core.Graph {
	t.Helper()
	b := core.NewBuilder[algebra.Interval](core.WithValueType(core.Interval))
	b.AddState(
		core.Edge[algebra.Interval]{To: 1, Weight: algebra.Interval{Lo: lo0, Hi: hi0}},
		core.Edge[algebra.Interval]{To: 2, Weight: algebra.Interval{Lo: lo1, Hi: hi1}},
	)
	b.AddState(core.Edge[algebra.Interval]{To: 1, Weight: algebra.Point(1)})
	b.AddState(core.Edge[algebra.Interval]{To: 2, Weight: algebra.Point(1)})
	return b.MustBuild()
}

func TestIntervalNormalise(t *testing.T) {
	g := intervalGraph(t, 0.1, 0.6, 0.2, 0.5)
	obj, err := objective.NewReachability[algebra.Interval](g, bitset.Of(1))
	require.NoError(t, err)

	run(t, preprocess.NewIntervalNormalise(), obj)
	w, err := core.Weights[algebra.Interval](obj.Graph())
	require.NoError(t, err)
	row := w.Row(0)
	assert.InDelta(t, 0.5, row[0].Lo, 1e-12)
	assert.InDelta(t, 0.6, row[0].Hi, 1e-12)
	assert.InDelta(t, 0.4, row[1].Lo, 1e-12)
	assert.InDelta(t, 0.5, row[1].Hi, 1e-12)

	first := append([]algebra.Interval(nil), row...)
	run(t, preprocess.NewIntervalNormalise(), obj)
	w, err = core.Weights[algebra.Interval](obj.Graph())
	require.NoError(t, err)
	for i := range first {
		assert.InDelta(t, first[i].Lo, w.Row(0)[i].Lo, 1e-12)
		assert.InDelta(t, first[i].Hi, w.Row(0)[i].Hi, 1e-12)
	}

	orig, err := core.Weights[algebra.Interval](g)
	require.NoError(t, err)
	assert.Equal(t, 0.1, orig.Row(0)[0].Lo, "caller's weights are untouched")
}

func TestIntervalNormalise_Infeasible(t *testing.T) {
	g := intervalGraph(t, 0.6, 0.7, 0.6, 0.7)
	obj, err := objective.NewReachability[algebra.Interval](g, bitset.Of(1))
	require.NoError(t, err)
	p := preprocess.NewIntervalNormalise()
	p.Bind(obj)
	require.True(t, p.CanHandle())
	assert.ErrorIs(t, p.Process(context.Background()), preprocess.ErrInfeasibleDistribution)
}

func TestIntervalNormalise_ConstraintSolver(t *testing.T) {
	g := intervalGraph(t, 0.1, 0.6, 0.2, 0.5)
	obj, err := objective.NewReachability[algebra.Interval](g, bitset.Of(1))
	require.NoError(t, err)

	var problems int
	lp := constraint.SolverFunc(func(_ context.Context, p *constraint.Problem) (*constraint.Solution, error) {
		problems++
		require.Len(t, p.Constraints, 1)
		return nil, constraint.ErrInfeasible
	})
	p := preprocess.NewIntervalNormalise(preprocess.WithConstraintSolver(lp))
	p.Bind(obj)
	require.True(t, p.CanHandle())
	assert.ErrorIs(t, p.Process(context.Background()), preprocess.ErrInfeasibleDistribution)
	assert.Equal(t, 1, problems)
}

func TestRewardInfinity(t *testing.T) {
	g := gamble(t)
	rewards := make([]float64, g.NumNodes())
	rewards[0] = 1

	maxObj, err := objective.NewCumulative[float64](g, rewards, bitset.Of(3))
	require.NoError(t, err)
	run(t, preprocess.NewRewardInfinity[float64](), maxObj)
	assert.Equal(t, []int{0, 1, 2, 4, 6}, maxObj.Infinite().Indices())

	run(t, preprocess.NewRewardInfinity[float64](), maxObj)
	assert.Equal(t, []int{0, 1, 2, 4, 6}, maxObj.Infinite().Indices())

	minObj, err := objective.NewCumulative[float64](g, rewards, bitset.Of(3), objective.WithDirection(core.Min))
	require.NoError(t, err)
	run(t, preprocess.NewRewardInfinity[float64](), minObj)
	assert.Equal(t, []int{2, 4, 6}, minObj.Infinite().Indices())
}

func TestTighten(t *testing.T) {
	row := []algebra.Interval{{Lo: 0, Hi: 1}, {Lo: 0.3, Hi: 0.3}}
	require.NoError(t, preprocess.Tighten(row))
	assert.InDelta(t, 0.7, row[0].Lo, 1e-12)
	assert.InDelta(t, 0.7, row[0].Hi, 1e-12)

	assert.ErrorIs(t, preprocess.Tighten([]algebra.Interval{{Lo: 0.5, Hi: 0.2}}), preprocess.ErrInfeasibleDistribution)
}
