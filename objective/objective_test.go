package objective_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
)

func twoStates(t *testing.T) *core.Graph {
	t.Helper()
	b := core.NewBuilder[float64]()
	b.AddState(core.Edge[float64]{To: 1, Weight: 1})
	b.AddState(core.Edge[float64]{To: 1, Weight: 1})
	b.SetReward(0, 2)
	return b.MustBuild()
}

func TestReachability_Lifecycle(t *testing.T) {
	g := twoStates(t)
	obj, err := objective.NewReachability[float64](g, bitset.Of(1), objective.WithScheduler())
	require.NoError(t, err)

	assert.Equal(t, objective.UnboundedReachability, obj.Kind())
	assert.Equal(t, objective.Created, obj.Stage())
	assert.Equal(t, core.Max, obj.Direction())
	assert.True(t, obj.ComputeScheduler())
	assert.Panics(t, func() { obj.Values() }, "results are unavailable before Solved")
	assert.Panics(t, func() { obj.Scheduler() })

	obj.MarkPreprocessed()
	assert.Equal(t, objective.Preprocessed, obj.Stage())
	require.NotNil(t, obj.SchedulerDraft())
	obj.SchedulerDraft().Set(0, 0)

	obj.Complete([]float64{1, 1})
	assert.Equal(t, objective.Solved, obj.Stage())
	assert.Equal(t, []float64{1, 1}, obj.Values())
	assert.Equal(t, 1.0, obj.Value(0))
	require.NotNil(t, obj.Scheduler())
	assert.Equal(t, 0, obj.Scheduler().Decision(0))

	assert.Panics(t, func() { obj.Complete([]float64{0, 0}) }, "solved objectives are immutable")
	assert.Panics(t, func() { obj.SetTarget(bitset.Of(0)) })
	assert.Panics(t, func() { obj.MarkPreprocessed() })
}

func TestReachability_TargetIsCloned(t *testing.T) {
	g := twoStates(t)
	target := bitset.Of(1)
	obj, err := objective.NewReachability[float64](g, target)
	require.NoError(t, err)
	target.Set(0)
	assert.Equal(t, []int{1}, obj.Target().Indices())
	assert.True(t, obj.ZeroSet().IsEmpty())
	assert.Nil(t, obj.SchedulerDraft(), "no scheduler requested")
}

func TestReachability_Errors(t *testing.T) {
	g := twoStates(t)
	_, err := objective.NewReachability[float64](nil, bitset.Of(0))
	assert.ErrorIs(t, err, objective.ErrNilGraph)
	_, err = objective.NewReachability[float64](g, bitset.Of(5))
	assert.ErrorIs(t, err, objective.ErrTargetRange)
	_, err = objective.NewBoundedReachability[float64](g, bitset.Of(1), -1)
	assert.ErrorIs(t, err, objective.ErrNegativeBound)
	_, err = objective.NewReachability[float64](g, bitset.Of(1), objective.WithResultBuffer(make([]float64, 1)))
	assert.ErrorIs(t, err, objective.ErrBufferSize)
	_, err = objective.NewReachability[float64](g, bitset.Of(1), objective.WithResultBuffer(make([]int, 2)))
	assert.ErrorIs(t, err, objective.ErrBufferType)
	_, err = objective.NewBoundedReachability[float64](g, bitset.Of(1), 3, objective.WithScheduler())
	assert.ErrorIs(t, err, objective.ErrBoundedScheduler)
	_, err = objective.NewBoundedCumulative[float64](g, nil, 3, objective.WithScheduler())
	assert.ErrorIs(t, err, objective.ErrBoundedScheduler)
}

func TestReachability_BoundedAndBuffer(t *testing.T) {
	g := twoStates(t)
	buf := make([]float64, 4)
	obj, err := objective.NewBoundedReachability[float64](g, bitset.Of(1), 3,
		objective.WithDirection(core.Min), objective.WithResultBuffer(buf))
	require.NoError(t, err)
	assert.Equal(t, objective.BoundedReachability, obj.Kind())
	assert.True(t, obj.Kind().Bounded())
	assert.Equal(t, 3, obj.Bound())
	assert.Equal(t, core.Min, obj.Direction())
	assert.Len(t, obj.ResultBuffer(), 2)
}

func TestCumulative(t *testing.T) {
	g := twoStates(t)
	obj, err := objective.NewCumulative[float64](g, nil, bitset.Of(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0}, obj.Rewards(), "rewards come from the graph column")
	assert.Equal(t, []int{1}, obj.Sinks().Indices())
	assert.True(t, obj.Infinite().IsEmpty())
	_, ok := obj.Discount()
	assert.False(t, ok)

	bc, err := objective.NewBoundedCumulative[float64](g, []float64{1, 1}, 5, objective.WithDiscount(0.9))
	require.NoError(t, err)
	d, ok := bc.Discount()
	assert.True(t, ok)
	assert.Equal(t, 0.9, d)
	assert.Equal(t, objective.BoundedCumulative, bc.Kind())

	_, err = objective.NewBoundedCumulative[float64](g, []float64{1}, 5)
	assert.ErrorIs(t, err, objective.ErrRewardSize)

	bare := core.NewBuilder[float64]()
	bare.AddState(core.Edge[float64]{To: 0, Weight: 1})
	_, err = objective.NewBoundedCumulative[float64](bare.MustBuild(), nil, 1)
	assert.ErrorIs(t, err, objective.ErrNoRewards)
}

func TestSetGraph(t *testing.T) {
	g := twoStates(t)
	obj, err := objective.NewReachability[float64](g, bitset.Of(1))
	require.NoError(t, err)
	d := g.Derive()
	obj.SetGraph(d)
	assert.Same(t, d, obj.Graph())

	other := core.NewBuilder[float64]()
	other.AddState(core.Edge[float64]{To: 0, Weight: 1})
	assert.Panics(t, func() { obj.SetGraph(other.MustBuild()) })
}

func TestParseKind(t *testing.T) {
	k, err := objective.ParseKind("bounded-cumulative")
	require.NoError(t, err)
	assert.Equal(t, objective.BoundedCumulative, k)
	_, err = objective.ParseKind("ltl")
	assert.Error(t, err)
}

func TestLongRun(t *testing.T) {
	g := twoStates(t)
	obj, err := objective.NewLongRun[float64](g, nil, objective.WithDirection(core.Min))
	require.NoError(t, err)
	assert.Equal(t, objective.UnboundedLRA, obj.Kind())
	assert.False(t, obj.Kind().Bounded())
	assert.False(t, obj.Kind().Reachability())
	assert.Equal(t, core.Min, obj.Direction())
	assert.Equal(t, []float64{2, 0}, obj.Rewards())

	k, err := objective.ParseKind("long-run-average")
	require.NoError(t, err)
	assert.Equal(t, objective.UnboundedLRA, k)

	_, err = objective.NewLongRun[float64](g, nil, objective.WithScheduler())
	assert.ErrorIs(t, err, objective.ErrLongRunScheduler)
	_, err = objective.NewLongRun[float64](g, []float64{1, 2, 3})
	assert.ErrorIs(t, err, objective.ErrRewardSize)
	_, err = objective.NewLongRun[float64](nil, nil)
	assert.ErrorIs(t, err, objective.ErrNilGraph)
}
