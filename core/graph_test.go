// Package core_test verifies graph construction, properties, derived graphs
// and the predecessor index.
package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgraph/core"
)

// newMDP builds
//
//	0 (one) ─► 1 (dist) ─0.5─► 0
//	        │           └0.5─► 3
//	        └► 2 (dist) ─1.0─► 3
//	3 (one) ─► 4 (dist) ─1.0─► 3
func newMDP(t *testing.T) *core.Graph {
	t.Helper()
	b := core.NewBuilder[float64](core.WithSemantics(core.MDP), core.WithInitial(0))
	b.AddChoice(core.PlayerOne, 1, 2)
	b.AddDistribution(core.Edge[float64]{To: 0, Weight: 0.5}, core.Edge[float64]{To: 3, Weight: 0.5})
	b.AddDistribution(core.Edge[float64]{To: 3, Weight: 1})
	b.AddChoice(core.PlayerOne, 4)
	b.AddDistribution(core.Edge[float64]{To: 3, Weight: 1})
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuilder_Topology(t *testing.T) {
	g := newMDP(t)
	assert.Equal(t, 5, g.NumNodes())
	assert.Equal(t, 7, g.NumEdges())
	assert.Equal(t, core.MDP, g.Semantics())
	assert.Equal(t, core.Real, g.ValueType())
	assert.Equal(t, []int{0}, g.Initial().Indices())

	assert.Equal(t, 2, g.NumSuccessors(0))
	assert.Equal(t, 2, g.Successor(0, 1))
	assert.Equal(t, []int32{0, 3}, g.Successors(1))
	assert.Equal(t, 1, g.SuccessorIndex(1, 3))
	assert.Equal(t, -1, g.SuccessorIndex(1, 4))

	assert.True(t, g.IsState(0))
	assert.False(t, g.IsState(1))
	assert.Equal(t, core.PlayerOne, g.Player(3))
	assert.Equal(t, core.PlayerStochastic, g.Player(4))
	assert.Equal(t, []int{0, 3}, g.States().Indices())
	assert.Equal(t, 2, g.NumStates())
}

func TestBuilder_Errors(t *testing.T) {
	_, err := core.NewBuilder[float64]().Build()
	assert.ErrorIs(t, err, core.ErrEmptyGraph)

	b := core.NewBuilder[float64]()
	b.AddState(core.Edge[float64]{To: 7, Weight: 1})
	_, err = b.Build()
	assert.ErrorIs(t, err, core.ErrSuccessorOutOfRange)

	b = core.NewBuilder[float64](core.WithInitial(3))
	b.AddState(core.Edge[float64]{To: 0, Weight: 1})
	_, err = b.Build()
	assert.ErrorIs(t, err, core.ErrNodeOutOfRange)
}

func TestGraph_Weights(t *testing.T) {
	g := newMDP(t)
	w, err := core.Weights[float64](g)
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.Get(1, 1))
	assert.Equal(t, []float64{0.5, 0.5}, w.Row(1))

	_, err = core.Weights[int](g)
	assert.ErrorIs(t, err, core.ErrPropertyType)
	_, err = core.NodeColumn[float64](g, core.PropReward)
	assert.ErrorIs(t, err, core.ErrPropertyNotFound)
}

func TestGraph_RegisterProperty(t *testing.T) {
	g := newMDP(t)
	assert.ErrorIs(t, g.RegisterNodeProperty("x", core.NewNodeValues[float64](3)), core.ErrPropertySize)
	assert.ErrorIs(t, g.RegisterNodeProperty(core.PropState, core.NewNodeValues[float64](5)), core.ErrPropertyType)
	assert.ErrorIs(t, g.RegisterEdgeProperty("w2", 42), core.ErrPropertyType)

	col := core.NewNodeValues[float64](5)
	col.Set(3, 2.5)
	require.NoError(t, g.RegisterNodeProperty(core.PropReward, col))
	got, err := core.NodeColumn[float64](g, core.PropReward)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got.Get(3))
}

func TestGraph_Rewards(t *testing.T) {
	b := core.NewBuilder[float64]()
	b.AddState(core.Edge[float64]{To: 1, Weight: 1})
	b.AddState(core.Edge[float64]{To: 1, Weight: 1})
	b.SetReward(0, 3)
	g := b.MustBuild()
	r, err := core.NodeColumn[float64](g, core.PropReward)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0}, r.Values())
}

func TestGraph_Predecessors(t *testing.T) {
	g := newMDP(t)
	assert.False(t, g.HasPredecessors())
	assert.Panics(t, func() { g.NumPredecessors(0) })

	g.ComputePredecessors()
	require.True(t, g.HasPredecessors())

	p := g.Predecessors()
	// node 3 is entered by 1 (edge 1), 2 (edge 0), 4 (edge 0)
	assert.Equal(t, []int32{1, 2, 4}, p.Nodes(3))
	assert.Equal(t, []int32{1, 0, 0}, p.Edges(3))
	assert.Equal(t, 1, g.NumPredecessors(0))
	assert.Equal(t, 1, g.Predecessor(0, 0))
	assert.Equal(t, 0, g.PredecessorEdge(0, 0))

	// every (pred, edge) pair points back at the node
	for node := 0; node < g.NumNodes(); node++ {
		for k := 0; k < g.NumPredecessors(node); k++ {
			assert.Equal(t, node, g.Successor(g.Predecessor(node, k), g.PredecessorEdge(node, k)))
		}
	}
}

func TestGraph_SetSuccessorInvalidatesPredecessors(t *testing.T) {
	g := newMDP(t)
	g.ComputePredecessors()
	g.SetSuccessor(2, 0, 0)
	assert.False(t, g.HasPredecessors())
	assert.Panics(t, func() { g.Predecessors() })
	assert.Panics(t, func() { g.SetSuccessor(2, 0, 99) })
	assert.Panics(t, func() { g.SetSuccessor(2, 1, 0) })

	g.ComputePredecessors()
	assert.Equal(t, 2, g.NumPredecessors(0))
}

func TestGraph_ComputePredecessorsConcurrent(t *testing.T) {
	g := newMDP(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.ComputePredecessors()
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, g.NumPredecessors(3))
}

func TestGraph_Derive(t *testing.T) {
	g := newMDP(t)
	g.ComputePredecessors()
	d := g.Derive()
	assert.True(t, d.SharesTopology(g))
	assert.True(t, d.HasPredecessors())

	w, err := core.Weights[float64](g)
	require.NoError(t, err)
	w2 := w.Clone()
	w2.Set(1, 0, 0.25)
	require.NoError(t, d.RegisterEdgeProperty(core.PropWeight, w2))
	d.SetSemantics(core.DTMC)

	orig, err := core.Weights[float64](g)
	require.NoError(t, err)
	assert.Equal(t, 0.5, orig.Get(1, 0))
	assert.Equal(t, core.MDP, g.Semantics())
	assert.Equal(t, core.DTMC, d.Semantics())
}

func TestParseTags(t *testing.T) {
	s, err := core.ParseSemantics("smg")
	require.NoError(t, err)
	assert.Equal(t, core.SMG, s)
	_, err = core.ParseSemantics("pomdp")
	assert.Error(t, err)

	v, err := core.ParseValueType("interval")
	require.NoError(t, err)
	assert.Equal(t, core.Interval, v)

	p, err := core.ParsePlayer("two")
	require.NoError(t, err)
	assert.Equal(t, core.PlayerTwo, p)
	assert.Equal(t, "explorer", core.PlayerExplorer.String())
}
