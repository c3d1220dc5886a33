package components_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/builder"
	"github.com/katalvlaran/stochgraph/components"
	"github.com/katalvlaran/stochgraph/core"
)

func indices(sets []*bitset.BitSet) [][]int {
	out := make([][]int, len(sets))
	for i, s := range sets {
		out[i] = s.Indices()
	}
	return out
}

func TestEndComponents_Chain(t *testing.T) {
	mecs, err := components.EndComponents(chain(t))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2}}, indices(mecs))
}

func TestEndComponents_Gamble(t *testing.T) {
	// 0 and 1 form an SCC, but 1 leaks to the goal
	mecs, err := components.EndComponents(gamble(t))
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]int{{3, 5}, {4, 6}}, indices(mecs))
}

func TestEndComponents_IdleLoop(t *testing.T) {
	b := core.NewBuilder[float64](core.WithSemantics(core.MDP))
	b.AddChoice(core.PlayerOne, 1, 2)
	b.AddDistribution(edge{To: 0, Weight: 1})
	b.AddDistribution(edge{To: 3, Weight: 0.5}, edge{To: 4, Weight: 0.5})
	b.AddChoice(core.PlayerOne, 5)
	b.AddChoice(core.PlayerOne, 6)
	b.AddDistribution(edge{To: 3, Weight: 1})
	b.AddDistribution(edge{To: 4, Weight: 1})
	mecs, err := components.EndComponents(b.MustBuild())
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]int{{0, 1}, {3, 5}, {4, 6}}, indices(mecs))
}

func TestEndComponents_PlayerDeadlock(t *testing.T) {
	b := core.NewBuilder[float64](core.WithSemantics(core.MDP))
	b.AddChoice(core.PlayerOne)
	b.AddChoice(core.PlayerOne, 2)
	b.AddDistribution(edge{To: 1, Weight: 1})
	mecs, err := components.EndComponents(b.MustBuild())
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}}, indices(mecs), "a state without choices is no end component")
}

func TestEndComponents_RestrictedDomain(t *testing.T) {
	mecs, err := components.EndComponents(gamble(t), components.WithNodes(bitset.Of(0, 1, 2, 3, 4, 6)))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{4, 6}}, indices(mecs))
}

func TestEndComponents_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := components.EndComponents(gamble(t), components.WithCancelContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEndComponents_RandomMDP(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		g := builder.MustBuild([]core.GraphOption{core.WithSemantics(core.MDP)},
			[]builder.Option{builder.WithSeed(seed)}, builder.RandomMDP(30, 2, 2))
		mecs, err := components.EndComponents(g)
		require.NoError(t, err)

		seen := bitset.New(g.NumNodes())
		for _, mec := range mecs {
			assert.False(t, seen.Intersects(mec), "seed %d: components overlap", seed)
			seen.Or(mec)
			for node := range mec.All() {
				inside := 0
				for _, s := range g.Successors(node) {
					if mec.Get(int(s)) {
						inside++
					}
				}
				if g.Player(node) == core.PlayerStochastic {
					assert.Equal(t, g.NumSuccessors(node), inside, "seed %d: node %d leaks", seed, node)
				} else {
					assert.Positive(t, inside, "seed %d: node %d cannot stay", seed, node)
				}
			}
		}
	}
}
