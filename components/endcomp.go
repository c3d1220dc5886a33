package components

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/dfs"
)

// EndComponents returns the maximal end components of g: the largest node
// sets that the players can keep a run inside forever with probability one.
// Every player node counts as controllable. Stochastic nodes of a component
// have all their successors in it, player nodes at least one. On a Markov
// chain the result is the bottom strongly connected components.
//
// WithNodes restricts the search to the subgraph induced by the domain.
// Components are returned in reverse topological order of the SCCs that
// produced them. Returns the SCC error on cancellation only.
//
// Steps:
//  1. Split the live nodes into SCCs.
//  2. Drop stochastic nodes with a successor outside their SCC and player
//     nodes without a successor inside it.
//  3. Repeat until nothing is dropped; the surviving SCCs are the result.
//
// Time complexity: O(V·(V + E)). Memory: O(V).
func EndComponents(g *core.Graph, opts ...Option) ([]*bitset.BitSet, error) {
	n := g.NumNodes()
	o := collect(n, opts)
	alive := o.nodes.Clone()
	alive.And(bitset.Range(0, n))

	var dropped []int
	for {
		comps, err := dfs.SCC(g, dfs.WithNodes(alive), dfs.WithCancelContext(o.ctx))
		if err != nil {
			return nil, fmt.Errorf("components: %w", err)
		}
		dropped = dropped[:0]
		for node := range alive.All() {
			if !staysInside(g, node, comps.Of) {
				dropped = append(dropped, node)
			}
		}
		if len(dropped) == 0 {
			out := make([]*bitset.BitSet, 0, comps.Count())
			for i := 0; i < comps.Count(); i++ {
				out = append(out, bitset.Of(comps.Component(i)...))
			}
			return out, nil
		}
		for _, node := range dropped {
			alive.Clear(node)
		}
	}
}

// staysInside reports whether node can remain in its own SCC for one step.
func staysInside(g *core.Graph, node int, of []int32) bool {
	comp := of[node]
	succs := g.Successors(node)
	switch p := g.Player(node); p {
	case core.PlayerStochastic:
		if len(succs) == 0 {
			return false
		}
		for _, s := range succs {
			if of[s] != comp {
				return false
			}
		}
		return true
	case core.PlayerOne, core.PlayerTwo:
		for _, s := range succs {
			if of[s] == comp {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("components: node %d is owned by %s", node, p))
	}
}
