package dfs

import (
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
)

// TopologicalOrder returns the included nodes grouped by component in
// topological order of the condensation: sources first. It is the reverse
// of Order at component granularity.
func (c *Components) TopologicalOrder() []int {
	out := make([]int, 0, len(c.members))
	for i := c.Count() - 1; i >= 0; i-- {
		out = append(out, c.Component(i)...)
	}
	return out
}

// IsBottom reports whether no edge of g leaves component i.
func (c *Components) IsBottom(g *core.Graph, i int) bool {
	id := int32(i)
	for _, v := range c.Component(i) {
		for _, s := range g.Successors(v) {
			if c.Of[s] != id {
				return false
			}
		}
	}
	return true
}

// IsTrivial reports whether component i is a single node without a self-loop.
func (c *Components) IsTrivial(g *core.Graph, i int) bool {
	m := c.Component(i)
	if len(m) != 1 {
		return false
	}
	return g.SuccessorIndex(m[0], m[0]) < 0
}

// Bottom returns the union of all bottom components.
func (c *Components) Bottom(g *core.Graph) *bitset.BitSet {
	out := bitset.New(g.NumNodes())
	for i := 0; i < c.Count(); i++ {
		if !c.IsBottom(g, i) {
			continue
		}
		for _, v := range c.Component(i) {
			out.Set(v)
		}
	}
	return out
}
