package components

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/bfs"
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
)

// needed returns how many successors of node must already be in the set for
// node to join it, given that PlayerOne optimises in dir and "in the set"
// is what PlayerOne wants.
func needed(g *core.Graph, node int, dir core.Direction) int32 {
	switch p := g.Player(node); p {
	case core.PlayerStochastic:
		return 1
	case core.PlayerOne, core.PlayerTwo:
		if core.DirectionFor(p, dir) == core.Max {
			return 1
		}
		return int32(g.NumSuccessors(node))
	default:
		panic(fmt.Sprintf("components: node %d is owned by %s", node, p))
	}
}

// ReachPre returns the nodes from which target is reached with positive
// probability when PlayerOne optimises in dir. The result contains target
// unless WithoutTarget is given.
//
// Each node keeps a counter of the successors it still needs; the sweep
// walks predecessors of the frontier and admits a node when its counter
// reaches zero.
//
// Complexity: O(V + E) time, O(V) memory.
func ReachPre(g *core.Graph, target *bitset.BitSet, dir core.Direction, opts ...Option) *bitset.BitSet {
	n := g.NumNodes()
	o := collect(n, opts)
	g.ComputePredecessors()
	preds := g.Predecessors()

	remaining := make([]int32, n)
	for node := range o.nodes.All() {
		if node >= n {
			break
		}
		remaining[node] = needed(g, node, dir)
	}

	result := target.Clone()
	frontier := target.Clone()
	next := bitset.New(n)
	for !frontier.IsEmpty() {
		next.Reset()
		for node := range frontier.All() {
			pnodes, pedges := preds.Nodes(node), preds.Edges(node)
			for k, p32 := range pnodes {
				pred := int(p32)
				if result.Get(pred) || !o.nodes.Get(pred) {
					continue
				}
				remaining[pred]--
				if remaining[pred] > 0 {
					continue
				}
				result.Set(pred)
				next.Set(pred)
				if o.sched != nil && g.Player(pred) == core.PlayerOne && g.IsState(pred) {
					o.sched.SetIfUnset(pred, int(pedges[k]))
				}
			}
		}
		frontier, next = next, frontier
	}

	if o.excludeTarget {
		result.AndNot(target)
	}
	return result
}

// ReachMaxOne returns the nodes from which PlayerOne can reach target with
// probability one. PlayerTwo nodes, when present, oppose it.
//
// Steps:
//  1. Start from every candidate node.
//  2. Attract backwards from target, admitting stochastic nodes only when
//     no successor lies outside the candidates.
//  3. Make the attracted set the new candidates and repeat until stable.
//
// Complexity:
//
//	Time:   O(V·(V + E)), at most V rounds of one backward sweep each.
//	Memory: O(V).
func ReachMaxOne(g *core.Graph, target *bitset.BitSet, opts ...Option) *bitset.BitSet {
	n := g.NumNodes()
	o := collect(n, opts)
	g.ComputePredecessors()
	preds := g.Predecessors()

	candidates := o.nodes.Clone()
	candidates.Or(target)

	outside := make([]int32, n)   // stochastic: successors not in candidates
	remaining := make([]int32, n) // PlayerTwo: successors not yet attracted
	choice := make([]int32, n)    // edge through which a node was attracted

	attracted := bitset.New(n)
	frontier := bitset.New(n)
	next := bitset.New(n)
	for {
		for node := range candidates.All() {
			if node >= n {
				break
			}
			switch p := g.Player(node); p {
			case core.PlayerStochastic:
				var out int32
				for _, s := range g.Successors(node) {
					if !candidates.Get(int(s)) {
						out++
					}
				}
				outside[node] = out
			case core.PlayerTwo:
				remaining[node] = int32(g.NumSuccessors(node))
			case core.PlayerOne:
			default:
				panic(fmt.Sprintf("components: node %d is owned by %s", node, p))
			}
		}

		attracted.Copy(target)
		frontier.Copy(target)
		for !frontier.IsEmpty() {
			next.Reset()
			for node := range frontier.All() {
				pnodes, pedges := preds.Nodes(node), preds.Edges(node)
				for k, p32 := range pnodes {
					pred := int(p32)
					if attracted.Get(pred) || !candidates.Get(pred) {
						continue
					}
					switch g.Player(pred) {
					case core.PlayerStochastic:
						if outside[pred] != 0 {
							continue
						}
					case core.PlayerTwo:
						remaining[pred]--
						if remaining[pred] > 0 {
							continue
						}
					}
					choice[pred] = pedges[k]
					attracted.Set(pred)
					next.Set(pred)
				}
			}
			frontier, next = next, frontier
		}

		if attracted.Equal(candidates) {
			break
		}
		candidates.Copy(attracted)
	}

	if o.sched != nil {
		for node := range candidates.All() {
			if target.Get(node) || g.Player(node) != core.PlayerOne || !g.IsState(node) {
				continue
			}
			o.sched.SetIfUnset(node, int(choice[node]))
		}
	}
	if o.excludeTarget {
		candidates.AndNot(target)
	}
	return candidates
}

// ReachMinOne returns the nodes from which target is reached with
// probability one however PlayerOne resolves its choices. PlayerTwo nodes,
// when present, help reach the target.
//
// Complexity: O(V + E) time (two ReachPre passes), O(V) memory.
func ReachMinOne(g *core.Graph, target *bitset.BitSet, opts ...Option) *bitset.BitSet {
	n := g.NumNodes()
	o := collect(n, opts)
	domain := o.nodes.Clone()
	domain.Or(target)

	// nodes that may avoid the target forever
	some := ReachPre(g, target, core.Min, WithNodes(domain))
	none := domain.Clone()
	none.AndNot(some)

	// nodes that may reach such a node with positive probability
	escape := domain.Clone()
	escape.AndNot(target)
	none = ReachPre(g, none, core.Max, WithNodes(escape))

	result := domain
	result.AndNot(none)
	if o.excludeTarget {
		result.AndNot(target)
	}
	return result
}

// ProbZero returns the nodes whose optimal probability of reaching target
// is zero when PlayerOne optimises in dir.
//
// Complexity: O(V + E).
func ProbZero(g *core.Graph, target *bitset.BitSet, dir core.Direction, opts ...Option) *bitset.BitSet {
	o := collect(g.NumNodes(), opts)
	reach := ReachPre(g, target, dir, opts...)
	zero := o.nodes.Clone()
	zero.AndNot(reach)
	zero.AndNot(target)
	return zero
}

// ProbOne returns the nodes whose optimal probability of reaching target is
// one when PlayerOne optimises in dir.
//
// Complexity: that of ReachMaxOne for Max, of ReachMinOne for Min.
func ProbOne(g *core.Graph, target *bitset.BitSet, dir core.Direction, opts ...Option) *bitset.BitSet {
	if dir == core.Max {
		return ReachMaxOne(g, target, opts...)
	}
	return ReachMinOne(g, target, opts...)
}

// CanReach returns the nodes with a path to target, ignoring players and
// weights. It is the coarsest over-approximation of ReachPre.
func CanReach(g *core.Graph, target *bitset.BitSet) (*bitset.BitSet, error) {
	res, err := bfs.BFS(g, target, bfs.WithReverse())
	if err != nil {
		return nil, fmt.Errorf("components: %w", err)
	}
	return res.Reached, nil
}
