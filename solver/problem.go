package solver

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/components"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
	"github.com/katalvlaran/stochgraph/scheduler"
)

// solvable is the typed view of the objectives this package handles.
type solvable[V any] interface {
	objective.Objective
	Bound() int
	ResultBuffer() []V
	SchedulerDraft() *scheduler.Settable
	Complete(values []V)
}

// problem is an objective lowered to arrays.
type problem[V any] struct {
	alg     algebra.Algebra[V]
	graph   *core.Graph
	weights *core.EdgeValues[V]
	dir     core.Direction

	values []V
	fixed  *bitset.BitSet
	goal   *bitset.BitSet // where decisions must lead: targets or sinks

	rewards     []V
	discount    V
	hasDiscount bool
	clampUnit   bool

	bounded bool
	steps   int
}

func lower[V any](alg algebra.Algebra[V], obj solvable[V]) (*problem[V], error) {
	g := obj.Graph()
	w, err := core.Weights[V](g)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	n := g.NumNodes()
	p := &problem[V]{
		alg:     alg,
		graph:   g,
		weights: w,
		dir:     obj.Direction(),
		values:  obj.ResultBuffer(),
		fixed:   bitset.New(n),
		bounded: obj.Kind().Bounded(),
		steps:   obj.Bound(),
	}
	if p.values == nil {
		p.values = make([]V, n)
	}
	zero := alg.Zero()
	for i := range p.values {
		p.values[i] = zero
	}

	switch o := any(obj).(type) {
	case *objective.Reachability[V]:
		p.clampUnit = true
		target := o.Target()
		reach, err := components.CanReach(g, target)
		if err != nil {
			return nil, err
		}
		p.fixed = reach.Complement(n)
		p.fixed.Or(o.ZeroSet())
		p.fixed.Or(target)
		p.goal = target
		one := alg.One()
		for t := range target.All() {
			p.values[t] = one
		}
	case *objective.Cumulative[V]:
		p.rewards = o.Rewards()
		p.discount, p.hasDiscount = o.Discount()
		p.fixed.Or(o.Sinks())
		p.fixed.Or(o.Infinite())
		p.goal = o.Sinks()
		inf := alg.PosInf()
		for i := range o.Infinite().All() {
			p.values[i] = inf
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedObjective, obj)
	}
	return p, nil
}

// update computes the new value of node from src.
func (p *problem[V]) update(node int, src []V) V {
	alg := p.alg
	g := p.graph
	succs := g.Successors(node)
	var acc V
	switch player := g.Player(node); player {
	case core.PlayerStochastic:
		acc = alg.Zero()
		for i, w := range p.weights.Row(node) {
			acc = alg.Add(acc, alg.Multiply(w, src[succs[i]]))
		}
	case core.PlayerOne, core.PlayerTwo:
		maximise := core.DirectionFor(player, p.dir) == core.Max
		if len(succs) == 0 {
			acc = alg.Zero()
			break
		}
		acc = src[succs[0]]
		for _, sc := range succs[1:] {
			if algebra.Better(alg, src[sc], acc, maximise) {
				acc = src[sc]
			}
		}
	default:
		panic(fmt.Sprintf("solver: node %d is owned by %s", node, player))
	}

	if p.rewards != nil {
		if p.hasDiscount && g.IsState(node) {
			acc = alg.Multiply(p.discount, acc)
		}
		return alg.Add(p.rewards[node], acc)
	}
	if p.clampUnit {
		return alg.ClampUnit(acc)
	}
	return acc
}

// bestEdge returns the first successor index of node that is optimal for
// the node's owner.
func (p *problem[V]) bestEdge(node int, values []V) int {
	maximise := core.DirectionFor(p.graph.Player(node), p.dir) == core.Max
	succs := p.graph.Successors(node)
	best := 0
	for i := 1; i < len(succs); i++ {
		if algebra.Better(p.alg, values[succs[i]], values[succs[best]], maximise) {
			best = i
		}
	}
	return best
}

// schedule writes a decision for every PlayerOne state with successors into
// draft, such that the chain induced by the decisions realises values.
//
// Choosing any optimal edge is not enough: a choice that loops inside an
// end component has the same value as the choice that leaves it, but never
// reaches the goal. Decisions are therefore taken from an attractor:
//
//  1. An edge is eligible when its successor value is within tol of the
//     best successor value of the node.
//  2. A backward sweep from the goal ranks nodes by round. A stochastic node
//     joins through any successor, a PlayerOne node through its first
//     eligible edge into the swept set, a PlayerTwo node once all its
//     eligible edges lead into it.
//  3. A swept PlayerOne state decides the edge it joined through, unless an
//     existing decision is eligible and leads to a lower rank.
//  4. Every other state keeps an eligible existing decision, or takes its
//     first optimal edge.
//
// Time complexity: O(V + E). Memory: O(V).
func (p *problem[V]) schedule(draft *scheduler.Settable, values []V, tol float64) {
	g := p.graph
	n := g.NumNodes()
	g.ComputePredecessors()
	preds := g.Predecessors()

	best := make([]V, n)
	remaining := make([]int32, n) // PlayerTwo: eligible edges outside the sweep
	for node := 0; node < n; node++ {
		if g.Player(node) == core.PlayerStochastic || g.NumSuccessors(node) == 0 {
			continue
		}
		best[node] = values[g.Successor(node, p.bestEdge(node, values))]
		if g.Player(node) == core.PlayerTwo {
			for i := range g.Successors(node) {
				if p.eligible(node, i, values, best, tol) {
					remaining[node]++
				}
			}
		}
	}

	rank := make([]int32, n)
	choice := make([]int32, n)
	for i := range rank {
		rank[i] = -1
	}
	frontier := bitset.New(n)
	next := bitset.New(n)
	if p.goal != nil {
		frontier.Copy(p.goal)
	}
	for node := range frontier.All() {
		rank[node] = 0
	}
	for round := int32(1); !frontier.IsEmpty(); round++ {
		next.Reset()
		for node := range frontier.All() {
			pnodes, pedges := preds.Nodes(node), preds.Edges(node)
			for k, p32 := range pnodes {
				pred, edge := int(p32), int(pedges[k])
				if rank[pred] >= 0 || p.fixed.Get(pred) {
					continue
				}
				switch g.Player(pred) {
				case core.PlayerOne:
					if !p.eligible(pred, edge, values, best, tol) {
						continue
					}
					choice[pred] = int32(edge)
				case core.PlayerTwo:
					if !p.eligible(pred, edge, values, best, tol) {
						continue
					}
					remaining[pred]--
					if remaining[pred] > 0 {
						continue
					}
				}
				rank[pred] = round
				next.Set(pred)
			}
		}
		frontier, next = next, frontier
	}

	for node := 0; node < n; node++ {
		if g.Player(node) != core.PlayerOne || !g.IsState(node) || g.NumSuccessors(node) == 0 {
			continue
		}
		kept := draft.IsSet(node) && p.eligible(node, draft.Decision(node), values, best, tol)
		switch {
		case p.goal != nil && p.goal.Get(node):
			draft.SetIfUnset(node, p.bestEdge(node, values))
		case rank[node] > 0:
			if kept {
				to := rank[g.Successor(node, draft.Decision(node))]
				if to >= 0 && to < rank[node] {
					continue
				}
			}
			draft.Set(node, int(choice[node]))
		case !kept:
			draft.Set(node, p.bestEdge(node, values))
		}
	}
}

// eligible reports whether edge i of node is within tol of the best
// successor value.
func (p *problem[V]) eligible(node, i int, values, best []V, tol float64) bool {
	return p.alg.Distance(values[p.graph.Successor(node, i)], best[node]) <= tol
}
