package core

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/bitset"
)

// Edge is a weighted edge handed to a Builder.
type Edge[V any] struct {
	To     int
	Weight V
}

// To returns an edge to node with the zero weight. Used for choice edges,
// whose weight is never read.
func To[V any](node int) Edge[V] { return Edge[V]{To: node} }

// Builder assembles a Graph node by node. Node IDs are assigned in the order
// nodes are added, starting at 0.
type Builder[V any] struct {
	cfg     graphConfig
	bounds  []int
	succ    []int32
	weights []V
	state   []bool
	player  []Player
	rewards map[int]V
}

// NewBuilder returns an empty builder with weight type V.
func NewBuilder[V any](opts ...GraphOption) *Builder[V] {
	var cfg graphConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &Builder[V]{
		cfg:     cfg,
		bounds:  make([]int, 1, cfg.nodeCap+1),
		succ:    make([]int32, 0, cfg.edgeCap),
		weights: make([]V, 0, cfg.edgeCap),
		state:   make([]bool, 0, cfg.nodeCap),
		player:  make([]Player, 0, cfg.nodeCap),
	}
	return b
}

// AddNode appends a node owned by player and returns its ID.
func (b *Builder[V]) AddNode(player Player, state bool, edges ...Edge[V]) int {
	id := len(b.state)
	for _, e := range edges {
		b.succ = append(b.succ, int32(e.To))
		b.weights = append(b.weights, e.Weight)
	}
	b.bounds = append(b.bounds, len(b.succ))
	b.state = append(b.state, state)
	b.player = append(b.player, player)
	return id
}

// AddState appends a stochastic state, the only node kind of a Markov chain.
func (b *Builder[V]) AddState(edges ...Edge[V]) int {
	return b.AddNode(PlayerStochastic, true, edges...)
}

// AddChoice appends a state owned by player whose successors are chosen
// deliberately.
func (b *Builder[V]) AddChoice(player Player, succs ...int) int {
	edges := make([]Edge[V], len(succs))
	for i, s := range succs {
		edges[i] = To[V](s)
	}
	return b.AddNode(player, true, edges...)
}

// AddDistribution appends an auxiliary stochastic node.
func (b *Builder[V]) AddDistribution(edges ...Edge[V]) int {
	return b.AddNode(PlayerStochastic, false, edges...)
}

// SetReward records a state reward for node.
func (b *Builder[V]) SetReward(node int, r V) {
	if b.rewards == nil {
		b.rewards = make(map[int]V)
	}
	b.rewards[node] = r
}

// NumNodes returns the number of nodes added so far.
func (b *Builder[V]) NumNodes() int { return len(b.state) }

// Build validates the edges and returns the graph. The builder must not be
// reused afterwards.
func (b *Builder[V]) Build() (*Graph, error) {
	n := len(b.state)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	for node := 0; node < n; node++ {
		for _, s := range b.succ[b.bounds[node]:b.bounds[node+1]] {
			if s < 0 || int(s) >= n {
				return nil, fmt.Errorf("%w: node %d -> %d (nodes: %d)", ErrSuccessorOutOfRange, node, s, n)
			}
		}
	}
	g := &Graph{
		topo:      &topology{bounds: b.bounds, succ: b.succ},
		semantics: b.cfg.semantics,
		valueType: b.cfg.valueType,
		initial:   bitset.New(n),
		nodeProps: make(map[Property]any, 4),
		edgeProps: make(map[Property]any, 2),
	}
	for _, i := range b.cfg.initial {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: initial node %d", ErrNodeOutOfRange, i)
		}
		g.initial.Set(i)
	}

	state := NewBoolNodes(n)
	players := NewPlayerNodes(n)
	for i := 0; i < n; i++ {
		state.Set(i, b.state[i])
		players.Set(i, b.player[i])
	}
	g.nodeProps[PropState] = state
	g.nodeProps[PropPlayer] = players
	g.edgeProps[PropWeight] = &EdgeValues[V]{topo: g.topo, vals: b.weights}

	if b.rewards != nil {
		rew := NewNodeValues[V](n)
		for node, r := range b.rewards {
			if node < 0 || node >= n {
				return nil, fmt.Errorf("%w: reward on node %d", ErrNodeOutOfRange, node)
			}
			rew.Set(node, r)
		}
		g.nodeProps[PropReward] = rew
	}
	return g, nil
}

// MustBuild is Build that panics on error. Intended for fixtures.
func (b *Builder[V]) MustBuild() *Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
