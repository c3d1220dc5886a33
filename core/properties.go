package core

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/bitset"
)

// BoolNodes is a boolean node column backed by a bitset.
type BoolNodes struct {
	bits *bitset.BitSet
	n    int
}

// NewBoolNodes returns an all-false column for n nodes.
func NewBoolNodes(n int) *BoolNodes { return &BoolNodes{bits: bitset.New(n), n: n} }

// Get returns the value at node.
func (c *BoolNodes) Get(node int) bool { return c.bits.Get(node) }

// Set stores v at node.
func (c *BoolNodes) Set(node int, v bool) { c.bits.SetTo(node, v) }

// Bits exposes the backing set.
func (c *BoolNodes) Bits() *bitset.BitSet { return c.bits }

// Len returns the number of nodes the column covers.
func (c *BoolNodes) Len() int { return c.n }

// PlayerNodes is the player column.
type PlayerNodes struct {
	players []Player
}

// NewPlayerNodes returns a column of n stochastic nodes.
func NewPlayerNodes(n int) *PlayerNodes { return &PlayerNodes{players: make([]Player, n)} }

// Get returns the player at node.
func (c *PlayerNodes) Get(node int) Player { return c.players[node] }

// Set stores p at node.
func (c *PlayerNodes) Set(node int, p Player) { c.players[node] = p }

// Len returns the number of nodes the column covers.
func (c *PlayerNodes) Len() int { return len(c.players) }

// NodeValues is a typed per-node column.
type NodeValues[V any] struct {
	vals []V
}

// NewNodeValues returns a zero-valued column for n nodes.
func NewNodeValues[V any](n int) *NodeValues[V] { return &NodeValues[V]{vals: make([]V, n)} }

// Get returns the value at node.
func (c *NodeValues[V]) Get(node int) V { return c.vals[node] }

// Set stores v at node.
func (c *NodeValues[V]) Set(node int, v V) { c.vals[node] = v }

// Values exposes the backing slice.
func (c *NodeValues[V]) Values() []V { return c.vals }

// Len returns the number of nodes the column covers.
func (c *NodeValues[V]) Len() int { return len(c.vals) }

// EdgeValues is a typed per-edge column addressed by (node, edge index).
type EdgeValues[V any] struct {
	topo *topology
	vals []V
}

// NewEdgeValues returns a zero-valued edge column laid out for g.
func NewEdgeValues[V any](g *Graph) *EdgeValues[V] {
	return &EdgeValues[V]{topo: g.topo, vals: make([]V, g.NumEdges())}
}

// Get returns the value of edge i of node.
func (c *EdgeValues[V]) Get(node, i int) V { return c.vals[c.topo.bounds[node]+i] }

// Set stores v for edge i of node.
func (c *EdgeValues[V]) Set(node, i int, v V) { c.vals[c.topo.bounds[node]+i] = v }

// Row returns the values of all edges of node, aligned with Successors(node).
// The slice aliases the column.
func (c *EdgeValues[V]) Row(node int) []V {
	return c.vals[c.topo.bounds[node]:c.topo.bounds[node+1]]
}

// Values exposes the backing slice in arena order.
func (c *EdgeValues[V]) Values() []V { return c.vals }

// Len returns the number of edges the column covers.
func (c *EdgeValues[V]) Len() int { return len(c.vals) }

// Clone returns an independent copy laid out on the same topology.
func (c *EdgeValues[V]) Clone() *EdgeValues[V] {
	vals := make([]V, len(c.vals))
	copy(vals, c.vals)
	return &EdgeValues[V]{topo: c.topo, vals: vals}
}

// column is satisfied by every node and edge column.
type column interface{ Len() int }

// RegisterNodeProperty stores a node column under name, replacing any
// previous column of that name.
func (g *Graph) RegisterNodeProperty(name Property, col any) error {
	c, ok := col.(column)
	if !ok {
		return fmt.Errorf("%w: %T is not a column", ErrPropertyType, col)
	}
	if c.Len() != g.NumNodes() {
		return fmt.Errorf("%w: %s has %d entries, graph has %d nodes", ErrPropertySize, name, c.Len(), g.NumNodes())
	}
	switch name {
	case PropState:
		if _, ok := col.(*BoolNodes); !ok {
			return fmt.Errorf("%w: %s must be *BoolNodes, got %T", ErrPropertyType, name, col)
		}
	case PropPlayer:
		if _, ok := col.(*PlayerNodes); !ok {
			return fmt.Errorf("%w: %s must be *PlayerNodes, got %T", ErrPropertyType, name, col)
		}
	}
	g.nodeProps[name] = col
	return nil
}

// RegisterEdgeProperty stores an edge column under name.
func (g *Graph) RegisterEdgeProperty(name Property, col any) error {
	c, ok := col.(column)
	if !ok {
		return fmt.Errorf("%w: %T is not a column", ErrPropertyType, col)
	}
	if c.Len() != g.NumEdges() {
		return fmt.Errorf("%w: %s has %d entries, graph has %d edges", ErrPropertySize, name, c.Len(), g.NumEdges())
	}
	g.edgeProps[name] = col
	return nil
}

// HasNodeProperty reports whether a node column named name exists.
func (g *Graph) HasNodeProperty(name Property) bool {
	_, ok := g.nodeProps[name]
	return ok
}

// HasEdgeProperty reports whether an edge column named name exists.
func (g *Graph) HasEdgeProperty(name Property) bool {
	_, ok := g.edgeProps[name]
	return ok
}

// RemoveNodeProperty drops the node column name, if any.
func (g *Graph) RemoveNodeProperty(name Property) { delete(g.nodeProps, name) }

// NodeColumn returns the typed node column name of g.
func NodeColumn[V any](g *Graph, name Property) (*NodeValues[V], error) {
	raw, ok := g.nodeProps[name]
	if !ok {
		return nil, fmt.Errorf("%w: node property %s", ErrPropertyNotFound, name)
	}
	col, ok := raw.(*NodeValues[V])
	if !ok {
		return nil, fmt.Errorf("%w: node property %s is %T", ErrPropertyType, name, raw)
	}
	return col, nil
}

// EdgeColumn returns the typed edge column name of g.
func EdgeColumn[V any](g *Graph, name Property) (*EdgeValues[V], error) {
	raw, ok := g.edgeProps[name]
	if !ok {
		return nil, fmt.Errorf("%w: edge property %s", ErrPropertyNotFound, name)
	}
	col, ok := raw.(*EdgeValues[V])
	if !ok {
		return nil, fmt.Errorf("%w: edge property %s is %T", ErrPropertyType, name, raw)
	}
	return col, nil
}

// Weights is shorthand for EdgeColumn[V](g, PropWeight).
func Weights[V any](g *Graph) (*EdgeValues[V], error) { return EdgeColumn[V](g, PropWeight) }
