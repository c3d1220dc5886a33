package core

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/stochgraph/bitset"
)

// topology is the shared successor arena. Derived graphs point to the same
// topology, so a predecessor index computed on one is visible to all.
type topology struct {
	bounds []int   // len NumNodes+1; successors of n are succ[bounds[n]:bounds[n+1]]
	succ   []int32 // flat successor list

	mu    sync.Mutex
	preds atomic.Pointer[Predecessors]
}

// Graph is an explicit stochastic graph over dense node IDs.
type Graph struct {
	topo *topology

	semantics Semantics
	valueType ValueType
	initial   *bitset.BitSet

	// columns are keyed by property name; values are *BoolNodes, *PlayerNodes,
	// *NodeValues[V] or *EdgeValues[V].
	nodeProps map[Property]any
	edgeProps map[Property]any
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.topo.bounds) - 1 }

// NumEdges returns the total number of edges.
func (g *Graph) NumEdges() int { return len(g.topo.succ) }

// Semantics returns the semantic tag.
func (g *Graph) Semantics() Semantics { return g.semantics }

// ValueType returns the value-type tag.
func (g *Graph) ValueType() ValueType { return g.valueType }

// Initial returns the set of initial nodes. The set is shared; clone it
// before mutating.
func (g *Graph) Initial() *bitset.BitSet { return g.initial }

// NumSuccessors returns the out-degree of node.
func (g *Graph) NumSuccessors(node int) int {
	return g.topo.bounds[node+1] - g.topo.bounds[node]
}

// Successor returns the target of edge i of node.
func (g *Graph) Successor(node, i int) int {
	g.checkEdge(node, i)
	return int(g.topo.succ[g.topo.bounds[node]+i])
}

// Successors returns the successor slice of node. The slice aliases the
// graph arena and must not be modified.
func (g *Graph) Successors(node int) []int32 {
	t := g.topo
	return t.succ[t.bounds[node]:t.bounds[node+1]]
}

// EdgeOffset returns the global arena offset of edge (node, 0); edge i of
// node lives at EdgeOffset(node)+i in every edge column.
func (g *Graph) EdgeOffset(node int) int { return g.topo.bounds[node] }

// SuccessorIndex returns the first edge index of node leading to succ, or -1.
func (g *Graph) SuccessorIndex(node, succ int) int {
	for i, s := range g.Successors(node) {
		if int(s) == succ {
			return i
		}
	}
	return -1
}

// SetSuccessor redirects edge i of node to succ and drops the predecessor
// index. The change is visible in every graph derived from the same topology.
func (g *Graph) SetSuccessor(node, i, succ int) {
	g.checkEdge(node, i)
	if succ < 0 || succ >= g.NumNodes() {
		panic(fmt.Sprintf("core: %v: %d", ErrSuccessorOutOfRange, succ))
	}
	g.topo.succ[g.topo.bounds[node]+i] = int32(succ)
	g.ClearPredecessors()
}

func (g *Graph) checkEdge(node, i int) {
	if node < 0 || node >= g.NumNodes() {
		panic(fmt.Sprintf("core: %v: %d", ErrNodeOutOfRange, node))
	}
	if i < 0 || i >= g.NumSuccessors(node) {
		panic(fmt.Sprintf("core: edge %d out of range for node %d (degree %d)", i, node, g.NumSuccessors(node)))
	}
}

// IsState reports whether node is a model state.
func (g *Graph) IsState(node int) bool {
	if c, ok := g.nodeProps[PropState].(*BoolNodes); ok {
		return c.Get(node)
	}
	return true
}

// Player returns the player resolving node.
func (g *Graph) Player(node int) Player {
	if c, ok := g.nodeProps[PropPlayer].(*PlayerNodes); ok {
		return c.Get(node)
	}
	return PlayerStochastic
}

// States returns the set of state nodes.
func (g *Graph) States() *bitset.BitSet {
	if c, ok := g.nodeProps[PropState].(*BoolNodes); ok {
		return c.Bits().Clone()
	}
	return bitset.Range(0, g.NumNodes())
}

// NumStates returns the number of state nodes.
func (g *Graph) NumStates() int {
	if c, ok := g.nodeProps[PropState].(*BoolNodes); ok {
		return c.Bits().Cardinality()
	}
	return g.NumNodes()
}

// Derive returns a graph sharing this graph's topology and predecessor
// index, with its own copy of the property tables and tags. Columns are
// shared until replaced with Register*Property on the derived graph.
func (g *Graph) Derive() *Graph {
	d := &Graph{
		topo:      g.topo,
		semantics: g.semantics,
		valueType: g.valueType,
		initial:   g.initial.Clone(),
		nodeProps: make(map[Property]any, len(g.nodeProps)),
		edgeProps: make(map[Property]any, len(g.edgeProps)),
	}
	for k, v := range g.nodeProps {
		d.nodeProps[k] = v
	}
	for k, v := range g.edgeProps {
		d.edgeProps[k] = v
	}
	return d
}

// SetSemantics retags the graph. Intended for derived graphs.
func (g *Graph) SetSemantics(s Semantics) { g.semantics = s }

// SetValueType retags the graph. Intended for derived graphs.
func (g *Graph) SetValueType(v ValueType) { g.valueType = v }

// SharesTopology reports whether g and other were derived from the same arena.
func (g *Graph) SharesTopology(other *Graph) bool { return g.topo == other.topo }

// String summarises the graph for logs.
func (g *Graph) String() string {
	return fmt.Sprintf("%s/%s graph: %d nodes, %d edges", g.semantics, g.valueType, g.NumNodes(), g.NumEdges())
}
