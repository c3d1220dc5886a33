// Package scheduler stores memoryless strategies: for every node, the index of
// the outgoing edge the controlling player picks.
//
// A Settable is filled in by qualitative and numeric algorithms and then
// frozen into a read-only Simple. Undecided nodes report Unset.
package scheduler

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
)

// Unset marks a node without a decision. It is distinct from edge 0.
const Unset = -1

// Scheduler is the read-only view of a memoryless strategy.
type Scheduler interface {
	// Decision returns the chosen edge index of node, or Unset.
	Decision(node int) int
	// NumNodes returns the number of nodes the scheduler covers.
	NumNodes() int
}

// Settable is a mutable scheduler sized to a graph.
type Settable struct {
	graph     *core.Graph
	decisions []int32
	frozen    bool
}

// New returns a settable scheduler with every node Unset.
func New(g *core.Graph) *Settable {
	d := make([]int32, g.NumNodes())
	for i := range d {
		d[i] = Unset
	}
	return &Settable{graph: g, decisions: d}
}

// Set fixes the decision of node to edge. It panics when edge is not a
// valid edge index of node or the scheduler is frozen.
func (s *Settable) Set(node, edge int) {
	if s.frozen {
		panic("scheduler: set on frozen scheduler")
	}
	if edge < 0 || edge >= s.graph.NumSuccessors(node) {
		panic(fmt.Sprintf("scheduler: edge %d out of range for node %d (degree %d)",
			edge, node, s.graph.NumSuccessors(node)))
	}
	s.decisions[node] = int32(edge)
}

// SetIfUnset fixes the decision of node unless one is present and reports
// whether it wrote.
func (s *Settable) SetIfUnset(node, edge int) bool {
	if s.decisions[node] != Unset {
		return false
	}
	s.Set(node, edge)
	return true
}

// Decision returns the chosen edge of node, or Unset.
func (s *Settable) Decision(node int) int { return int(s.decisions[node]) }

// IsSet reports whether node has a decision.
func (s *Settable) IsSet(node int) bool { return s.decisions[node] != Unset }

// NumNodes returns the number of nodes covered.
func (s *Settable) NumNodes() int { return len(s.decisions) }

// Graph returns the graph the scheduler was sized for.
func (s *Settable) Graph() *core.Graph { return s.graph }

// Freeze stops further mutation and returns the read-only view. The view
// shares storage with s.
func (s *Settable) Freeze() *Simple {
	s.frozen = true
	return &Simple{decisions: s.decisions}
}

// Simple is a frozen scheduler.
type Simple struct {
	decisions []int32
}

// Decision returns the chosen edge of node, or Unset.
func (s *Simple) Decision(node int) int { return int(s.decisions[node]) }

// NumNodes returns the number of nodes covered.
func (s *Simple) NumNodes() int { return len(s.decisions) }

// Decided returns the nodes that have a decision.
func (s *Simple) Decided() *bitset.BitSet {
	b := bitset.New(len(s.decisions))
	for i, d := range s.decisions {
		if d != Unset {
			b.Set(i)
		}
	}
	return b
}

// Successor resolves the decision of node to the chosen successor in g, or
// -1 when the node is undecided.
func Successor(s Scheduler, g *core.Graph, node int) int {
	d := s.Decision(node)
	if d == Unset {
		return -1
	}
	return g.Successor(node, d)
}
