package dfs

import (
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
)

// unvisited marks a node without a discovery index.
const unvisited = -1

// Components is a partition of (a subset of) the nodes into strongly
// connected components, numbered in reverse topological order.
type Components struct {
	// Of maps every node to its component, or -1 if it was excluded.
	Of []int32

	bounds  []int
	members []int
}

// Count returns the number of components.
func (c *Components) Count() int { return len(c.bounds) - 1 }

// Component returns the nodes of component i. The slice aliases c.
func (c *Components) Component(i int) []int { return c.members[c.bounds[i]:c.bounds[i+1]] }

// Order returns every included node, grouped by component, sinks first.
func (c *Components) Order() []int { return c.members }

// frame is one level of the explicit DFS stack.
type frame struct {
	node int
	edge int
}

// tarjan holds the state of one traversal.
type tarjan struct {
	graph   *core.Graph
	opts    options
	index   []int32
	lowlink []int32
	onStack *bitset.BitSet
	stack   []int
	calls   []frame
	counter int32
	res     *Components
}

// SCC computes the strongly connected components of g.
// Returns ErrGraphNil, or the context error on cancellation.
//
// Complexity: O(V + E) time, O(V) memory. The DFS keeps an explicit call
// stack, so deep graphs do not grow the goroutine stack.
func SCC(g *core.Graph, opts ...Option) (*Components, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	n := g.NumNodes()
	t := &tarjan{
		graph:   g,
		opts:    o,
		index:   make([]int32, n),
		lowlink: make([]int32, n),
		onStack: bitset.New(n),
		res: &Components{
			Of:      make([]int32, n),
			bounds:  []int{0},
			members: make([]int, 0, n),
		},
	}
	for i := range t.index {
		t.index[i] = unvisited
		t.res.Of[i] = -1
	}
	for v := 0; v < n; v++ {
		if t.index[v] != unvisited || !t.included(v) {
			continue
		}
		if err := o.ctx.Err(); err != nil {
			return nil, err
		}
		t.strongConnect(v)
	}
	return t.res, nil
}

func (t *tarjan) included(v int) bool {
	return t.opts.nodes == nil || t.opts.nodes.Get(v)
}

func (t *tarjan) discover(v int) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack.Set(v)
	t.calls = append(t.calls, frame{node: v})
}

// strongConnect runs Tarjan's algorithm from root without recursion.
func (t *tarjan) strongConnect(root int) {
	t.discover(root)
	for len(t.calls) > 0 {
		top := &t.calls[len(t.calls)-1]
		v := top.node
		succs := t.graph.Successors(v)
		if top.edge < len(succs) {
			w := int(succs[top.edge])
			top.edge++
			switch {
			case !t.included(w):
			case t.index[w] == unvisited:
				t.discover(w)
			case t.onStack.Get(w):
				t.lowlink[v] = min(t.lowlink[v], t.index[w])
			}
			continue
		}

		// all successors of v explored
		t.calls = t.calls[:len(t.calls)-1]
		if len(t.calls) > 0 {
			parent := t.calls[len(t.calls)-1].node
			t.lowlink[parent] = min(t.lowlink[parent], t.lowlink[v])
		}
		if t.lowlink[v] != t.index[v] {
			continue
		}
		id := int32(t.res.Count())
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack.Clear(w)
			t.res.Of[w] = id
			t.res.members = append(t.res.members, w)
			if w == v {
				break
			}
		}
		t.res.bounds = append(t.res.bounds, len(t.res.members))
	}
}
