package core

// Predecessors is the reverse edge index of a graph: for each node, the list
// of (predecessor, edge index) pairs of edges entering it.
type Predecessors struct {
	bounds []int
	nodes  []int32
	edges  []int32
}

// Len returns the in-degree of node.
func (p *Predecessors) Len(node int) int { return p.bounds[node+1] - p.bounds[node] }

// Nodes returns the predecessors of node, aligned with Edges. The slice
// aliases the index and must not be modified.
func (p *Predecessors) Nodes(node int) []int32 { return p.nodes[p.bounds[node]:p.bounds[node+1]] }

// Edges returns, for every entry of Nodes(node), the edge index at the
// predecessor that points to node.
func (p *Predecessors) Edges(node int) []int32 { return p.edges[p.bounds[node]:p.bounds[node+1]] }

// ComputePredecessors builds the predecessor index in O(V+E) unless a valid
// one is already memoised. Safe for concurrent use.
func (g *Graph) ComputePredecessors() {
	t := g.topo
	if t.preds.Load() != nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.preds.Load() != nil {
		return
	}
	n := g.NumNodes()
	p := &Predecessors{
		bounds: make([]int, n+1),
		nodes:  make([]int32, len(t.succ)),
		edges:  make([]int32, len(t.succ)),
	}
	for _, s := range t.succ {
		p.bounds[s+1]++
	}
	for i := 0; i < n; i++ {
		p.bounds[i+1] += p.bounds[i]
	}
	fill := make([]int, n)
	copy(fill, p.bounds[:n])
	for node := 0; node < n; node++ {
		for i, s := range t.succ[t.bounds[node]:t.bounds[node+1]] {
			at := fill[s]
			p.nodes[at] = int32(node)
			p.edges[at] = int32(i)
			fill[s]++
		}
	}
	t.preds.Store(p)
}

// HasPredecessors reports whether a valid predecessor index is memoised.
func (g *Graph) HasPredecessors() bool { return g.topo.preds.Load() != nil }

// ClearPredecessors drops the memoised predecessor index.
func (g *Graph) ClearPredecessors() {
	g.topo.mu.Lock()
	g.topo.preds.Store(nil)
	g.topo.mu.Unlock()
}

// Predecessors returns the memoised index. It panics when
// ComputePredecessors has not been called since the last mutation.
func (g *Graph) Predecessors() *Predecessors {
	p := g.topo.preds.Load()
	if p == nil {
		panic("core: predecessors not computed")
	}
	return p
}

// NumPredecessors returns the in-degree of node. Panics without a valid index.
func (g *Graph) NumPredecessors(node int) int { return g.Predecessors().Len(node) }

// Predecessor returns the k-th predecessor of node. Panics without a valid index.
func (g *Graph) Predecessor(node, k int) int { return int(g.Predecessors().Nodes(node)[k]) }

// PredecessorEdge returns the edge index at Predecessor(node, k) that enters
// node. Panics without a valid index.
func (g *Graph) PredecessorEdge(node, k int) int { return int(g.Predecessors().Edges(node)[k]) }
