package bfs

import (
	"fmt"

	"github.com/gammazero/deque"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
)

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	preds *core.Predecessors
	opts  Options
	queue deque.Deque[int]
	res   *Result
}

// BFS explores g breadth-first from every node in start.
// Returns ErrGraphNil, ErrStartOutOfRange, ErrOptionViolation, the context
// error on cancellation, or any OnVisit error.
func BFS(g *core.Graph, start *bitset.BitSet, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := g.NumNodes()
	if start.Len() > n {
		return nil, fmt.Errorf("%w: %d (nodes: %d)", ErrStartOutOfRange, start.Len()-1, n)
	}

	w := &walker{
		graph: g,
		opts:  o,
		res: &Result{
			Reached: bitset.New(n),
			Order:   make([]int, 0, n),
			Depth:   make([]int32, n),
		},
	}
	if o.Reverse {
		g.ComputePredecessors()
		w.preds = g.Predecessors()
	}
	for i := range w.res.Depth {
		w.res.Depth[i] = -1
	}
	for s := range start.All() {
		w.enqueue(s, 0)
	}
	return w.res, w.loop()
}

// enqueue marks node reached at depth d and adds it to the queue.
func (w *walker) enqueue(node, d int) {
	w.res.Reached.Set(node)
	w.res.Depth[node] = int32(d)
	w.queue.PushBack(node)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for w.queue.Len() > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		node := w.queue.PopFront()
		depth := int(w.res.Depth[node])
		w.res.Order = append(w.res.Order, node)
		if err := w.opts.OnVisit(node, depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", node, err)
		}
		if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
			continue
		}
		w.expand(node, depth+1)
	}
	return nil
}

// expand enqueues every unseen neighbour of node that passes the filter.
func (w *walker) expand(node, next int) {
	if w.preds != nil {
		edges := w.preds.Edges(node)
		for k, p := range w.preds.Nodes(node) {
			pred := int(p)
			if w.res.Reached.Get(pred) || !w.opts.FilterEdge(pred, int(edges[k])) {
				continue
			}
			w.enqueue(pred, next)
		}
		return
	}
	for i, s := range w.graph.Successors(node) {
		succ := int(s)
		if w.res.Reached.Get(succ) || !w.opts.FilterEdge(node, i) {
			continue
		}
		w.enqueue(succ, next)
	}
}

// Reachable returns the nodes reachable from the graph's initial nodes.
func Reachable(g *core.Graph) (*bitset.BitSet, error) {
	res, err := BFS(g, g.Initial())
	if err != nil {
		return nil, err
	}
	return res.Reached, nil
}
