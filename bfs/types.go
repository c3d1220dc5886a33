package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/stochgraph/bitset"
)

// Sentinel errors for BFS execution.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrStartOutOfRange is returned when a start node is outside the graph.
	ErrStartOutOfRange = errors.New("bfs: start node out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a node. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(node, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterEdge can skip edge i of node by returning false. In reverse mode
	// node is the predecessor owning the edge.
	FilterEdge func(node, i int) bool

	// Reverse follows edges backwards; requires the predecessor index.
	Reverse bool

	// err is recorded during option parsing.
	err error
}

// DefaultOptions returns Options with Background context, no depth limit,
// no filtering and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		OnVisit:    func(int, int) error { return nil },
		FilterEdge: func(int, int) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(node, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterEdge skips edges when fn returns false.
func WithFilterEdge(fn func(node, i int) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// WithReverse explores predecessors instead of successors.
func WithReverse() Option {
	return func(o *Options) { o.Reverse = true }
}

// Result holds the outcome of a traversal.
//   - Reached: every node visited.
//   - Order: nodes in visit sequence.
//   - Depth: distance from the start set per node, -1 if unreached.
type Result struct {
	Reached *bitset.BitSet
	Order   []int
	Depth   []int32
}

// MaxDepth returns the largest depth reached.
func (r *Result) MaxDepth() int {
	if len(r.Order) == 0 {
		return -1
	}
	return int(r.Depth[r.Order[len(r.Order)-1]])
}
