package objective

import (
	"fmt"

	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/scheduler"
)

// Base carries the state shared by every objective.
type Base[V any] struct {
	kind  Kind
	graph *core.Graph
	dir   core.Direction
	bound int
	sched bool
	stage Stage

	buffer []V
	values []V
	draft  *scheduler.Settable
	frozen *scheduler.Simple
}

func newBase[V any](kind Kind, g *core.Graph, opts []Option) (Base[V], settings, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	b := Base[V]{kind: kind, graph: g, dir: s.dir, sched: s.sched}
	if g == nil {
		return b, s, ErrNilGraph
	}
	if s.sched && kind.Bounded() {
		return b, s, fmt.Errorf("%w: %s", ErrBoundedScheduler, kind)
	}
	if s.sched && kind == UnboundedLRA {
		return b, s, ErrLongRunScheduler
	}
	if s.buffer != nil {
		buf, ok := s.buffer.([]V)
		if !ok {
			return b, s, fmt.Errorf("%w: %T", ErrBufferType, s.buffer)
		}
		if len(buf) < g.NumNodes() {
			return b, s, fmt.Errorf("%w: %d < %d", ErrBufferSize, len(buf), g.NumNodes())
		}
		b.buffer = buf[:g.NumNodes()]
	}
	return b, s, nil
}

func checkSet(g *core.Graph, set *bitset.BitSet, what string) error {
	if set == nil {
		return fmt.Errorf("%w: %s is nil", ErrTargetRange, what)
	}
	if set.Len() > g.NumNodes() {
		return fmt.Errorf("%w: %s contains node %d, graph has %d nodes", ErrTargetRange, what, set.Len()-1, g.NumNodes())
	}
	return nil
}

func (b *Base[V]) mustBeOpen() {
	if b.stage == Solved {
		panic(fmt.Sprintf("objective: %s mutated after it was solved", b.kind))
	}
}

func (b *Base[V]) mustBeSolved() {
	if b.stage != Solved {
		panic(fmt.Sprintf("objective: %s result read in stage %s", b.kind, b.stage))
	}
}

// Kind returns the objective family.
func (b *Base[V]) Kind() Kind { return b.kind }

// Graph returns the graph the objective is posed on.
func (b *Base[V]) Graph() *core.Graph { return b.graph }

// SetGraph swaps in a graph derived from the current one. The node count
// must stay the same.
func (b *Base[V]) SetGraph(g *core.Graph) {
	b.mustBeOpen()
	if g.NumNodes() != b.graph.NumNodes() {
		panic(fmt.Sprintf("objective: replacement graph has %d nodes, want %d", g.NumNodes(), b.graph.NumNodes()))
	}
	b.graph = g
}

// Direction returns the optimisation direction of PlayerOne.
func (b *Base[V]) Direction() core.Direction { return b.dir }

// Bound returns the step bound of bounded kinds and 0 otherwise.
func (b *Base[V]) Bound() int { return b.bound }

// ComputeScheduler reports whether a scheduler was requested.
func (b *Base[V]) ComputeScheduler() bool { return b.sched }

// Stage returns the lifecycle stage.
func (b *Base[V]) Stage() Stage { return b.stage }

// MarkPreprocessed records that at least one preprocessor ran.
func (b *Base[V]) MarkPreprocessed() {
	b.mustBeOpen()
	b.stage = Preprocessed
}

// SchedulerDraft returns the mutable scheduler shared by preprocessors and
// the solver, creating it on first use. It returns nil when no scheduler
// was requested.
func (b *Base[V]) SchedulerDraft() *scheduler.Settable {
	if !b.sched {
		return nil
	}
	b.mustBeOpen()
	if b.draft == nil {
		b.draft = scheduler.New(b.graph)
	}
	return b.draft
}

// ResultBuffer returns the caller-supplied result buffer, or nil.
func (b *Base[V]) ResultBuffer() []V { return b.buffer }

// Complete stores the solution and moves the objective to Solved. The
// scheduler draft, if any, is frozen.
func (b *Base[V]) Complete(values []V) {
	b.mustBeOpen()
	if len(values) != b.graph.NumNodes() {
		panic(fmt.Sprintf("objective: %d values for %d nodes", len(values), b.graph.NumNodes()))
	}
	b.values = values
	if b.draft != nil {
		b.frozen = b.draft.Freeze()
	}
	b.stage = Solved
}

// Values returns one value per node. Panics before Solved.
func (b *Base[V]) Values() []V {
	b.mustBeSolved()
	return b.values
}

// Value returns the value of node. Panics before Solved.
func (b *Base[V]) Value(node int) V {
	b.mustBeSolved()
	return b.values[node]
}

// Scheduler returns the computed scheduler, or nil when none was requested.
// Panics before Solved.
func (b *Base[V]) Scheduler() scheduler.Scheduler {
	b.mustBeSolved()
	if b.frozen == nil {
		return nil
	}
	return b.frozen
}
