package objective

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/stochgraph/core"
)

// Sentinel errors returned by the constructors.
var (
	// ErrNilGraph is returned when no graph is supplied.
	ErrNilGraph = errors.New("objective: graph is nil")

	// ErrTargetRange is returned when a target or sink node is outside the graph.
	ErrTargetRange = errors.New("objective: node set exceeds graph")

	// ErrRewardSize is returned when a reward vector does not match the graph.
	ErrRewardSize = errors.New("objective: reward vector size mismatch")

	// ErrNoRewards is returned when rewards are neither given nor stored on the graph.
	ErrNoRewards = errors.New("objective: no state rewards")

	// ErrNegativeBound is returned for a negative step bound.
	ErrNegativeBound = errors.New("objective: negative step bound")

	// ErrBufferSize is returned when a result buffer is shorter than NumNodes.
	ErrBufferSize = errors.New("objective: result buffer too small")

	// ErrBufferType is returned when a result buffer has the wrong element type.
	ErrBufferType = errors.New("objective: result buffer has wrong element type")

	// ErrBoundedScheduler is returned when a step-bounded objective asks for
	// a scheduler. Optimal bounded decisions depend on the remaining steps
	// and have no memoryless form.
	ErrBoundedScheduler = errors.New("objective: bounded objectives have no memoryless scheduler")

	// ErrLongRunScheduler is returned when a long-run average objective asks
	// for a scheduler.
	ErrLongRunScheduler = errors.New("objective: long-run average objectives do not compute a scheduler")
)

// Kind enumerates the supported objective families.
type Kind uint8

const (
	// UnboundedReachability is the probability of eventually reaching a target.
	UnboundedReachability Kind = iota
	// BoundedReachability is the probability of reaching a target within k steps.
	BoundedReachability
	// UnboundedCumulative is the expected reward accumulated until a sink.
	UnboundedCumulative
	// BoundedCumulative is the expected reward accumulated over k steps.
	BoundedCumulative
	// UnboundedLRA is the expected long-run average reward per step.
	UnboundedLRA
)

var kindNames = [...]string{
	"unbounded-reachability", "bounded-reachability",
	"unbounded-cumulative", "bounded-cumulative",
	"long-run-average",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("objective: unknown kind %q", s)
}

// Bounded reports whether the kind carries a step bound.
func (k Kind) Bounded() bool { return k == BoundedReachability || k == BoundedCumulative }

// Reachability reports whether the kind is a reachability probability.
func (k Kind) Reachability() bool { return k == UnboundedReachability || k == BoundedReachability }

// Stage is the lifecycle position of an objective.
type Stage uint8

const (
	Created Stage = iota
	Preprocessed
	Solved
)

func (s Stage) String() string {
	switch s {
	case Created:
		return "created"
	case Preprocessed:
		return "preprocessed"
	case Solved:
		return "solved"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// Objective is the value-type independent view used for matching
// preprocessors and solvers.
type Objective interface {
	Kind() Kind
	Graph() *core.Graph
	Direction() core.Direction
	ComputeScheduler() bool
	Stage() Stage
	MarkPreprocessed()
}

// Option configures an objective at construction.
type Option func(*settings)

type settings struct {
	dir      core.Direction
	sched    bool
	buffer   any
	discount any
}

// WithDirection sets the optimisation direction (default Max). Ignored by
// the solver on graphs without players.
func WithDirection(d core.Direction) Option {
	return func(s *settings) { s.dir = d }
}

// WithScheduler requests a memoryless scheduler alongside the values.
// Bounded kinds reject it with ErrBoundedScheduler, long-run averages with
// ErrLongRunScheduler.
func WithScheduler() Option {
	return func(s *settings) { s.sched = true }
}

// WithResultBuffer makes the solver write values into buf instead of a
// fresh slice. buf must hold at least NumNodes entries.
func WithResultBuffer[V any](buf []V) Option {
	return func(s *settings) { s.buffer = buf }
}

// WithDiscount applies discount factor d per step to a cumulative reward.
func WithDiscount[V any](d V) Option {
	return func(s *settings) { s.discount = d }
}
