package builder

import "errors"

var (
	// ErrTooFewNodes indicates a node count below the constructor's minimum.
	ErrTooFewNodes = errors.New("builder: too few nodes")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrInvalidDegree indicates an out-degree or action count outside the
	// range the node count allows.
	ErrInvalidDegree = errors.New("builder: invalid degree")

	// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed
	// or WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed indicates a nil constructor or a graph the core
	// builder rejected.
	ErrConstructFailed = errors.New("builder: construction failed")
)
