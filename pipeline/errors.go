package pipeline

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
)

var (
	// ErrUnsupported is wrapped by every UnsupportedError.
	ErrUnsupported = errors.New("pipeline: no solver supports the objective")

	// ErrNilObjective is returned for a nil objective.
	ErrNilObjective = errors.New("pipeline: objective is nil")

	// ErrAlreadySolved is returned when an objective is submitted twice.
	ErrAlreadySolved = errors.New("pipeline: objective already solved")

	// ErrUnknownPreprocessor is returned when a disabled name is not registered.
	ErrUnknownPreprocessor = errors.New("pipeline: unknown preprocessor")

	// ErrInvalidRegistration is returned for an empty name or a nil factory
	// or solver.
	ErrInvalidRegistration = errors.New("pipeline: invalid registration")
)

// UnsupportedError reports an objective no registered solver accepts.
type UnsupportedError struct {
	Kind      objective.Kind
	Semantics core.Semantics
	ValueType core.ValueType
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("pipeline: no solver for %s on %s graph with %s values", e.Kind, e.Semantics, e.ValueType)
}

// Unwrap makes errors.Is(err, ErrUnsupported) hold.
func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }
