package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and property access.
var (
	// ErrSuccessorOutOfRange indicates an edge pointing outside [0, NumNodes).
	ErrSuccessorOutOfRange = errors.New("core: successor out of range")

	// ErrNodeOutOfRange indicates a node ID outside [0, NumNodes).
	ErrNodeOutOfRange = errors.New("core: node out of range")

	// ErrPropertyNotFound indicates a lookup of an unregistered property.
	ErrPropertyNotFound = errors.New("core: property not found")

	// ErrPropertyType indicates a property registered with another value type.
	ErrPropertyType = errors.New("core: property has a different type")

	// ErrPropertySize indicates a column whose length does not match the graph.
	ErrPropertySize = errors.New("core: property size mismatch")

	// ErrEmptyGraph indicates Build was called without any node.
	ErrEmptyGraph = errors.New("core: graph has no nodes")
)

// Semantics tags the stochastic model a graph encodes.
type Semantics uint8

const (
	// DTMC is a discrete-time Markov chain: every node is stochastic.
	DTMC Semantics = iota
	// CTMC is a continuous-time Markov chain; weights are rates.
	CTMC
	// MDP is a Markov decision process with one controlling player.
	MDP
	// SMG is a two-player turn-based stochastic game.
	SMG
)

var semanticsNames = [...]string{"dtmc", "ctmc", "mdp", "smg"}

func (s Semantics) String() string {
	if int(s) < len(semanticsNames) {
		return semanticsNames[s]
	}
	return fmt.Sprintf("semantics(%d)", uint8(s))
}

// ParseSemantics maps "dtmc", "ctmc", "mdp" or "smg" to a Semantics.
func ParseSemantics(s string) (Semantics, error) {
	for i, name := range semanticsNames {
		if name == s {
			return Semantics(i), nil
		}
	}
	return 0, fmt.Errorf("core: unknown semantics %q", s)
}

// ValueType tags the algebra the weight column is expressed in.
type ValueType uint8

const (
	// Real weights are float64 probabilities or rates.
	Real ValueType = iota
	// Interval weights are [lo, hi] probability bounds.
	Interval
)

func (v ValueType) String() string {
	switch v {
	case Real:
		return "real"
	case Interval:
		return "interval"
	default:
		return fmt.Sprintf("valuetype(%d)", uint8(v))
	}
}

// ParseValueType maps "real" or "interval" to a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "real", "":
		return Real, nil
	case "interval":
		return Interval, nil
	}
	return 0, fmt.Errorf("core: unknown value type %q", s)
}

// Player identifies who resolves the successor choice at a node.
type Player uint8

const (
	// PlayerStochastic nodes choose a successor by edge weight.
	PlayerStochastic Player = iota
	// PlayerOne is the optimising player.
	PlayerOne
	// PlayerTwo is the adversary in a game; it optimises the other way.
	PlayerTwo
	// PlayerExplorer marks nodes whose choice is deferred to an explorer.
	// Numeric and qualitative algorithms reject such nodes.
	PlayerExplorer
)

var playerNames = [...]string{"stochastic", "one", "two", "explorer"}

func (p Player) String() string {
	if int(p) < len(playerNames) {
		return playerNames[p]
	}
	return fmt.Sprintf("player(%d)", uint8(p))
}

// ParsePlayer maps a player name to a Player.
func ParsePlayer(s string) (Player, error) {
	for i, name := range playerNames {
		if name == s {
			return Player(i), nil
		}
	}
	return 0, fmt.Errorf("core: unknown player %q", s)
}

// Property names a node or edge column.
type Property string

// Load-bearing property names.
const (
	PropState  Property = "state"
	PropPlayer Property = "player"
	PropWeight Property = "weight"
	PropReward Property = "reward"
)

// GraphOption configures a Builder before nodes are added.
type GraphOption func(*graphConfig)

type graphConfig struct {
	semantics Semantics
	valueType ValueType
	initial   []int
	nodeCap   int
	edgeCap   int
}

// WithSemantics sets the semantic tag of the built graph (default DTMC).
func WithSemantics(s Semantics) GraphOption {
	return func(c *graphConfig) { c.semantics = s }
}

// WithValueType sets the value-type tag of the built graph (default Real).
func WithValueType(v ValueType) GraphOption {
	return func(c *graphConfig) { c.valueType = v }
}

// WithInitial marks the given nodes as initial.
func WithInitial(nodes ...int) GraphOption {
	return func(c *graphConfig) { c.initial = append(c.initial, nodes...) }
}

// WithCapacity pre-sizes the node and edge arenas.
func WithCapacity(nodes, edges int) GraphOption {
	return func(c *graphConfig) {
		if nodes > 0 {
			c.nodeCap = nodes
		}
		if edges > 0 {
			c.edgeCap = edges
		}
	}
}

// Direction is the optimisation direction of the controlling player.
type Direction uint8

const (
	// Max maximises the objective value.
	Max Direction = iota
	// Min minimises the objective value.
	Min
)

// Opposite returns the other direction; PlayerTwo optimises in it.
func (d Direction) Opposite() Direction {
	if d == Max {
		return Min
	}
	return Max
}

func (d Direction) String() string {
	if d == Min {
		return "min"
	}
	return "max"
}

// ParseDirection maps "min" or "max" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "max":
		return Max, nil
	case "min":
		return Min, nil
	}
	return 0, fmt.Errorf("core: unknown direction %q", s)
}

// DirectionFor returns the direction player optimises in when PlayerOne
// optimises in d. Stochastic and explorer nodes return d unchanged.
func DirectionFor(p Player, d Direction) Direction {
	if p == PlayerTwo {
		return d.Opposite()
	}
	return d
}
