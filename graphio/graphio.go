// Package graphio reads explicit graphs from a small JSON description, for
// tests and command-line tooling.
//
//	{
//	  "semantics": "mdp",
//	  "valueType": "real",
//	  "initial": [0],
//	  "labels": {"goal": [3]},
//	  "nodes": [
//	    {"player": "one", "successors": [{"to": 1}, {"to": 2}]},
//	    {"state": false, "successors": [{"to": 0, "weight": 0.5}, {"to": 3, "weight": 0.5}]},
//	    ...
//	  ]
//	}
//
// "state" defaults to true and "player" to "stochastic". A weight is a
// number or, on interval graphs, a [lo, hi] pair; a missing weight is 0,
// which is what choices at player nodes carry. "reward" is an optional
// state reward.
package graphio

import (
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
)

var qjson = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrDecode is returned when the input is not valid JSON.
	ErrDecode = errors.New("graphio: cannot decode graph")

	// ErrFormat is returned when valid JSON does not describe a graph.
	ErrFormat = errors.New("graphio: malformed graph description")
)

// Model is a decoded graph with its named node sets.
type Model struct {
	Graph  *core.Graph
	Labels map[string]*bitset.BitSet
}

// Label returns the node set called name.
func (m *Model) Label(name string) (*bitset.BitSet, error) {
	set, ok := m.Labels[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown label %q", ErrFormat, name)
	}
	return set, nil
}

type fileGraph struct {
	Semantics string           `json:"semantics"`
	ValueType string           `json:"valueType"`
	Initial   []int            `json:"initial"`
	Labels    map[string][]int `json:"labels"`
	Nodes     []fileNode       `json:"nodes"`
}

type fileNode struct {
	State      *bool      `json:"state"`
	Player     string     `json:"player"`
	Successors []fileEdge `json:"successors"`
	Reward     *float64   `json:"reward"`
}

type fileEdge struct {
	To     int                 `json:"to"`
	Weight jsoniter.RawMessage `json:"weight"`
}

// ReadFile opens path and calls Read.
func ReadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphio: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes one graph from r.
func Read(r io.Reader) (*Model, error) {
	var fg fileGraph
	if err := qjson.NewDecoder(r).Decode(&fg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if fg.Semantics == "" {
		fg.Semantics = core.DTMC.String()
	}
	sem, err := core.ParseSemantics(fg.Semantics)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	vt, err := core.ParseValueType(fg.ValueType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	opts := []core.GraphOption{
		core.WithSemantics(sem),
		core.WithValueType(vt),
		core.WithInitial(fg.Initial...),
		core.WithCapacity(len(fg.Nodes), 0),
	}

	var g *core.Graph
	switch vt {
	case core.Interval:
		g, err = build(fg, opts, intervalWeight, algebra.Point)
	default:
		g, err = build(fg, opts, realWeight, func(f float64) float64 { return f })
	}
	if err != nil {
		return nil, err
	}

	m := &Model{Graph: g, Labels: make(map[string]*bitset.BitSet, len(fg.Labels))}
	for name, nodes := range fg.Labels {
		set := bitset.New(g.NumNodes())
		for _, n := range nodes {
			if n < 0 || n >= g.NumNodes() {
				return nil, fmt.Errorf("%w: label %q names node %d of %d", ErrFormat, name, n, g.NumNodes())
			}
			set.Set(n)
		}
		m.Labels[name] = set
	}
	return m, nil
}

func build[V any](fg fileGraph, opts []core.GraphOption, weight func(jsoniter.RawMessage) (V, error), reward func(float64) V) (*core.Graph, error) {
	b := core.NewBuilder[V](opts...)
	for id, fn := range fg.Nodes {
		player := core.PlayerStochastic
		if fn.Player != "" {
			p, err := core.ParsePlayer(fn.Player)
			if err != nil {
				return nil, fmt.Errorf("%w: node %d: %w", ErrFormat, id, err)
			}
			player = p
		}
		state := fn.State == nil || *fn.State
		edges := make([]core.Edge[V], len(fn.Successors))
		for i, fe := range fn.Successors {
			w, err := weight(fe.Weight)
			if err != nil {
				return nil, fmt.Errorf("%w: node %d edge %d: %w", ErrFormat, id, i, err)
			}
			edges[i] = core.Edge[V]{To: fe.To, Weight: w}
		}
		b.AddNode(player, state, edges...)
		if fn.Reward != nil {
			b.SetReward(id, reward(*fn.Reward))
		}
	}
	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return g, nil
}

func realWeight(raw jsoniter.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var w float64
	if err := qjson.Unmarshal(raw, &w); err != nil {
		return 0, fmt.Errorf("weight %s is not a number", raw)
	}
	return w, nil
}

func intervalWeight(raw jsoniter.RawMessage) (algebra.Interval, error) {
	if len(raw) == 0 {
		return algebra.Interval{}, nil
	}
	var w float64
	if err := qjson.Unmarshal(raw, &w); err == nil {
		return algebra.Point(w), nil
	}
	var pair []float64
	if err := qjson.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return algebra.Interval{}, fmt.Errorf("weight %s is neither a number nor a [lo, hi] pair", raw)
	}
	iv := algebra.Interval{Lo: pair[0], Hi: pair[1]}
	if !iv.Valid() {
		return algebra.Interval{}, fmt.Errorf("weight %s is not a valid interval", raw)
	}
	return iv, nil
}
