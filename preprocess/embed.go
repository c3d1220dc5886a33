package preprocess

import (
	"context"
	"fmt"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
)

// graphOwner is an objective whose graph can be swapped for a derived one.
type graphOwner interface {
	objective.Objective
	SetGraph(g *core.Graph)
}

// Embed turns a CTMC reachability objective into one on the embedded DTMC:
// each rate is divided by the exit rate of its node. The caller's graph is
// left untouched; the objective receives a derived graph.
type Embed[V any] struct {
	binding[graphOwner]
	alg algebra.Algebra[V]
}

// NewEmbed returns an unbound Embed over alg.
func NewEmbed[V any](alg algebra.Algebra[V]) *Embed[V] {
	return &Embed[V]{
		binding: binding[graphOwner]{
			name: "ctmc-embed",
			match: Match{
				Kinds:     []objective.Kind{objective.UnboundedReachability},
				Semantics: []core.Semantics{core.CTMC},
			},
		},
		alg: alg,
	}
}

// Process derives the embedded graph.
func (e *Embed[V]) Process(ctx context.Context) error {
	obj := e.mustHandle()
	g := obj.Graph()
	rates, err := core.Weights[V](g)
	if err != nil {
		return fmt.Errorf("preprocess: %s: %w", e.name, err)
	}
	probs := core.NewEdgeValues[V](g)
	for node := 0; node < g.NumNodes(); node++ {
		if node&0xfff == 0 {
			if err = ctx.Err(); err != nil {
				return err
			}
		}
		row := rates.Row(node)
		exit := algebra.Sum(e.alg, row...)
		out := probs.Row(node)
		if e.alg.IsZero(exit) {
			copy(out, row)
			continue
		}
		for i, r := range row {
			out[i] = e.alg.Divide(r, exit)
		}
	}
	d := g.Derive()
	if err = d.RegisterEdgeProperty(core.PropWeight, probs); err != nil {
		return fmt.Errorf("preprocess: %s: %w", e.name, err)
	}
	d.SetSemantics(core.DTMC)
	obj.SetGraph(d)
	return nil
}
