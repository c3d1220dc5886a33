package pipeline_test

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
	"github.com/katalvlaran/stochgraph/pipeline"
	"github.com/katalvlaran/stochgraph/solver"
)

// ExamplePipeline_Solve computes the best probability of winning a gamble
// that can be repeated or abandoned, together with the optimal choice.
func ExamplePipeline_Solve() {
	type e = core.Edge[float64]
	b := core.NewBuilder[float64](core.WithSemantics(core.MDP))
	b.AddChoice(core.PlayerOne, 1, 2)                               // 0: gamble or quit
	b.AddDistribution(e{To: 0, Weight: 0.5}, e{To: 3, Weight: 0.5}) // 1: gamble
	b.AddDistribution(e{To: 4, Weight: 1})                          // 2: quit
	b.AddState(e{To: 3, Weight: 1})                                 // 3: won
	b.AddState(e{To: 4, Weight: 1})                                 // 4: lost
	g := b.MustBuild()

	reg := pipeline.DefaultRegistry(algebra.Reals, solver.WithLogger(zerolog.Nop()))
	p, _ := pipeline.New(reg, pipeline.WithLogger(zerolog.Nop()))

	for _, dir := range []core.Direction{core.Max, core.Min} {
		obj, _ := objective.NewReachability[float64](g, bitset.Of(3),
			objective.WithDirection(dir), objective.WithScheduler())
		if err := p.Solve(context.Background(), obj); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%s: %.2f via node %d\n", dir, obj.Value(0), g.Successor(0, obj.Scheduler().Decision(0)))
	}
	// Output:
	// max: 1.00 via node 1
	// min: 0.00 via node 2
}
