package solver_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/builder"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/objective"
	"github.com/katalvlaran/stochgraph/solver"
)

func benchmarkReach(b *testing.B, g *core.Graph, target *bitset.BitSet, s solver.Solver) {
	b.Helper()
	g.ComputePredecessors()
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		obj, err := objective.NewReachability[float64](g, target)
		if err != nil {
			b.Fatal(err)
		}
		if err = s.Solve(ctx, obj); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRandomDTMC(b *testing.B) {
	g := builder.MustBuild(nil, []builder.Option{builder.WithSeed(1)}, builder.RandomDTMC(10_000, 4))
	target := bitset.Of(0)
	for _, m := range []solver.Method{solver.Jacobi, solver.GaussSeidel} {
		b.Run(m.String(), func(b *testing.B) {
			s := solver.NewIterative(algebra.Reals, solver.WithMethod(m), solver.WithTolerance(1e-8),
				solver.WithLogger(zerolog.Nop()))
			benchmarkReach(b, g, target, s)
		})
	}
}

func BenchmarkGridWorld(b *testing.B) {
	const side = 60
	g := builder.MustBuild([]core.GraphOption{core.WithSemantics(core.MDP)}, nil, builder.GridWorld(side, side, 0.2))
	target := bitset.Of(side*side - 1)
	for name, topo := range map[string]bool{"plain": false, "topological": true} {
		b.Run(name, func(b *testing.B) {
			opts := []solver.Option{solver.WithTolerance(1e-8), solver.WithLogger(zerolog.Nop())}
			if topo {
				opts = append(opts, solver.WithTopologicalOrder())
			}
			benchmarkReach(b, g, target, solver.NewIterative(algebra.Reals, opts...))
		})
	}
}

func BenchmarkDirectChain(b *testing.B) {
	g := builder.MustBuild(nil, nil, builder.Chain(500, 0.5))
	benchmarkReach(b, g, bitset.Of(499), solver.NewDirect(solver.WithLogger(zerolog.Nop())))
}
