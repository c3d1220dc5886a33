package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/stochgraph/algebra"
	"github.com/katalvlaran/stochgraph/bitset"
	"github.com/katalvlaran/stochgraph/constraint"
	"github.com/katalvlaran/stochgraph/core"
	"github.com/katalvlaran/stochgraph/graphio"
	"github.com/katalvlaran/stochgraph/objective"
	"github.com/katalvlaran/stochgraph/pipeline"
	"github.com/katalvlaran/stochgraph/preprocess"
	"github.com/katalvlaran/stochgraph/scheduler"
)

var (
	solveCmd = &cobra.Command{
		Use:   "solve <graph.json>",
		Short: "Solve a reachability, reward or long-run average objective",
		Args:  cobra.ExactArgs(1),
	}

	objectiveKind = solveCmd.Flags().String("objective", "unbounded-reachability",
		"unbounded-reachability, bounded-reachability, unbounded-cumulative, bounded-cumulative or long-run-average")
	targetLabel   = solveCmd.Flags().String("target", "", "Label of the target (reachability) or sink (cumulative) set")
	bound         = solveCmd.Flags().Int("bound", 0, "Step bound of bounded objectives")
	direction     = solveCmd.Flags().String("direction", "max", "Optimisation direction of player one: max or min")
	withScheduler = solveCmd.Flags().Bool("scheduler", false, "Also print player one's decisions")
	allNodes      = solveCmd.Flags().Bool("all", false, "Print every node instead of the initial ones")
)

// RunE reads the flag variables above, so it is attached here rather than
// in the literal.
func init() {
	solveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		m, err := graphio.ReadFile(args[0])
		if err != nil {
			return err
		}
		if m.Graph.ValueType() == core.Interval {
			return solve(cmd.Context(), cmd.OutOrStdout(), m, algebra.IntervalAlgebra)
		}
		return solve(cmd.Context(), cmd.OutOrStdout(), m, algebra.Reals)
	}
}

func solve[V any](ctx context.Context, out io.Writer, m *graphio.Model, alg algebra.Algebra[V]) error {
	if ctx == nil {
		ctx = context.Background()
	}
	obj, err := buildObjective[V](m)
	if err != nil {
		return err
	}

	solverOpts, err := cfg.SolverOptions(log.Logger)
	if err != nil {
		return err
	}
	reg := pipeline.DefaultRegistry(alg, solverOpts...)
	if bin := cfg.Pipeline.LPSolve; bin != "" {
		lp := &constraint.LPSolve{Binary: bin, Logger: &log.Logger}
		err = reg.RegisterPreprocessor("interval-normalise", func() preprocess.Preprocessor {
			return preprocess.NewIntervalNormalise(preprocess.WithConstraintSolver(lp))
		})
		if err != nil {
			return err
		}
	}
	if d := cfg.DirectSolver(log.Logger); d != nil {
		if err = reg.PreferSolver(d); err != nil {
			return err
		}
	}
	p, err := pipeline.New(reg, cfg.PipelineOptions(log.Logger)...)
	if err != nil {
		return err
	}
	if err = p.Solve(ctx, obj); err != nil {
		return err
	}
	return printResult(out, m.Graph, obj)
}

type result[V any] interface {
	objective.Objective
	Values() []V
	Scheduler() scheduler.Scheduler
}

func buildObjective[V any](m *graphio.Model) (result[V], error) {
	dir, err := core.ParseDirection(*direction)
	if err != nil {
		return nil, err
	}
	kind, err := objective.ParseKind(*objectiveKind)
	if err != nil {
		return nil, err
	}
	opts := []objective.Option{objective.WithDirection(dir)}
	if *withScheduler {
		opts = append(opts, objective.WithScheduler())
	}

	set := bitset.New(m.Graph.NumNodes())
	if *targetLabel != "" {
		if set, err = m.Label(*targetLabel); err != nil {
			return nil, err
		}
	} else if kind.Reachability() || kind == objective.UnboundedCumulative {
		return nil, fmt.Errorf("objective %s needs --target", kind)
	}

	switch kind {
	case objective.UnboundedReachability:
		return objective.NewReachability[V](m.Graph, set, opts...)
	case objective.BoundedReachability:
		return objective.NewBoundedReachability[V](m.Graph, set, *bound, opts...)
	case objective.UnboundedCumulative:
		return objective.NewCumulative[V](m.Graph, nil, set, opts...)
	case objective.UnboundedLRA:
		return objective.NewLongRun[V](m.Graph, nil, opts...)
	default:
		return objective.NewBoundedCumulative[V](m.Graph, nil, *bound, opts...)
	}
}

func printResult[V any](out io.Writer, g *core.Graph, obj result[V]) error {
	nodes := g.Initial()
	if *allNodes || nodes.IsEmpty() {
		nodes = bitset.Range(0, g.NumNodes())
	}
	values := obj.Values()
	sched := obj.Scheduler()
	for node := range nodes.All() {
		if _, err := fmt.Fprintf(out, "%d\t%v", node, values[node]); err != nil {
			return err
		}
		if sched != nil && g.Player(node) == core.PlayerOne && g.IsState(node) {
			if d := sched.Decision(node); d != scheduler.Unset {
				fmt.Fprintf(out, "\t-> %d", g.Successor(node, d))
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
