package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stochgraph/bfs"
	"github.com/katalvlaran/stochgraph/dfs"
	"github.com/katalvlaran/stochgraph/graphio"
)

var infoCmd = &cobra.Command{
	Use:   "info <graph.json>",
	Short: "Print graph statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := graphio.ReadFile(args[0])
		if err != nil {
			return err
		}
		g := m.Graph
		reach, err := bfs.Reachable(g)
		if err != nil {
			return err
		}
		comps, err := dfs.SCC(g, dfs.WithCancelContext(cmd.Context()))
		if err != nil {
			return err
		}
		bottom := 0
		for i := 0; i < comps.Count(); i++ {
			if comps.IsBottom(g, i) {
				bottom++
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, g)
		fmt.Fprintf(out, "states:     %d\n", g.NumStates())
		fmt.Fprintf(out, "initial:    %d\n", g.Initial().Cardinality())
		fmt.Fprintf(out, "reachable:  %d\n", reach.Cardinality())
		fmt.Fprintf(out, "components: %d (%d bottom)\n", comps.Count(), bottom)
		for name, set := range m.Labels {
			fmt.Fprintf(out, "label %s: %d nodes\n", name, set.Cardinality())
		}
		return nil
	},
}
