package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/stochgraph/config"
)

var (
	Root = &cobra.Command{
		Use:           "stochgraph",
		Short:         "Explicit-state probabilistic model checking on graph files",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	configFile = Root.PersistentFlags().String("config", "", "Configuration file (yaml, json or toml)")

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

// bindFlags applies configuration values to the flags of cmd and its
// subcommands that were not set on the command line.
func bindFlags(cmd *cobra.Command) {
	apply := func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				sv.Replace(viper.GetStringSlice(f.Name))
			} else {
				f.Value.Set(viper.GetString(f.Name))
			}
		}
	}
	cmd.PersistentFlags().VisitAll(apply)
	cmd.Flags().VisitAll(apply)
	for _, sub := range cmd.Commands() {
		bindFlags(sub)
	}
}

func init() {
	flags := Root.PersistentFlags()
	flags.String("loglevel", "info", "Console log level")
	flags.String("method", "gauss-seidel", "Sweep method: jacobi or gauss-seidel")
	flags.String("stop-criterion", "absolute", "Convergence test: absolute or relative")
	flags.Float64("tolerance", 1e-10, "Convergence threshold")
	flags.Int("max-iterations", 1_000_000, "Iteration cap")
	flags.Bool("topological", false, "Gauss-Seidel sweeps visit components sinks first")
	flags.Bool("direct", false, "Solve DTMC reachability exactly with LU when small enough")
	flags.StringSlice("disable", nil, "Preprocessors to skip")
	flags.String("lp-solve", "", "lp_solve binary used to check interval distributions")

	for key, flag := range map[string]string{
		"log.level":                "loglevel",
		"solver.method":            "method",
		"solver.stop_criterion":    "stop-criterion",
		"solver.tolerance":         "tolerance",
		"solver.max_iterations":    "max-iterations",
		"solver.topological_order": "topological",
		"solver.direct":            "direct",
		"pipeline.disabled":        "disable",
		"pipeline.lp_solve":        "lp-solve",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	Root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05.000",
		})
		v := viper.GetViper()
		if *configFile != "" {
			v.SetConfigFile(*configFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
			log.Debug().Msgf("Using configuration file: %v", v.ConfigFileUsed())
		}
		c, err := config.FromViper(v)
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(c.LogLevel())
		// command flags such as target or bound may come from the file or
		// the environment too
		bindFlags(Root)
		cfg = c
		return nil
	}

	Root.AddCommand(solveCmd, infoCmd)
}
