// Package config loads stochgraph settings from a file, STOCHGRAPH_*
// environment variables and defaults, and validates them.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/katalvlaran/stochgraph/pipeline"
	"github.com/katalvlaran/stochgraph/solver"
)

// EnvPrefix prefixes every environment variable, e.g.
// STOCHGRAPH_SOLVER_TOLERANCE.
const EnvPrefix = "STOCHGRAPH"

var (
	// ErrRead is returned when the configuration file cannot be read.
	ErrRead = errors.New("config: cannot read configuration")

	// ErrInvalid is returned when a setting fails validation.
	ErrInvalid = errors.New("config: invalid configuration")
)

var validate = validator.New()

// Config is the complete settings tree.
type Config struct {
	Solver   Solver   `mapstructure:"solver"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Log      Log      `mapstructure:"log"`
}

// Solver configures the iterative solver.
type Solver struct {
	Method           string  `mapstructure:"method" validate:"oneof=jacobi gauss-seidel"`
	StopCriterion    string  `mapstructure:"stop_criterion" validate:"oneof=absolute relative"`
	Tolerance        float64 `mapstructure:"tolerance" validate:"gt=0"`
	MaxIterations    int     `mapstructure:"max_iterations" validate:"gte=0"`
	TopologicalOrder bool    `mapstructure:"topological_order"`
	// Direct tries the LU solver before value iteration on DTMC
	// reachability with at most DirectMaxNodes nodes.
	Direct         bool `mapstructure:"direct"`
	DirectMaxNodes int  `mapstructure:"direct_max_nodes" validate:"gt=0"`
}

// Pipeline configures preprocessing.
type Pipeline struct {
	// Disabled names preprocessors that are skipped.
	Disabled []string `mapstructure:"disabled" validate:"dive,required"`
	// LPSolve is the lp_solve binary used to check interval distributions.
	// Empty disables the check.
	LPSolve string `mapstructure:"lp_solve"`
}

// Log configures logging.
type Log struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("solver.method", solver.GaussSeidel.String())
	v.SetDefault("solver.stop_criterion", "absolute")
	v.SetDefault("solver.tolerance", solver.DefaultTolerance)
	v.SetDefault("solver.max_iterations", solver.DefaultMaxIterations)
	v.SetDefault("solver.topological_order", false)
	v.SetDefault("solver.direct", false)
	v.SetDefault("solver.direct_max_nodes", solver.DefaultDirectMaxNodes)
	v.SetDefault("pipeline.disabled", []string{})
	v.SetDefault("pipeline.lp_solve", "")
	v.SetDefault("log.level", "info")
}

// Load reads path (optional; empty skips the file), applies environment
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the settings held by v, after binding
// defaults and the environment.
func FromViper(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// SolverOptions maps the solver section to solver options.
func (c *Config) SolverOptions(logger zerolog.Logger) ([]solver.Option, error) {
	method, err := solver.ParseMethod(c.Solver.Method)
	if err != nil {
		return nil, err
	}
	crit, err := solver.ParseCriterion(c.Solver.StopCriterion)
	if err != nil {
		return nil, err
	}
	opts := []solver.Option{
		solver.WithMethod(method),
		solver.WithStopCriterion(crit),
		solver.WithTolerance(c.Solver.Tolerance),
		solver.WithMaxIterations(c.Solver.MaxIterations),
		solver.WithLogger(logger),
	}
	if c.Solver.TopologicalOrder {
		opts = append(opts, solver.WithTopologicalOrder())
	}
	return opts, nil
}

// DirectSolver returns the configured direct solver, or nil when it is
// disabled.
func (c *Config) DirectSolver(logger zerolog.Logger) *solver.Direct {
	if !c.Solver.Direct {
		return nil
	}
	d := solver.NewDirect(solver.WithLogger(logger))
	d.MaxNodes = c.Solver.DirectMaxNodes
	return d
}

// PipelineOptions maps the pipeline section to pipeline options.
func (c *Config) PipelineOptions(logger zerolog.Logger) []pipeline.Option {
	return []pipeline.Option{
		pipeline.WithDisabled(c.Pipeline.Disabled...),
		pipeline.WithLogger(logger),
	}
}

// LogLevel returns the zerolog level of the log section.
func (c *Config) LogLevel() zerolog.Level {
	if c.Log.Level == "disabled" {
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
