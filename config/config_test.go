package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochgraph/config"
	"github.com/katalvlaran/stochgraph/solver"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stochgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "gauss-seidel", c.Solver.Method)
	assert.Equal(t, "absolute", c.Solver.StopCriterion)
	assert.Equal(t, solver.DefaultTolerance, c.Solver.Tolerance)
	assert.Equal(t, solver.DefaultMaxIterations, c.Solver.MaxIterations)
	assert.Empty(t, c.Pipeline.Disabled)
	assert.Nil(t, c.DirectSolver(zerolog.Nop()))
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel())
}

func TestFileAndEnvironment(t *testing.T) {
	path := writeFile(t, `
solver:
  method: jacobi
  stop_criterion: relative
  max_iterations: 500
  topological_order: true
  direct: true
  direct_max_nodes: 64
pipeline:
  disabled: [reachability-prob1]
log:
  level: debug
`)
	t.Setenv("STOCHGRAPH_SOLVER_TOLERANCE", "1e-6")

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jacobi", c.Solver.Method)
	assert.Equal(t, 1e-6, c.Solver.Tolerance)
	assert.Equal(t, 500, c.Solver.MaxIterations)
	assert.True(t, c.Solver.TopologicalOrder)
	assert.Equal(t, []string{"reachability-prob1"}, c.Pipeline.Disabled)
	assert.Equal(t, zerolog.DebugLevel, c.LogLevel())

	opts, err := c.SolverOptions(zerolog.Nop())
	require.NoError(t, err)
	s := solver.NewIterative[float64](nil, opts...)
	got := s.Options()
	assert.Equal(t, solver.Jacobi, got.Method)
	assert.Equal(t, 1e-6, got.Tolerance)
	assert.Equal(t, 500, got.MaxIterations)
	assert.True(t, got.TopologicalOrder)
	assert.Len(t, c.PipelineOptions(zerolog.Nop()), 2)

	d := c.DirectSolver(zerolog.Nop())
	require.NotNil(t, d)
	assert.Equal(t, 64, d.MaxNodes)
}

func TestInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"method":    "solver:\n  method: sor\n",
		"tolerance": "solver:\n  tolerance: 0\n",
		"cap":       "solver:\n  max_iterations: -1\n",
		"level":     "log:\n  level: loud\n",
		"disabled":  "pipeline:\n  disabled: [\"\"]\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, config.ErrRead)
}
