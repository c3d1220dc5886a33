package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gambleJSON = `{
  "semantics": "mdp",
  "initial": [0],
  "labels": {"goal": [3]},
  "nodes": [
    {"player": "one", "successors": [{"to": 1}, {"to": 2}]},
    {"state": false, "successors": [{"to": 0, "weight": 0.5}, {"to": 3, "weight": 0.5}]},
    {"state": false, "successors": [{"to": 4, "weight": 1}]},
    {"successors": [{"to": 3, "weight": 1}]},
    {"successors": [{"to": 4, "weight": 1}]}
  ]
}`

const rewardJSON = `{
  "semantics": "mdp",
  "initial": [0],
  "nodes": [
    {"player": "one", "successors": [{"to": 1}, {"to": 2}]},
    {"state": false, "successors": [{"to": 0, "weight": 0.5}, {"to": 3, "weight": 0.5}]},
    {"state": false, "successors": [{"to": 4, "weight": 1}]},
    {"reward": 1, "successors": [{"to": 3, "weight": 1}]},
    {"reward": 0.25, "successors": [{"to": 4, "weight": 1}]}
  ]
}`

func run(t *testing.T, args ...string) string {
	t.Helper()
	return runOn(t, gambleJSON, args...)
}

func runOn(t *testing.T, doc string, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	var out bytes.Buffer
	Root.SetOut(&out)
	Root.SetArgs(append([]string{args[0], path}, args[1:]...))
	require.NoError(t, Root.Execute())
	return out.String()
}

func TestSolveCommand(t *testing.T) {
	out := run(t, "solve", "--target", "goal", "--scheduler", "--loglevel", "error")
	assert.Equal(t, "0\t1\t-> 1\n", out)
}

func TestInfoCommand(t *testing.T) {
	out := run(t, "info", "--loglevel", "error")
	assert.Contains(t, out, "mdp/real graph: 5 nodes, 7 edges")
	assert.Contains(t, out, "reachable:  5")
	assert.Contains(t, out, "label goal: 1 nodes")
}

func TestSolveLongRunAverage(t *testing.T) {
	out := runOn(t, rewardJSON, "solve", "--objective", "long-run-average", "--direction", "min",
		"--scheduler=false", "--loglevel", "error")
	assert.Equal(t, "0\t0.25\n", out)
}
