// Package stochgraph is the explicit-state numeric core of a probabilistic
// model checker: graphs of states and probabilistic choices, the
// qualitative reachability analyses that shrink problems before any
// arithmetic happens, and value iteration for reachability and reward
// objectives.
//
// What is inside
//
//   - core: the compressed-row graph with state/player tags, typed node and
//     edge columns and a memoised predecessor index.
//   - bitset, bfs, dfs: node sets, breadth-first exploration and strongly
//     connected components.
//   - components: attractor-style backward fixpoints (ReachPre,
//     ReachMaxOne, ReachMinOne) and the probability-0/1 sets built on them.
//   - scheduler: memoryless choices of player one, settable then frozen.
//   - algebra: real and interval value algebras.
//   - objective: reachability and cumulative-reward objectives with their
//     created, preprocessed and solved lifecycle.
//   - preprocess, solver, pipeline: graph rewrites, Jacobi/Gauss-Seidel value
//     iteration, a direct LU solver, and the registry that ties them together.
//   - constraint, matrix: the LP boundary used to check interval
//     distributions and the dense linear algebra behind the direct solver.
//   - config, graphio, builder, cmd/stochgraph: configuration, a JSON graph
//     format, fixture generators and the command-line tool.
//
// Graph shapes
//
//	DTMC / CTMC: every node is a stochastic state.
//	MDP:         player-one states alternate with auxiliary distribution nodes.
//	SMG:         as MDP, with player-two states optimising the other way.
//
// Quick start
//
//	reg := pipeline.DefaultRegistry(algebra.Reals)
//	p, _ := pipeline.New(reg)
//	obj, _ := objective.NewReachability[float64](g, target, objective.WithScheduler())
//	if err := p.Solve(ctx, obj); err != nil { ... }
//	fmt.Println(obj.Value(0), obj.Scheduler().Decision(0))
package stochgraph
