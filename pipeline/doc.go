// Package pipeline dispatches objectives to preprocessors and solvers.
//
// A Registry holds an ordered table of named preprocessor factories and a
// list of solvers. For each objective, Pipeline.Solve
//
//  1. computes the predecessor index of the graph once,
//  2. instantiates every enabled preprocessor, binds it and runs it when it
//     can handle the objective, in registration order,
//  3. hands the objective to the first solver whose CanSolve accepts it.
//
// When no solver accepts the objective an *UnsupportedError is returned;
// it wraps ErrUnsupported and names the objective kind and graph tags.
//
// Preprocessor runs, unsupported objectives and solve durations are
// exported as Prometheus metrics.
package pipeline
