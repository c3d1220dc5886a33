// Package preprocess holds the qualitative and structural passes that run
// before a numeric solver.
//
// A Preprocessor declares what it applies to with a Match (objective kinds,
// graph semantics and value types); the pipeline binds a fresh instance to
// each objective, asks CanHandle and, if true, calls Process. Process
// rewrites the bound objective in place and must be idempotent: running it
// twice leaves the objective as after the first run.
//
//	ProbZero          reachability      zero set := nodes that cannot reach the target
//	ProbOne           unbounded reach.  target := nodes reaching it with probability one
//	Embed             CTMC reachability rates -> embedded DTMC probabilities
//	IntervalNormalise interval weights  tighten every distribution's bounds
//	RewardInfinity    unbounded reward  infinity set := nodes that may miss the sinks
package preprocess
