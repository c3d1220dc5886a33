// Package builder generates deterministic model fixtures for tests and
// benchmarks: chains, cycles and random DTMCs and MDPs.
//
// Constructors are composable. Each appends its nodes after the ones already
// present, so several fixtures can share one graph:
//
//	g, err := builder.Build(nil, []builder.Option{builder.WithSeed(7)},
//		builder.Chain(4, 0.5),
//		builder.RandomDTMC(100, 3),
//	)
//
// Determinism
//
//	Equal seeds, options and constructor order give identical graphs.
//	Stochastic constructors return ErrNeedRandSource unless WithSeed or
//	WithRand was supplied.
//
// Errors
//
//	Constructors validate their parameters before adding any node and
//	return the package sentinels wrapped with the constructor name.
package builder
