package solver

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for solver runs.
var (
	tracer = otel.Tracer("stochgraph.solver")
	meter  = otel.Meter("stochgraph.solver")
)

var (
	solveLatency metric.Float64Histogram
	iterations   metric.Int64Histogram
	solveTotal   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		solveLatency, err = meter.Float64Histogram(
			"solver_duration_seconds",
			metric.WithDescription("Duration of numeric solver runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		iterations, err = meter.Int64Histogram(
			"solver_iterations",
			metric.WithDescription("Sweeps performed per solver run"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		solveTotal, err = meter.Int64Counter(
			"solver_runs_total",
			metric.WithDescription("Total number of solver runs"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// recordSolveMetrics records one solver run.
func recordSolveMetrics(ctx context.Context, kind string, duration time.Duration, sweeps int, converged bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("objective", kind),
		attribute.Bool("converged", converged),
	)
	solveLatency.Record(ctx, duration.Seconds(), attrs)
	iterations.Record(ctx, int64(sweeps), attrs)
	solveTotal.Add(ctx, 1, attrs)
}

// startSolveSpan creates a span for a solver run.
func startSolveSpan(ctx context.Context, name, kind string, nodes, edges int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Solver.Solve",
		trace.WithAttributes(
			attribute.String("solver.name", name),
			attribute.String("solver.objective", kind),
			attribute.Int("graph.node_count", nodes),
			attribute.Int("graph.edge_count", edges),
		),
	)
}

// setSolveSpanResult sets the result attributes on a solve span.
func setSolveSpanResult(span trace.Span, sweeps int, distance float64, converged bool) {
	span.SetAttributes(
		attribute.Int("solver.iterations", sweeps),
		attribute.Float64("solver.distance", distance),
		attribute.Bool("solver.converged", converged),
	)
}
