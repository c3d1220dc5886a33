package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// preprocessorRuns counts preprocessor runs by name and result
	preprocessorRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stochgraph_preprocessor_runs_total",
		Help: "Total preprocessor runs by name and result",
	}, []string{"name", "result"})

	// unsupportedTotal counts objectives no solver accepted
	unsupportedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stochgraph_unsupported_total",
		Help: "Total objectives rejected by every solver, by kind",
	}, []string{"kind"})

	// solveDuration tracks end-to-end pipeline latency
	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stochgraph_solve_duration_seconds",
		Help:    "Pipeline solve duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	}, []string{"kind", "result"})
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
