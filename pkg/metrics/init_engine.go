package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathscope_analyses_total",
			Help: "Total number of analysis calls",
		},
		[]string{"operation", "status"}, // shortest_path, kpaths, blast_radius, analyze, rank; ok, no_path, error
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathscope_analysis_duration_seconds",
			Help:    "Analysis call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	r.AffectedPairs = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathscope_blast_radius_affected_pairs",
			Help:    "Number of node pairs affected per blast-radius run",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)

	r.PathsFound = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathscope_paths_found_total",
			Help: "Total number of paths returned, by operation",
		},
		[]string{"operation"},
	)
}
