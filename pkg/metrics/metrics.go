package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry creates a registry with all engine metrics registered
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initEngineMetrics()
	r.initTopologyMetrics()
	return r
}

// Gatherer exposes the underlying registry for scraping or inspection
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordAnalysis records an analysis call with its duration
func (r *Registry) RecordAnalysis(operation, status string, duration time.Duration) {
	r.AnalysesTotal.WithLabelValues(operation, status).Inc()
	r.AnalysisDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordPathsFound adds to the per-operation path counter
func (r *Registry) RecordPathsFound(operation string, count int) {
	r.PathsFound.WithLabelValues(operation).Add(float64(count))
}

// ObserveAffectedPairs records the size of a blast-radius result
func (r *Registry) ObserveAffectedPairs(n int) {
	r.AffectedPairs.Observe(float64(n))
}

// SetTopologySize updates the topology gauges
func (r *Registry) SetTopologySize(nodes, links int) {
	r.TopologyNodes.Set(float64(nodes))
	r.TopologyLinks.Set(float64(links))
}
