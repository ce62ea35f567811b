package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the analysis engine
type Registry struct {
	// Analysis Metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	AffectedPairs    prometheus.Histogram
	PathsFound       *prometheus.CounterVec

	// Topology Metrics
	TopologyNodes prometheus.Gauge
	TopologyLinks prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// Default returns the global registry instance
func Default() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
