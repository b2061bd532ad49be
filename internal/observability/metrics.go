package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// extraction pipeline.
type Metrics struct {
	RastersLoaded   prometheus.Counter
	PointsSampled   prometheus.Counter
	SamplingMisses  prometheus.Counter
	RowsWritten     *prometheus.CounterVec // label: sink={csv,sqlite,kafka}
	ReshapeErrors   prometheus.Counter
	PipelineRunning prometheus.Gauge

	SubperiodLayers   prometheus.Histogram
	SubperiodDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RastersLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climpoint",
			Name:      "rasters_loaded_total",
			Help:      "Total raster files decoded into stacks.",
		}),
		PointsSampled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climpoint",
			Name:      "points_sampled_total",
			Help:      "Total (site, layer) samples taken.",
		}),
		SamplingMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climpoint",
			Name:      "sampling_misses_total",
			Help:      "Samples that fell outside the grid extent or on NODATA cells.",
		}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climpoint",
			Name:      "rows_written_total",
			Help:      "Tidy rows delivered, by sink.",
		}, []string{"sink"}),
		ReshapeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climpoint",
			Name:      "reshape_errors_total",
			Help:      "Wide-to-long reshapes aborted by a naming-convention violation.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climpoint",
			Name:      "pipeline_running",
			Help:      "1 while the batch run is active, 0 when finished.",
		}),
		SubperiodLayers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climpoint",
			Name:      "subperiod_layers",
			Help:      "Number of raster layers stacked per sub-period.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 150, 200},
		}),
		SubperiodDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climpoint",
			Name:      "subperiod_duration_seconds",
			Help:      "Duration of a complete load-extract cycle for one sub-period.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	prometheus.MustRegister(
		m.RastersLoaded,
		m.PointsSampled,
		m.SamplingMisses,
		m.RowsWritten,
		m.ReshapeErrors,
		m.PipelineRunning,
		m.SubperiodLayers,
		m.SubperiodDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RastersLoaded:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climpoint", Name: "rasters_loaded_total"}),
		PointsSampled:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climpoint", Name: "points_sampled_total"}),
		SamplingMisses:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climpoint", Name: "sampling_misses_total"}),
		RowsWritten:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climpoint", Name: "rows_written_total"}, []string{"sink"}),
		ReshapeErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climpoint", Name: "reshape_errors_total"}),
		PipelineRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climpoint", Name: "pipeline_running"}),
		SubperiodLayers:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climpoint", Name: "subperiod_layers"}),
		SubperiodDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climpoint", Name: "subperiod_duration_seconds"}),
	}
}
