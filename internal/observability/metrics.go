package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dive_forecast"

// Metrics holds the Prometheus counters, histograms, and gauges for the forecast pipeline.
type Metrics struct {
	RunsTotal        prometheus.Counter
	RunDuration      prometheus.Histogram
	PipelineRunning  prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
	ModelsHealthy    prometheus.Gauge
	ReportsPublished prometheus.Counter

	// Upstream source metrics.
	SourceFetches       *prometheus.CounterVec   // labels: source, outcome={success,error,no_data}
	SourceFetchDuration *prometheus.HistogramVec // labels: source
	Cache               *prometheus.CounterVec   // labels: result={hit,miss,error}

	// Rendering metrics.
	RenderDuration *prometheus.HistogramVec // labels: artifact={table,chart,station}
	RenderFailures *prometheus.CounterVec   // labels: artifact
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total completed pipeline runs.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-aggregate-render run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),
		ModelsHealthy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "models_healthy",
			Help:      "Number of models that contributed data to the last run.",
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_published_total",
			Help:      "Total reports handed to the report sinks.",
		}),
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fetch_total",
			Help:      "Upstream fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Upstream request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		Cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_total",
			Help:      "Upstream payload cache lookups by result.",
		}, []string{"result"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Image rendering duration by artifact.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"artifact"}),
		RenderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "Images that could not be produced, by artifact.",
		}, []string{"artifact"}),
	}

	prometheus.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.PipelineRunning,
		m.LastRunTimestamp,
		m.ModelsHealthy,
		m.ReportsPublished,
		m.SourceFetches,
		m.SourceFetchDuration,
		m.Cache,
		m.RenderDuration,
		m.RenderFailures,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RunsTotal:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "runs_total"}),
		RunDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "run_duration_seconds"}),
		PipelineRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "pipeline_running"}),
		LastRunTimestamp:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "last_run_timestamp_seconds"}),
		ModelsHealthy:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "models_healthy"}),
		ReportsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "reports_published_total"}),
		SourceFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "source_fetch_total"}, []string{"source", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "source_fetch_duration_seconds"}, []string{"source"}),
		Cache:               prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "cache_total"}, []string{"result"}),
		RenderDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "render_duration_seconds"}, []string{"artifact"}),
		RenderFailures:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "render_failures_total"}, []string{"artifact"}),
	}
}
