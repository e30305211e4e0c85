package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// evaluation pipeline and its collaborators.
type Metrics struct {
	RefreshCycles      prometheus.Counter
	RefreshErrors      prometheus.Counter
	DecisionsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
	PipelineRunning    prometheus.Gauge
	GreenLights        prometheus.Gauge
	CycleDuration      prometheus.Histogram

	// Forecast provider metrics.
	ForecastRequests    *prometheus.CounterVec // labels: outcome={success,error}
	ForecastCache       *prometheus.CounterVec // labels: result={hit,miss}
	ForecastAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RefreshCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roofcast",
			Name:      "refresh_cycles_total",
			Help:      "Total completed forecast refresh and evaluation cycles.",
		}),
		RefreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roofcast",
			Name:      "refresh_errors_total",
			Help:      "Total refresh cycles that failed before producing a snapshot.",
		}),
		DecisionsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roofcast",
			Name:      "decisions_published_total",
			Help:      "Total assembly decisions written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roofcast",
			Name:      "publish_errors_total",
			Help:      "Total failed publishes to the sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roofcast",
			Name:      "pipeline_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
		GreenLights: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roofcast",
			Name:      "green_light_assemblies",
			Help:      "Assemblies with a labor green light in the latest snapshot.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roofcast",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete fetch-evaluate-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roofcast",
			Name:      "forecast_requests_total",
			Help:      "Forecast API requests by outcome.",
		}, []string{"outcome"}),
		ForecastCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roofcast",
			Name:      "forecast_cache_total",
			Help:      "Forecast cache lookups by result.",
		}, []string{"result"}),
		ForecastAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roofcast",
			Name:      "forecast_api_duration_seconds",
			Help:      "Forecast API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	prometheus.MustRegister(
		m.RefreshCycles,
		m.RefreshErrors,
		m.DecisionsPublished,
		m.PublishErrors,
		m.PipelineRunning,
		m.GreenLights,
		m.CycleDuration,
		m.ForecastRequests,
		m.ForecastCache,
		m.ForecastAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RefreshCycles:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "roofcast", Name: "refresh_cycles_total"}),
		RefreshErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "roofcast", Name: "refresh_errors_total"}),
		DecisionsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "roofcast", Name: "decisions_published_total"}),
		PublishErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "roofcast", Name: "publish_errors_total"}),
		PipelineRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "roofcast", Name: "pipeline_running"}),
		GreenLights:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "roofcast", Name: "green_light_assemblies"}),
		CycleDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "roofcast", Name: "cycle_duration_seconds"}),
		ForecastRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "roofcast", Name: "forecast_requests_total"}, []string{"outcome"}),
		ForecastCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "roofcast", Name: "forecast_cache_total"}, []string{"result"}),
		ForecastAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "roofcast", Name: "forecast_api_duration_seconds"}),
	}
}
