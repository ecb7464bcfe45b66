package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"drupal-news/internal/pkg/config"
)

// Job outcomes used as the status label of probe_job_runs_total.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics groups the probe worker's collectors.
type Metrics struct {
	Config *config.ConfigMetrics

	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   prometheus.Histogram
	SourcesProbedTotal   prometheus.Counter
	SourceFailuresTotal  *prometheus.CounterVec
	LastSuccessTimestamp prometheus.Gauge
}

// NewMetrics registers the worker's collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Config: config.NewConfigMetrics(reg, "probe"),
		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "probe_job_runs_total",
			Help: "Total probe runs by status",
		}, []string{"status"}),
		JobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "probe_job_duration_seconds",
			Help:    "Duration of probe runs",
			Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 300},
		}),
		SourcesProbedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "probe_sources_probed_total",
			Help: "Total sources visited by probe runs",
		}),
		SourceFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "probe_source_failures_total",
			Help: "Total probe failures by source",
		}, []string{"source_id"}),
		LastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "probe_last_success_timestamp",
			Help: "Unix timestamp of the last successful probe run",
		}),
	}
}
