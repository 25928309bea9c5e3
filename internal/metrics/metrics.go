// Package metrics exposes import pipeline counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davinci-coder-club/clubsite/internal/importers"
)

// ImportMetrics records one observation per import batch. It satisfies
// importers.Recorder.
type ImportMetrics struct {
	registry *prometheus.Registry

	rows     *prometheus.CounterVec
	batches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewImportMetrics() *ImportMetrics {
	m := &ImportMetrics{registry: prometheus.NewRegistry()}

	m.rows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clubsite",
		Name:      "import_rows_total",
		Help:      "Import rows by entity and outcome",
	}, []string{"entity", "outcome"})
	m.batches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clubsite",
		Name:      "import_batches_total",
		Help:      "Import batches by entity and status",
	}, []string{"entity", "status"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clubsite",
		Name:      "import_duration_seconds",
		Help:      "Time spent importing one batch",
		Buckets:   prometheus.DefBuckets,
	}, []string{"entity"})

	m.registry.MustRegister(
		m.rows, m.batches, m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveBatch updates the counters for a finished batch.
func (m *ImportMetrics) ObserveBatch(entity importers.EntityType, result importers.ImportResult, elapsed time.Duration, err error) {
	e := string(entity)
	m.duration.WithLabelValues(e).Observe(elapsed.Seconds())

	if err != nil {
		m.batches.WithLabelValues(e, "failed").Inc()
		return
	}
	m.batches.WithLabelValues(e, "completed").Inc()

	m.rows.WithLabelValues(e, "processed").Add(float64(result.Processed))
	m.rows.WithLabelValues(e, "duplicate").Add(float64(result.Duplicates))
	m.rows.WithLabelValues(e, "error").Add(float64(result.Errors))
	m.rows.WithLabelValues(e, "skipped").Add(float64(result.SkippedRows))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *ImportMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
