package driver

import (
	"github.com/prometheus/client_golang/prometheus"

	"qlang/pkg/errors"
)

// Metrics records parse outcomes for a session.
type Metrics struct {
	parses      *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	latency     prometheus.Histogram
	files       prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qlang_parse_total",
				Help: "Parses run, partitioned by result i.e. ok, diagnostics",
			}, []string{"result"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qlang_diagnostics_total",
				Help: "Diagnostics reported, partitioned by code",
			}, []string{"code"},
		),
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qlang_parse_duration_seconds",
				Help:    "Samples latency of tokenizing and parsing one source",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),
		files: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "qlang_check_files_total",
				Help: "Files discovered by multi-file checks",
			},
		),
	}
	reg.MustRegister(m.parses, m.diagnostics, m.latency, m.files)
	return m
}

func (m *Metrics) observe(seconds float64, diags []errors.Diagnostic) {
	result := "ok"
	if len(diags) > 0 {
		result = "diagnostics"
	}
	m.parses.WithLabelValues(result).Inc()
	m.latency.Observe(seconds)
	for code, n := range errors.CountByCode(diags) {
		m.diagnostics.WithLabelValues(code.String()).Add(float64(n))
	}
}
