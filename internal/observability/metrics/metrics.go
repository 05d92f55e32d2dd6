// Package metrics exposes the ingestion counters on the default prometheus
// registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

type Metrics struct {
	rowsIngested  *prometheus.CounterVec
	rowsSkipped   *prometheus.CounterVec
	filesRejected *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		rowsIngested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "usagemetrics_rows_ingested_total",
			Help: "Canonical usage records persisted, by tool source.",
		}, []string{"tool_source"}),
		rowsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "usagemetrics_rows_skipped_total",
			Help: "Export rows skipped during normalization, by tool source.",
		}, []string{"tool_source"}),
		filesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "usagemetrics_files_rejected_total",
			Help: "Export files rejected before persistence, by reason.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) RecordIngest(toolSource string, records, skipped int) {
	m.rowsIngested.WithLabelValues(toolSource).Add(float64(records))
	m.rowsSkipped.WithLabelValues(toolSource).Add(float64(skipped))
}

func (m *Metrics) RecordRejectedFile(reason string) {
	m.filesRejected.WithLabelValues(reason).Inc()
}

var Module = fx.Module("observability.metrics",
	fx.Provide(New),
)
