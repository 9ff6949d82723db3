// Package metrics records inventory activity as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vyrodovalexey/agrostock/internal/model"
)

// Operation outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeCancelled = "cancelled"
	OutcomeDeclined  = "declined"
	OutcomeEmpty     = "empty"
	OutcomeFailed    = "failed"
)

// Recorder owns a private registry with the inventory metrics.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	movements  *prometheus.CounterVec
	reports    *prometheus.CounterVec
	items      prometheus.Gauge
}

// New creates a Recorder with its metrics registered on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrostock_operations_total",
				Help: "Total number of menu operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		movements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrostock_movements_total",
				Help: "Total number of stock movements recorded",
			},
			[]string{"kind"},
		),
		reports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrostock_reports_written_total",
				Help: "Total number of report files written",
			},
			[]string{"report"},
		),
		items: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "agrostock_items",
				Help: "Number of items currently in the inventory",
			},
		),
	}
}

// Operation counts one finished menu operation.
func (r *Recorder) Operation(operation, outcome string) {
	r.operations.WithLabelValues(operation, outcome).Inc()
}

// Movement counts one recorded movement.
func (r *Recorder) Movement(kind model.MovementKind) {
	r.movements.WithLabelValues(string(kind)).Inc()
}

// Report counts one written report file.
func (r *Recorder) Report(name string) {
	r.reports.WithLabelValues(name).Inc()
}

// SetItems sets the current item count.
func (r *Recorder) SetItems(n int) {
	r.items.Set(float64(n))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics in the text exposition format to path,
// as consumed by the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
