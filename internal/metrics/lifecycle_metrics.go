package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleMetrics instruments the order lifecycle engine: operation
// outcomes per side, swallowed secondary-write failures, and the depth of
// the optimistic pending-pickup buffer.
type LifecycleMetrics struct {
	pickupTotal       *prometheus.CounterVec
	archiveTotal      *prometheus.CounterVec
	secondaryFailures prometheus.Counter
	pendingPickups    prometheus.Gauge
}

// NewLifecycleMetrics registers the lifecycle metrics on the default registerer.
func NewLifecycleMetrics() *LifecycleMetrics {
	return NewLifecycleMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewLifecycleMetricsWithRegisterer registers on an explicit registerer;
// tests pass a fresh registry to avoid duplicate-registration panics.
func NewLifecycleMetricsWithRegisterer(registerer prometheus.Registerer) *LifecycleMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &LifecycleMetrics{
		pickupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_pickup_total",
			Help: "Total number of pickup operations by side and outcome",
		}, []string{"side", "outcome"}),
		archiveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_archive_total",
			Help: "Total number of archive operations by outcome",
		}, []string{"outcome"}),
		secondaryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_secondary_write_failures_total",
			Help: "Total number of swallowed paired-entity write failures",
		}),
		pendingPickups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pos_pending_pickups",
			Help: "Current depth of the optimistic pending-pickup buffer",
		}),
	}

	registerer.MustRegister(m.pickupTotal, m.archiveTotal, m.secondaryFailures, m.pendingPickups)
	return m
}

// PickupCompleted records one finished pickup task.
func (m *LifecycleMetrics) PickupCompleted(isInvoice, ok bool) {
	side := "work_order"
	if isInvoice {
		side = "invoice"
	}
	m.pickupTotal.WithLabelValues(side, outcomeLabel(ok)).Inc()
}

// ArchiveCompleted records one finished archive task.
func (m *LifecycleMetrics) ArchiveCompleted(ok bool) {
	m.archiveTotal.WithLabelValues(outcomeLabel(ok)).Inc()
}

// SecondaryWriteFailed records a swallowed paired-entity write failure.
func (m *LifecycleMetrics) SecondaryWriteFailed() {
	m.secondaryFailures.Inc()
}

// SetPendingPickups tracks the optimistic buffer depth.
func (m *LifecycleMetrics) SetPendingPickups(n int) {
	m.pendingPickups.Set(float64(n))
}

func outcomeLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
