// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service's collectors. A nil *Metrics records nothing.
type Metrics struct {
	transitions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	rpcDuration   *prometheus.HistogramVec
	receiptTotal  prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sharezin",
			Name:      "receipt_transitions_total",
			Help:      "Receipt lifecycle transitions by name and outcome.",
		}, []string{"transition", "outcome"}),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sharezin",
			Name:      "notifications_total",
			Help:      "Notifications by type and delivery result.",
		}, []string{"type", "result"}),
		rpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sharezin",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		receiptTotal: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sharezin",
			Name:      "receipt_total_amount",
			Help:      "Receipt totals at the time they are closed.",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 10),
		}),
	}
}

// Transition counts one transition attempt. outcome is "ok" or an error kind.
func (m *Metrics) Transition(name, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(name, outcome).Inc()
}

// Notification counts one notification. result is "delivered", "dropped" or "failed".
func (m *Metrics) Notification(typ, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(typ, result).Inc()
}

// RPC records the latency of one call.
func (m *Metrics) RPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(seconds)
}

// ReceiptClosed records the total of a receipt that was just closed.
func (m *Metrics) ReceiptClosed(total float64) {
	if m == nil {
		return
	}
	m.receiptTotal.Observe(total)
}
