package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue reads a counter from the registry by name and label values.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Transition("close_receipt", "ok")
	m.Transition("close_receipt", "ok")
	m.Transition("close_receipt", "forbidden")
	m.Notification("receipt_closed", "dropped")

	got := counterValue(t, reg, "sharezin_receipt_transitions_total",
		map[string]string{"transition": "close_receipt", "outcome": "ok"})
	if got != 2 {
		t.Errorf("ok transitions = %v, want 2", got)
	}
	got = counterValue(t, reg, "sharezin_notifications_total",
		map[string]string{"type": "receipt_closed", "result": "dropped"})
	if got != 1 {
		t.Errorf("dropped notifications = %v, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Transition("x", "ok")
	m.Notification("x", "delivered")
	m.RPC("/x", "ok", 0.1)
	m.ReceiptClosed(10)
}
