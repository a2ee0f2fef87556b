package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLeadMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveSubmission("sent")
	m.ObserveSubmission("sent")
	m.ObserveSubmission("rejected")
	m.ObserveDelivery("ok")
	m.ObserveDelivery("error")
	m.ObserveNotifyLatency(0.25)

	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("sent")); got != 2 {
		t.Errorf("expected 2 sent submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("rejected")); got != 1 {
		t.Errorf("expected 1 rejected submission, got %v", got)
	}
	if got := testutil.ToFloat64(m.deliveriesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("expected 1 failed delivery, got %v", got)
	}
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	// Must not panic when metrics are disabled.
	m.ObserveSubmission("sent")
	m.ObserveDelivery("ok")
	m.ObserveNotifyLatency(0.1)
}
