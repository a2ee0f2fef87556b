package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead relay pipeline.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	deliveriesTotal  *prometheus.CounterVec
	notifyLatency    prometheus.Histogram
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleanvent",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total contact-form submissions by terminal status",
		}, []string{"status"}),
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleanvent",
			Subsystem: "leads",
			Name:      "deliveries_total",
			Help:      "Total per-recipient email delivery attempts",
		}, []string{"status"}),
		notifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cleanvent",
			Subsystem: "leads",
			Name:      "notify_latency_seconds",
			Help:      "Latency of the full notification fan-out",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.deliveriesTotal, m.notifyLatency)
	return m
}

// ObserveSubmission counts one submission reaching a terminal status
// (rejected, sent, partial, failed).
func (m *LeadMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
}

// ObserveDelivery counts one per-recipient delivery attempt (ok or error).
func (m *LeadMetrics) ObserveDelivery(status string) {
	if m == nil {
		return
	}
	m.deliveriesTotal.WithLabelValues(status).Inc()
}

// ObserveNotifyLatency records how long one fan-out batch took to settle.
func (m *LeadMetrics) ObserveNotifyLatency(seconds float64) {
	if m == nil {
		return
	}
	m.notifyLatency.Observe(seconds)
}
