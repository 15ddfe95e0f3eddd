package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// ProxyMetrics exposes counters/histograms for proposal backend calls and
// wizard submissions.
type ProxyMetrics struct {
	backendCalls    *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	submissionTotal *prometheus.CounterVec
}

func NewProxyMetrics(reg prometheus.Registerer) *ProxyMetrics {
	m := &ProxyMetrics{
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proposal_gateway",
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Total calls forwarded to the proposals backend",
		}, []string{"operation", "status"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "proposal_gateway",
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Latency of calls to the proposals backend",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		submissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proposal_gateway",
			Subsystem: "wizard",
			Name:      "submissions_total",
			Help:      "Wizard submissions by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.backendCalls, m.backendLatency, m.submissionTotal)
	return m
}

// ObserveBackendCall records one backend round trip. A zero status means the
// call never got an answer.
func (m *ProxyMetrics) ObserveBackendCall(operation string, statusCode int, seconds float64) {
	if m == nil {
		return
	}
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	m.backendCalls.WithLabelValues(operation, status).Inc()
	m.backendLatency.WithLabelValues(operation).Observe(seconds)
}

func (m *ProxyMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionTotal.WithLabelValues(outcome).Inc()
}
