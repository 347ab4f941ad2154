// Package metrics provides Prometheus collectors for the relay.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Relay holds the relay collectors.
type Relay struct {
	requests *prometheus.CounterVec
	upstream prometheus.Histogram
}

// NewRelay registers the relay collectors with reg.
func NewRelay(reg prometheus.Registerer) *Relay {
	factory := promauto.With(reg)
	return &Relay{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shorturl",
			Subsystem: "relay",
			Name:      "requests_total",
			Help:      "Relay requests by outcome.",
		}, []string{"outcome"}),
		upstream: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shorturl",
			Subsystem: "relay",
			Name:      "upstream_duration_seconds",
			Help:      "Latency of calls to the remote shortening service.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveRequest counts one relay request. A nil receiver is a no-op.
func (m *Relay) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records the duration of one upstream call. A nil receiver is a no-op.
func (m *Relay) ObserveUpstream(d time.Duration) {
	if m == nil {
		return
	}
	m.upstream.Observe(d.Seconds())
}

// Requests exposes the request counter for the given outcome.
func (m *Relay) Requests(outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(outcome)
}
