package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRelay(reg)

	m.ObserveRequest(OutcomeSuccess)
	m.ObserveRequest(OutcomeSuccess)
	m.ObserveRequest(OutcomeFailure)
	m.ObserveUpstream(120 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests(OutcomeFailure)))

	count, err := testutil.GatherAndCount(reg, "shorturl_relay_upstream_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilRelayIsNoop(t *testing.T) {
	var m *Relay
	assert.NotPanics(t, func() {
		m.ObserveRequest(OutcomeSuccess)
		m.ObserveUpstream(time.Second)
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRelay(reg)
	assert.Panics(t, func() { NewRelay(reg) })
}
