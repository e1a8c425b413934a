package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.SetDBPoolStats("main", 1, 1, 0, 0)
		m.IncBookingCreated()
		m.IncBookingRejected("slot full")
		m.IncVerification("email", "ok")
		m.IncNotificationFailed("sms")
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.IncBookingCreated()
	m.IncBookingCreated()
	m.IncBookingRejected("slot full")
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingRejections.WithLabelValues("slot full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("insert")))
}
