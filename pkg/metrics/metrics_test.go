package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncCycle()
		m.ObservePair("slots_found")
		m.SetSlotsFound("1001", "2025-01-01", 3)
		m.ObserveUpstreamRequest("matrix", "ok", time.Second)
		m.IncTokenRefresh("ok")
		m.IncNotification("webhook", "ok")
		m.ObserveHTTPRequest(http.MethodGet, "/api/v1/status", "200", time.Millisecond)
	})
	assert.NotNil(t, m.Handler())
}

func TestMetrics_Counters(t *testing.T) {
	m := New("venue-monitor")

	m.IncCycle()
	m.IncCycle()
	m.ObservePair("not_open")
	m.IncNotification("email", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cycles))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pairs.WithLabelValues("not_open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("email", "error")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("venue-monitor")
	m.IncCycle()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "monitor_cycles_total")
}

func TestMetrics_DeleteSlotsFound(t *testing.T) {
	m := New("venue-monitor")

	m.SetSlotsFound("1001", "2025-06-01", 2)
	m.SetSlotsFound("1001", "2025-06-02", 1)
	require.Equal(t, 2, testutil.CollectAndCount(m.slotsFound))

	m.DeleteSlotsFound("1001", "2025-06-01")

	assert.Equal(t, 1, testutil.CollectAndCount(m.slotsFound))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotsFound.WithLabelValues("1001", "2025-06-02")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.DeleteSlotsFound("1001", "2025-06-01") })
}
