package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	method, path, status string
}

type fakeMetrics struct {
	calls []observed
}

func (m *fakeMetrics) ObserveHTTPRequest(method, path, status string, _ time.Duration) {
	m.calls = append(m.calls, observed{method: method, path: path, status: status})
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := &fakeMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(metrics))
	r.HandleFunc("/api/v1/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/items/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ok", nil))

	require.Len(t, metrics.calls, 2)
	assert.Equal(t, observed{method: "GET", path: "/api/v1/items/{id}", status: "418"}, metrics.calls[0])
	assert.Equal(t, observed{method: "GET", path: "/api/v1/ok", status: "200"}, metrics.calls[1])
}
