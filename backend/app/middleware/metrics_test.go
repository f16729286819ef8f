package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func scrape(m *Metrics) string {
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := NewMetrics()
	r := mux.NewRouter()
	r.HandleFunc("/api/inventory/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
	h := m.Wrap(r)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/inventory/"+id, nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	body := scrape(m)
	assert.Contains(t, body, `pantry_http_requests_total{method="DELETE",path="/api/inventory/{id}",status="204"} 2`)
	assert.NotContains(t, body, `path="/api/inventory/a"`)
}

func TestMetricsCountsUnmatchedRequests(t *testing.T) {
	m := NewMetrics()
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = http.NotFoundHandler()
	api.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	api.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {}).Methods(http.MethodGet)
	h := m.Wrap(r)

	for _, tc := range []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/api/ping", http.StatusOK},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
		{http.MethodGet, "/api/other", http.StatusNotFound},
		{http.MethodPost, "/api/ping", http.StatusMethodNotAllowed},
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, rec.Code, tc.path)
	}

	body := scrape(m)
	assert.Contains(t, body, `pantry_http_requests_total{method="GET",path="/api/ping",status="200"} 1`)
	assert.Contains(t, body, `pantry_http_requests_total{method="GET",path="unmatched",status="404"} 2`)
	assert.Contains(t, body, `pantry_http_requests_total{method="POST",path="unmatched",status="405"} 1`)
	assert.NotContains(t, body, `path="/api/nope"`)
	assert.Contains(t, body, "pantry_http_inflight_requests 0")
}
