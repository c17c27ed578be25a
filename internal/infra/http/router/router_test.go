package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/waha-alert-relay/internal/infra/http/handlers"
	"github.com/xavierca1/waha-alert-relay/internal/infra/http/middleware"
	"github.com/xavierca1/waha-alert-relay/internal/infra/http/router"
	"github.com/xavierca1/waha-alert-relay/internal/infra/integration/waha"
	"github.com/xavierca1/waha-alert-relay/internal/usecase"
)

func newRouter(t *testing.T, metrics bool) http.Handler {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sent":true}`))
	}))
	t.Cleanup(downstream.Close)

	client := waha.NewClient(downstream.URL, "default", time.Second)
	uc := usecase.NewSendMessageUseCase(client, nil, "", "")

	return router.New(
		handlers.NewHealthHandler(),
		handlers.NewSendHandler(uc, nil),
		router.Options{AllowedOrigins: []string{"*"}, MetricsEnabled: metrics, Quiet: true},
	)
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(newRouter(t, false), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestSendRoutes(t *testing.T) {
	r := newRouter(t, false)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := do(r, method, "/send?to=5511&text=oi")
		assert.Equal(t, http.StatusOK, rec.Code, method)
		assert.JSONEq(t, `{"forwardedStatus":200,"forwardedData":{"sent":true}}`, rec.Body.String())
	}
}

func TestUnknownRoutesAreNotFound(t *testing.T) {
	r := newRouter(t, false)

	cases := []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/nope"},
		{http.MethodPost, "/health"},
		{http.MethodPut, "/send"},
		{http.MethodDelete, "/send"},
		{http.MethodGet, "/metrics"},
	}

	for _, tc := range cases {
		rec := do(r, tc.method, tc.path)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, "Not found", rec.Body.String())
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "zabbix-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "zabbix-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newRouter(t, true)

	do(r, http.MethodGet, "/send?to=5511&text=oi")
	do(r, http.MethodGet, "/send?to=abc&text=oi")

	rec := do(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `waha_forwards_total{outcome="success",status="200"}`)
	assert.Contains(t, body, `send_rejected_total{reason="INVALID_DESTINATION"}`)
}
