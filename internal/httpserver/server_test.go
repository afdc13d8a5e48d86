package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := NewRouter(nil, nil, zap.NewNop())
	rec := serve(t, router, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	ok := Check{Name: "postgres", Ping: func(context.Context) error { return nil }}
	down := Check{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	rec := serve(t, NewRouter([]Check{ok}, nil, zap.NewNop()), http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, NewRouter([]Check{ok, down}, nil, zap.NewNop()), http.MethodGet, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","failed":{"redis":"connection refused"}}`, rec.Body.String())
}

func TestWebhookRoute(t *testing.T) {
	rec := serve(t, NewRouter(nil, nil, zap.NewNop()), http.MethodPost, WebhookPath)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	called := false
	webhook := func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}
	rec = serve(t, NewRouter(nil, webhook, zap.NewNop()), http.MethodPost, WebhookPath)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
