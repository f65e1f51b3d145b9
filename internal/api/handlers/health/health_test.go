package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	h := NewHandler("1.2.3", AIStatus{Configured: true, Model: "test/model"}, nil)

	w := serve(h, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.True(t, resp.AI.Configured)
	assert.Contains(t, resp.Runtime, "goroutines")
}

func TestReadinessCheck(t *testing.T) {
	ok := NewHandler("", AIStatus{}, pingerFunc(func(context.Context) error { return nil }))
	assert.Equal(t, http.StatusOK, serve(ok, "/ready").Code)

	down := NewHandler("", AIStatus{}, pingerFunc(func(context.Context) error { return errors.New("conn refused") }))
	w := serve(down, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "SERVICE_UNAVAILABLE")

	assert.Equal(t, http.StatusOK, serve(NewHandler("", AIStatus{}, nil), "/live").Code)
}
