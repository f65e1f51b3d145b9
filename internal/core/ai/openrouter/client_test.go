package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.OpenRouterConfig{
		BaseURL:   srv.URL,
		APIKey:    "sk-test-key-123456",
		Model:     "test/model",
		MaxTokens: 256,
		Timeout:   2 * time.Second,
	})
}

func TestGenerateSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test-key-123456", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test/model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "hello", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","choices":[{"message":{"role":"assistant","content":"  {\"Produce\":[\"Onion\"]}  "}}]}`))
	})

	content, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"Produce":["Onion"]}`, content)
}

func TestGenerateMissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(config.OpenRouterConfig{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "hello")

	assert.True(t, errors.Is(err, common.ErrAICredentials))
	assert.False(t, called, "no request should be sent without credentials")
}

func TestGenerateErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	})

	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAIServiceError))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGenerateEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","choices":[]}`))
	})

	_, err := client.Generate(context.Background(), "hello")
	assert.True(t, errors.Is(err, common.ErrAIEmptyResponse))
}

func TestGenerateBlankContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","choices":[{"message":{"content":"   "}}]}`))
	})

	_, err := client.Generate(context.Background(), "hello")
	assert.True(t, errors.Is(err, common.ErrAIEmptyResponse))
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(config.OpenRouterConfig{
		BaseURL: srv.URL,
		APIKey:  "sk-test-key-123456",
		Timeout: 50 * time.Millisecond,
	})

	_, err := client.Generate(context.Background(), "hello")
	assert.True(t, errors.Is(err, common.ErrAIServiceError))
}
