package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls   int
	prompts []string
	reply   string
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestCompleteWithoutCache(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := &Service{generator: gen}

	got, err := svc.Complete(context.Background(), "  list aisles \n")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	_, err = svc.Complete(context.Background(), "list aisles")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls, "every call is a fresh round-trip without a cache")
	assert.Equal(t, "list aisles", gen.prompts[0])
}

func TestCompleteUsesCache(t *testing.T) {
	gen := &fakeGenerator{reply: "cached answer"}
	store := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute})
	defer store.Close()
	svc := &Service{generator: gen, cache: store}

	for i := 0; i < 3; i++ {
		got, err := svc.Complete(context.Background(), "same prompt")
		require.NoError(t, err)
		assert.Equal(t, "cached answer", got)
	}
	assert.Equal(t, 1, gen.calls)
}

func TestCompletePropagatesError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	store := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute})
	defer store.Close()
	svc := &Service{generator: gen, cache: store}

	_, err := svc.Complete(context.Background(), "prompt")
	assert.EqualError(t, err, "boom")

	_, err = store.Get(context.Background(), "prompt")
	assert.Error(t, err, "failures must not be cached")
}
