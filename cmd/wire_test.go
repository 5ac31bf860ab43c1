package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/trip-planner-app/internal/cache"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"go.uber.org/zap/zaptest"
)

type closingStore struct {
	*cache.MemoryStore
	closed int
}

func (s *closingStore) Ping(context.Context) error { return nil }
func (s *closingStore) Close() error {
	s.closed++
	return nil
}

func withCacheStore(t *testing.T, store *closingStore) {
	t.Helper()
	orig := newCacheStore
	newCacheStore = func(config.CacheConfig) (cache.Store, error) { return store, nil }
	t.Cleanup(func() { newCacheStore = orig })
}

func TestBuildApp_ClosesStoreOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown weather type", func(c *config.Config) { c.Weather.Type = "open-meteo" }},
		{"unknown geocode type", func(c *config.Config) { c.Geocode.Type = "here" }},
		{"unknown llm provider", func(c *config.Config) { c.LLM.Provider = "cohere" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &closingStore{MemoryStore: cache.NewMemoryStore(0)}
			withCacheStore(t, store)

			c := config.NewDefaultConfig()
			c.LLM.APIKey = "test-key"
			tt.mutate(c)

			a, err := buildApp(context.Background(), c, zaptest.NewLogger(t), nil)
			require.Error(t, err)
			assert.Nil(t, a)
			assert.Equal(t, 1, store.closed)
		})
	}
}

func TestBuildApp_WiresStore(t *testing.T) {
	store := &closingStore{MemoryStore: cache.NewMemoryStore(0)}
	withCacheStore(t, store)

	c := config.NewDefaultConfig()
	c.LLM.APIKey = "test-key"

	a, err := buildApp(context.Background(), c, zaptest.NewLogger(t), nil)
	require.NoError(t, err)
	require.NotNil(t, a.planner)
	assert.Contains(t, a.readiness, "cache")
	assert.Equal(t, 0, store.closed)

	a.Close()
	assert.Equal(t, 1, store.closed)
}
