package cache

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// HitRecorder receives cache hit/miss notifications.
type HitRecorder interface {
	RecordCacheHit(ctx context.Context, cacheType string)
	RecordCacheMiss(ctx context.Context, cacheType string)
}

// Memo memoizes fetches of T in a Store, keyed by string. Concurrent fetches
// of the same key share one call. Only values the fetch marks as cacheable
// are stored, so an unsuccessful result is never served from the cache.
type Memo[T any] struct {
	name    string
	store   Store
	group   singleflight.Group
	logger  *zap.Logger
	metrics HitRecorder
}

func NewMemo[T any](name string, store Store, logger *zap.Logger) *Memo[T] {
	return &Memo[T]{
		name:   name,
		store:  store,
		logger: logger.With(zap.String("cache", name)),
	}
}

func (m *Memo[T]) SetMetricsRecorder(metrics HitRecorder) {
	m.metrics = metrics
}

type memoResult[T any] struct {
	value     T
	cacheable bool
}

// GetOrFetch returns the cached value for key or calls fetch. A nil Memo
// always calls fetch.
func (m *Memo[T]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (T, bool)) T {
	if m == nil || m.store == nil {
		v, _ := fetch(ctx)
		return v
	}

	if v, ok := m.load(ctx, key); ok {
		if m.metrics != nil {
			m.metrics.RecordCacheHit(ctx, m.name)
		}
		return v
	}
	if m.metrics != nil {
		m.metrics.RecordCacheMiss(ctx, m.name)
	}

	// The shared call serves every collapsed caller, so it must not die
	// with the first caller's cancellation.
	res, _, _ := m.group.Do(key, func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		v, cacheable := fetch(shared)
		if cacheable {
			m.save(shared, key, v)
		}
		return memoResult[T]{value: v, cacheable: cacheable}, nil
	})

	return res.(memoResult[T]).value
}

func (m *Memo[T]) load(ctx context.Context, key string) (T, bool) {
	var zero T

	data, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.logger.Warn("Cache read failed, fetching directly", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	if !ok {
		return zero, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		m.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	return v, true
}

func (m *Memo[T]) save(ctx context.Context, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		m.logger.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := m.store.Set(ctx, key, data); err != nil {
		m.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
