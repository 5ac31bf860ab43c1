package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type point struct {
	Lat float64 `json:"lat"`
	OK  bool    `json:"ok"`
}

type countingRecorder struct {
	hits, misses atomic.Int64
}

func (c *countingRecorder) RecordCacheHit(context.Context, string)  { c.hits.Add(1) }
func (c *countingRecorder) RecordCacheMiss(context.Context, string) { c.misses.Add(1) }

func TestMemo_CachesCacheableResults(t *testing.T) {
	memo := NewMemo[point]("geocode", NewMemoryStore(0), zaptest.NewLogger(t))
	rec := &countingRecorder{}
	memo.SetMetricsRecorder(rec)

	calls := 0
	fetch := func(context.Context) (point, bool) {
		calls++
		return point{Lat: 15.3, OK: true}, true
	}

	first := memo.GetOrFetch(context.Background(), "goa", fetch)
	second := memo.GetOrFetch(context.Background(), "goa", fetch)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), rec.hits.Load())
	assert.Equal(t, int64(1), rec.misses.Load())
}

func TestMemo_NeverServesStaleUnavailable(t *testing.T) {
	memo := NewMemo[point]("geocode", NewMemoryStore(0), zaptest.NewLogger(t))

	unavailable := func(context.Context) (point, bool) { return point{}, false }
	available := func(context.Context) (point, bool) { return point{Lat: 1, OK: true}, true }

	got := memo.GetOrFetch(context.Background(), "goa", unavailable)
	assert.False(t, got.OK)

	got = memo.GetOrFetch(context.Background(), "goa", available)
	assert.True(t, got.OK)

	got = memo.GetOrFetch(context.Background(), "goa", unavailable)
	assert.True(t, got.OK, "successful result must win over later attempts")
}

func TestMemo_CollapsesConcurrentFetches(t *testing.T) {
	memo := NewMemo[point]("weather", NewMemoryStore(0), zaptest.NewLogger(t))

	var calls atomic.Int64
	release := make(chan struct{})
	fetch := func(context.Context) (point, bool) {
		calls.Add(1)
		<-release
		return point{Lat: 2, OK: true}, true
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := memo.GetOrFetch(context.Background(), "paris", fetch)
			assert.True(t, got.OK)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int64(8))
	assert.GreaterOrEqual(t, calls.Load(), int64(1))

	// Once stored, nothing fetches again.
	before := calls.Load()
	memo.GetOrFetch(context.Background(), "paris", fetch)
	assert.Equal(t, before, calls.Load())
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}
func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func TestMemo_StoreErrorsFallBackToFetch(t *testing.T) {
	memo := NewMemo[point]("weather", failingStore{}, zaptest.NewLogger(t))

	calls := 0
	fetch := func(context.Context) (point, bool) {
		calls++
		return point{Lat: 3, OK: true}, true
	}

	assert.Equal(t, 3.0, memo.GetOrFetch(context.Background(), "rome", fetch).Lat)
	assert.Equal(t, 3.0, memo.GetOrFetch(context.Background(), "rome", fetch).Lat)
	assert.Equal(t, 2, calls)
}

func TestMemo_NilMemoFetchesDirectly(t *testing.T) {
	var memo *Memo[point]
	got := memo.GetOrFetch(context.Background(), "x", func(context.Context) (point, bool) {
		return point{Lat: 4}, true
	})
	assert.Equal(t, 4.0, got.Lat)
}

func TestMemoryStore_TTL(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))

	v, ok, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))
	now = now.Add(24 * 365 * time.Hour)

	_, ok, _ := store.Get(context.Background(), "k")
	assert.True(t, ok)

	store.Clear()
	assert.Equal(t, 0, store.Len())
}

func TestMemo_CollapsedCallersSurviveLeaderCancellation(t *testing.T) {
	memo := NewMemo[point]("weather", NewMemoryStore(0), zaptest.NewLogger(t))

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	fetch := func(ctx context.Context) (point, bool) {
		once.Do(func() { close(started) })
		<-release
		if ctx.Err() != nil {
			return point{}, false
		}
		return point{Lat: 5, OK: true}, true
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leader := make(chan point, 1)
	go func() { leader <- memo.GetOrFetch(leaderCtx, "lisbon", fetch) }()
	<-started

	follower := make(chan point, 1)
	go func() { follower <- memo.GetOrFetch(context.Background(), "lisbon", fetch) }()
	time.Sleep(20 * time.Millisecond)

	cancel()
	close(release)

	assert.True(t, (<-follower).OK)
	assert.True(t, (<-leader).OK)
	assert.True(t, memo.GetOrFetch(context.Background(), "lisbon", func(context.Context) (point, bool) {
		return point{}, false
	}).OK, "shared result must be cached")
}
