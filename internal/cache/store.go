package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/vzahanych/trip-planner-app/internal/config"
)

// Store is a byte-oriented key/value store with optional expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// NewStore builds the store selected by cfg.Backend.
func NewStore(cfg config.CacheConfig) (Store, error) {
	ttl := time.Duration(cfg.TTL) * time.Second

	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(ttl), nil
	case "redis":
		return NewRedisStore(cfg.Redis, ttl), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
