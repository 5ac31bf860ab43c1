package cache

import (
	"context"
	"sync"
	"time"
)

type CacheEntry struct {
	Data      []byte
	Timestamp time.Time
}

// MemoryStore keeps entries in process memory. A zero TTL keeps entries for
// the lifetime of the process.
type MemoryStore struct {
	entries map[string]*CacheEntry
	mutex   sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*CacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mutex.RLock()
	entry, exists := m.entries[key]
	m.mutex.RUnlock()

	if !exists {
		return nil, false, nil
	}

	if m.ttl > 0 && m.now().Sub(entry.Timestamp) > m.ttl {
		m.mutex.Lock()
		if cur, ok := m.entries[key]; ok && cur == entry {
			delete(m.entries, key)
		}
		m.mutex.Unlock()
		return nil, false, nil
	}

	return entry.Data, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.entries[key] = &CacheEntry{
		Data:      value,
		Timestamp: m.now(),
	}
	return nil
}

func (m *MemoryStore) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.entries = make(map[string]*CacheEntry)
}

func (m *MemoryStore) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.entries)
}
