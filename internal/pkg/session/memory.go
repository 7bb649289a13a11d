package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemoryCapacity = 10000

// MemoryStore keeps sessions in a bounded, expiring LRU. Used when no Redis
// URL is configured.
type MemoryStore struct {
	cache *expirable.LRU[string, *Session]
}

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{cache: expirable.NewLRU[string, *Session](capacity, nil, ttl)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.cache.Add(s.ID, s.clone())
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Remove(id)
	return nil
}
