package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redispkg "github.com/bettyshin1213/hbd-public/internal/pkg/redis"
)

const redisKeyPrefix = "hbd:session:"

// RedisStore keeps sessions as JSON values with a sliding TTL.
type RedisStore struct {
	client *redispkg.Client
	ttl    time.Duration
}

func NewRedisStore(client *redispkg.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if raw == "" {
		return nil, ErrNotFound
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.ID = id
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.client.Set(ctx, redisKeyPrefix+s.ID, payload, r.ttl)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id)
}
