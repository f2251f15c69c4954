package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hotelbooking:"

// Store is a thin namespaced wrapper over Redis. A nil Store, or one built
// without a client, behaves as an always-empty cache.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) enabled() bool {
	return s != nil && s.rdb != nil
}

// Acquire claims key for ttl. It returns false while a previous claim is live.
func (s *Store) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if !s.enabled() {
		return true, nil
	}
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("cache setnx: %w", err)
	}
	return ok, nil
}

// GetJSON decodes the value at key into dst and reports whether it was present.
func (s *Store) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	if !s.enabled() {
		return false, nil
	}
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if !s.enabled() {
		return nil
	}
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}
