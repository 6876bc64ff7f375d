package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a string key-value store on top of Redis, used as a shared render
// cache between service instances. Keys are namespaced with a prefix.
type Store struct {
	db     redis.UniversalClient
	prefix string
}

// NewStore wraps client. Every key is stored as prefix+key.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	return &Store{db: client, prefix: prefix}
}

// Get returns the value for key. A missing key is not an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	val, err := s.db.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value with expiration. Zero ttl means no expiration.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	return s.db.Set(ctx, s.prefix+key, value, max(ttl, 0)).Err()
}

// Delete removes key. Empty keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Del(ctx, s.prefix+key).Err()
}

// Close terminates the Redis connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Conn returns the underlying client.
func (s *Store) Conn() redis.UniversalClient {
	return s.db
}
