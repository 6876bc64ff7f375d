package cache

import (
	"context"
	"time"
)

// MemoryStore is an in-process string store backed by an LRU. It satisfies
// the same context-aware Get/Set contract as the Redis store so the two are
// interchangeable behind an interface.
type MemoryStore struct {
	lru *LRU[string, string]
}

// NewMemoryStore creates a store holding at most capacity entries.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	lru, err := NewLRU[string, string](capacity)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{lru: lru}, nil
}

// Get returns the stored value. The error is always nil; it exists for
// interface compatibility with remote stores.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	v, ok := s.lru.Get(key)
	return v, ok, nil
}

// Set stores value under key for ttl. A ttl of zero or less never expires.
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.lru.Set(key, value, ttl)
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.lru.Remove(key)
	return nil
}

// Len counts stored entries.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}

// SetClock replaces the time source used for TTL checks.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.lru.SetClock(now)
}
