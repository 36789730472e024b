// Package memory provides an in-memory key-value medium with an optional
// byte quota, used for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rpggio/soundxcape/internal/repository"
)

// Compile-time contract assertion.
var _ repository.KeyValueRepository = (*Store)(nil)

// Store is a map-backed repository.KeyValueRepository. Usage counts the bytes
// of every key and value, the way browser storage quotas do.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int64
}

// Option configures a Store.
type Option func(*Store)

// WithQuota caps the total bytes the store accepts. Zero means unlimited.
func WithQuota(bytes int64) Option {
	return func(s *Store) { s.quota = bytes }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{values: map[string][]byte{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the value stored at key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// SetBatch stores every entry, or none when the result would exceed the quota.
func (s *Store) SetBatch(_ context.Context, entries []repository.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		used := s.usedLocked()
		for _, e := range entries {
			if old, ok := s.values[e.Key]; ok {
				used -= int64(len(e.Key) + len(old))
			}
			used += int64(len(e.Key) + len(e.Value))
		}
		if used > s.quota {
			return repository.ErrQuotaExceeded
		}
	}

	for _, e := range entries {
		s.values[e.Key] = append([]byte(nil), e.Value...)
	}
	return nil
}

// Keys lists stored keys in lexical order.
func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Usage reports stored bytes and the configured quota.
func (s *Store) Usage(_ context.Context) (int64, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usedLocked(), s.quota, nil
}

func (s *Store) usedLocked() int64 {
	var used int64
	for k, v := range s.values {
		used += int64(len(k) + len(v))
	}
	return used
}
