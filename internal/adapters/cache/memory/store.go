package memory

import (
	"context"
	"sync"

	"github.com/tomdyson/go-amee/internal/ports"
)

type Store struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

var _ ports.CacheStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{entries: map[string]map[string]string{}}
}

func (s *Store) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[namespace][key]
	return value, ok, nil
}

func (s *Store) Set(ctx context.Context, namespace, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.entries[namespace]
	if !ok {
		bucket = map[string]string{}
		s.entries[namespace] = bucket
	}
	bucket[key] = value

	return nil
}

// Len reports the number of entries held in namespace.
func (s *Store) Len(namespace string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries[namespace])
}
