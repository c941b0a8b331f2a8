package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

var _ domain.RecordStore = (*InMemoryRecordStore)(nil)

// InMemoryRecordStore keeps values for the lifetime of the process. It backs
// tests and the "memory" store driver.
type InMemoryRecordStore struct {
	store map[string]string

	mu sync.RWMutex
}

func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{
		store: make(map[string]string),
	}
}

func (r *InMemoryRecordStore) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.store[key]
	if !ok {
		return "", domain.ErrRecordNotFound
	}
	return value, nil
}

func (r *InMemoryRecordStore) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[key] = value
	return nil
}

func (r *InMemoryRecordStore) Remove(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, key)
	return nil
}
