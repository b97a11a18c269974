// Package memory provides a process-local key/value store for tests and ephemeral runs.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/repository"
)

type nsKey struct {
	namespace string
	key       string
}

// KeyValueStore implements repository.KeyValueStore in memory
type KeyValueStore struct {
	mu   sync.RWMutex
	data map[nsKey]string
}

// NewKeyValueStore creates an empty store
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{data: make(map[nsKey]string)}
}

// KeyValueTx buffers writes until Commit
type KeyValueTx struct {
	store   *KeyValueStore
	pending map[nsKey]*string // nil value marks a delete
	closed  bool
	mu      sync.Mutex
}

// BeginTx starts a new transaction
func (s *KeyValueStore) BeginTx(ctx context.Context) (repository.KeyValueTx, error) {
	return &KeyValueTx{store: s, pending: make(map[nsKey]*string)}, nil
}

// Get reads one committed value
func (s *KeyValueStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[nsKey{namespace, key}]
	return v, ok, nil
}

// List reads every committed value of namespace whose key starts with prefix
func (s *KeyValueStore) List(ctx context.Context, namespace, prefix string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(namespace, prefix), nil
}

func (s *KeyValueStore) listLocked(namespace, prefix string) map[string]string {
	values := make(map[string]string)
	for k, v := range s.data {
		if k.namespace == namespace && strings.HasPrefix(k.key, prefix) {
			values[k.key] = v
		}
	}
	return values
}

// Ping always succeeds
func (s *KeyValueStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (s *KeyValueStore) Close() {}

// Commit applies the buffered writes atomically
func (t *KeyValueTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.ErrTxClosed
	}
	t.closed = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for k, v := range t.pending {
		if v == nil {
			delete(t.store.data, k)
			continue
		}
		t.store.data[k] = *v
	}
	return nil
}

// Rollback discards the buffered writes
func (t *KeyValueTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.ErrTxClosed
	}
	t.closed = true
	t.pending = nil
	return nil
}

// Get reads through the buffered writes
func (t *KeyValueTx) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return "", false, domain.ErrTxClosed
	}
	if v, ok := t.pending[nsKey{namespace, key}]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}
	return t.store.Get(ctx, namespace, key)
}

// List reads through the buffered writes
func (t *KeyValueTx) List(ctx context.Context, namespace, prefix string) (map[string]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, domain.ErrTxClosed
	}

	t.store.mu.RLock()
	values := t.store.listLocked(namespace, prefix)
	t.store.mu.RUnlock()

	for k, v := range t.pending {
		if k.namespace != namespace || !strings.HasPrefix(k.key, prefix) {
			continue
		}
		if v == nil {
			delete(values, k.key)
			continue
		}
		values[k.key] = *v
	}
	return values, nil
}

// Set buffers a write
func (t *KeyValueTx) Set(ctx context.Context, namespace, key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.ErrTxClosed
	}
	t.pending[nsKey{namespace, key}] = &value
	return nil
}

// Delete buffers a delete
func (t *KeyValueTx) Delete(ctx context.Context, namespace, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.ErrTxClosed
	}
	t.pending[nsKey{namespace, key}] = nil
	return nil
}
