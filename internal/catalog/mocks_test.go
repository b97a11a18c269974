package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/VirtualStore_Go/internal/repository"
)

// MockKeyValueStore is a testify double for repository.KeyValueStore
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	args := m.Called(ctx, namespace, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueStore) List(ctx context.Context, namespace, prefix string) (map[string]string, error) {
	args := m.Called(ctx, namespace, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockKeyValueStore) BeginTx(ctx context.Context) (repository.KeyValueTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.KeyValueTx), args.Error(1)
}

func (m *MockKeyValueStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockKeyValueStore) Close() {
	m.Called()
}
