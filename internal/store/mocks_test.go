package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/VirtualStore_Go/internal/market"
)

// MockProvider is a testify double for market.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SetCallbacks(cb market.Callbacks) {
	m.Called(cb)
}

func (m *MockProvider) BillingSupported(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockProvider) SubmitPurchase(ctx context.Context, productID, payload string) error {
	return m.Called(ctx, productID, payload).Error(0)
}

func (m *MockProvider) RestoreTransactions(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProvider) RefreshItemsDetails(ctx context.Context, products []market.Product) error {
	return m.Called(ctx, products).Error(0)
}
