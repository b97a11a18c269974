package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/VirtualStore_Go/internal/inventory"
	"github.com/osse101/VirtualStore_Go/internal/store"
)

type MockMarketOperations struct {
	mock.Mock
}

func (m *MockMarketOperations) BuyMarketItem(ctx context.Context, productID, payload string) (*inventory.BuyResult, error) {
	args := m.Called(ctx, productID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.BuyResult), args.Error(1)
}

func (m *MockMarketOperations) RefreshInventory(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMarketOperations) RefreshMarketItemsDetails(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMarketOperations) RestoreTransactions(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMarketOperations) TransactionsAlreadyRestored(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockMarketOperations) HandleMarketCallback(ctx context.Context, cb store.MarketCallback) error {
	return m.Called(ctx, cb).Error(0)
}

func (m *MockMarketOperations) StartIabServiceInBg(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMarketOperations) StopIabServiceInBg(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMarketOperations) IabServiceRunning() bool {
	return m.Called().Bool(0)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
