package inventory

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMarket is a testify double for MarketPurchaser
type MockMarket struct {
	mock.Mock
}

func (m *MockMarket) SubmitPurchase(ctx context.Context, productID, payload string) error {
	return m.Called(ctx, productID, payload).Error(0)
}
