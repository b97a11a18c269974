package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/inventory"
	"github.com/osse101/VirtualStore_Go/internal/market"
	"github.com/osse101/VirtualStore_Go/internal/store"
	"github.com/osse101/VirtualStore_Go/internal/testing/storetest"
)

func TestHandleMarketBuy(t *testing.T) {
	InitValidator()

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(*MockMarketOperations)
		wantStatus int
		wantBody   string
	}{
		{
			name: "accepted",
			body: MarketBuyRequest{ProductID: storetest.ProductPotion, Payload: "order-1"},
			setupMock: func(m *MockMarketOperations) {
				m.On("BuyMarketItem", mock.Anything, storetest.ProductPotion, "order-1").
					Return(&inventory.BuyResult{ItemID: storetest.Potion, Pending: true}, nil)
			},
			wantStatus: http.StatusAccepted,
			wantBody:   `"pending":true`,
		},
		{
			name:       "missing product",
			body:       MarketBuyRequest{},
			setupMock:  func(m *MockMarketOperations) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "not a market item",
			body: MarketBuyRequest{ProductID: "com.example.none"},
			setupMock: func(m *MockMarketOperations) {
				m.On("BuyMarketItem", mock.Anything, "com.example.none", "").
					Return(nil, fmt.Errorf("%w: com.example.none", domain.ErrItemNotFound))
			},
			wantStatus: http.StatusNotFound,
			wantBody:   ErrMsgItemNotFoundError,
		},
		{
			name: "billing unavailable",
			body: MarketBuyRequest{ProductID: storetest.ProductNoAds},
			setupMock: func(m *MockMarketOperations) {
				m.On("BuyMarketItem", mock.Anything, storetest.ProductNoAds, "").
					Return(nil, domain.ErrMarketUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   ErrMsgMarketUnavailableErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := &MockMarketOperations{}
			tt.setupMock(ops)

			w := serve(t, http.MethodPost, "/market/buy", "/market/buy", HandleMarketBuy(ops), tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			ops.AssertExpectations(t)
		})
	}
}

func TestHandleMarketRefresh(t *testing.T) {
	t.Run("details only", func(t *testing.T) {
		ops := &MockMarketOperations{}
		ops.On("RefreshMarketItemsDetails", mock.Anything).Return(nil)

		w := serve(t, http.MethodPost, "/market/refresh", "/market/refresh", HandleMarketRefresh(ops), nil)

		assert.Equal(t, http.StatusAccepted, w.Code)
		ops.AssertExpectations(t)
		ops.AssertNotCalled(t, "RefreshInventory", mock.Anything)
	})

	t.Run("with inventory", func(t *testing.T) {
		ops := &MockMarketOperations{}
		ops.On("RefreshInventory", mock.Anything).Return(nil)

		w := serve(t, http.MethodPost, "/market/refresh", "/market/refresh?inventory=true", HandleMarketRefresh(ops), nil)

		assert.Equal(t, http.StatusAccepted, w.Code)
		ops.AssertExpectations(t)
	})

	t.Run("no provider", func(t *testing.T) {
		ops := &MockMarketOperations{}
		ops.On("RefreshMarketItemsDetails", mock.Anything).Return(fmt.Errorf("no provider: %w", domain.ErrMarketUnavailable))

		w := serve(t, http.MethodPost, "/market/refresh", "/market/refresh", HandleMarketRefresh(ops), nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandleMarketRestore(t *testing.T) {
	ops := &MockMarketOperations{}
	ops.On("RestoreTransactions", mock.Anything).Return(nil)
	ops.On("TransactionsAlreadyRestored", mock.Anything).Return(true, nil)

	w := serve(t, http.MethodPost, "/market/restore", "/market/restore", HandleMarketRestore(ops), nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	w = serve(t, http.MethodGet, "/market/restore", "/market/restore", HandleMarketRestoreStatus(ops), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[RestoreStatusResponse](t, w).Restored)
	ops.AssertExpectations(t)
}

func TestHandleMarketCallback(t *testing.T) {
	InitValidator()

	t.Run("completion is forwarded", func(t *testing.T) {
		ops := &MockMarketOperations{}
		expected := store.MarketCallback{
			ProductID: storetest.ProductCoinPack,
			Payload:   "order-7",
			Token:     "tok-7",
			Outcome:   market.OutcomeComplete,
		}
		ops.On("HandleMarketCallback", mock.Anything, expected).Return(nil)

		w := serve(t, http.MethodPost, "/market/callback", "/market/callback", HandleMarketCallback(ops), MarketCallbackRequest{
			ProductID: storetest.ProductCoinPack,
			Payload:   "order-7",
			Token:     "tok-7",
			Outcome:   "complete",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgMarketCallbackAccepted)
		ops.AssertExpectations(t)
	})

	t.Run("unknown outcome", func(t *testing.T) {
		ops := &MockMarketOperations{}

		w := serve(t, http.MethodPost, "/market/callback", "/market/callback", HandleMarketCallback(ops), MarketCallbackRequest{
			ProductID: storetest.ProductCoinPack,
			Outcome:   "chargeback",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"outcome":"Invalid outcome"`)
		ops.AssertNotCalled(t, "HandleMarketCallback", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		ops := &MockMarketOperations{}
		ops.On("HandleMarketCallback", mock.Anything, mock.Anything).Return(domain.ErrItemNotFound)

		w := serve(t, http.MethodPost, "/market/callback", "/market/callback", HandleMarketCallback(ops), MarketCallbackRequest{
			ProductID: "com.example.none",
			Outcome:   "refund",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleIab(t *testing.T) {
	ops := &MockMarketOperations{}
	ops.On("StartIabServiceInBg", mock.Anything).Return().Once()
	ops.On("StopIabServiceInBg", mock.Anything).Return().Once()
	ops.On("IabServiceRunning").Return(true).Once()
	ops.On("IabServiceRunning").Return(false).Once()

	w := serve(t, http.MethodPost, "/market/iab/start", "/market/iab/start", HandleIabStart(ops), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[IabStatusResponse](t, w).Running)

	w = serve(t, http.MethodPost, "/market/iab/stop", "/market/iab/stop", HandleIabStop(ops), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[IabStatusResponse](t, w).Running)

	ops.AssertExpectations(t)
}
