package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/domain"
)

func TestMessageRoundTrip(t *testing.T) {
	tests := []struct {
		eventType string
		payload   interface{}
		message   string
	}{
		{domain.EventTypeStoreInitialized, domain.SignalPayload{}, ""},
		{domain.EventTypeBillingNotSupported, domain.SignalPayload{}, ""},
		{domain.EventTypeCurrencyBalanceChanged, domain.BalanceChangedPayload{ItemID: "coin", Balance: 90, AmountAdded: -10}, "coin#SOOM#90#SOOM#-10"},
		{domain.EventTypeGoodBalanceChanged, domain.BalanceChangedPayload{ItemID: "gem", Balance: 5, AmountAdded: 5}, "gem#SOOM#5#SOOM#5"},
		{domain.EventTypeGoodEquipped, domain.ItemPayload{ItemID: "hat"}, "hat"},
		{domain.EventTypeGoodUnequipped, domain.ItemPayload{ItemID: "hat"}, "hat"},
		{domain.EventTypeGoodUpgrade, domain.GoodUpgradePayload{GoodItemID: "sword", UpgradeItemID: "sword_lvl1"}, "sword#SOOM#sword_lvl1"},
		{domain.EventTypeGoodUpgrade, domain.GoodUpgradePayload{GoodItemID: "sword"}, "sword"},
		{domain.EventTypeItemPurchased, domain.ItemPurchasedPayload{ItemID: "gem", Payload: "dev"}, "gem#SOOM#dev"},
		{domain.EventTypeItemPurchased, domain.ItemPurchasedPayload{ItemID: "gem"}, "gem"},
		{domain.EventTypeItemPurchaseStarted, domain.ItemPayload{ItemID: "gem"}, "gem"},
		{domain.EventTypeMarketPurchaseStarted, domain.ItemPayload{ItemID: "no_ads"}, "no_ads"},
		{domain.EventTypeMarketPurchaseCancelled, domain.ItemPayload{ItemID: "no_ads"}, "no_ads"},
		{domain.EventTypeMarketRefund, domain.ItemPayload{ItemID: "no_ads"}, "no_ads"},
		{domain.EventTypeMarketPurchase, domain.MarketPurchasePayload{ItemID: "no_ads", Payload: "p", Token: "tok"}, "no_ads#SOOM#p#SOOM#tok"},
		{domain.EventTypeRestoreTransactionsFinished, domain.RestoreTransactionsFinishedPayload{Success: true}, "1"},
		{domain.EventTypeRestoreTransactionsFinished, domain.RestoreTransactionsFinishedPayload{Success: false}, "0"},
		{domain.EventTypeUnexpectedErrorInStore, domain.UnexpectedErrorPayload{Message: "billing offline"}, "billing offline"},
		{domain.EventTypeNonConsumableChanged, domain.NonConsumableChangedPayload{ItemID: "full_version", Owned: true}, "full_version#SOOM#1"},
		{domain.EventTypeMarketItemsRefreshFinished, domain.MarketItemsRefreshFinishedPayload{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.eventType+"/"+tt.message, func(t *testing.T) {
			msg, err := EncodeMessage(tt.eventType, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.message, msg)

			decoded, err := DecodeMessage(tt.eventType, msg)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, decoded)
		})
	}
}

func TestMessage_RefreshFinished(t *testing.T) {
	payload := domain.MarketItemsRefreshFinishedPayload{Items: []domain.MarketItemDetails{
		{ProductID: "no_ads", Price: "$1.99", Title: "No Ads", Description: "Removes ads"},
		{ProductID: "coins_10", Price: "$0.99", Title: "Coins", Description: ""},
	}}

	msg, err := EncodeMessage(domain.EventTypeMarketItemsRefreshFinished, payload)
	require.NoError(t, err)
	assert.Equal(t,
		`{"productId":"no_ads","market_price":"$1.99","market_title":"No Ads","market_desc":"Removes ads"}#SOOM#`+
			`{"productId":"coins_10","market_price":"$0.99","market_title":"Coins","market_desc":""}`,
		msg)

	decoded, err := DecodeMessage(domain.EventTypeMarketItemsRefreshFinished, msg)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestEncodeMessage_Errors(t *testing.T) {
	_, err := EncodeMessage("bogus", domain.SignalPayload{})
	assert.ErrorIs(t, err, domain.ErrMalformedWireData)

	_, err = EncodeMessage(domain.EventTypeGoodEquipped, domain.SignalPayload{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = EncodeMessage(domain.EventTypeItemPurchased, domain.ItemPurchasedPayload{ItemID: "gem", Payload: "a#SOOM#b"})
	assert.ErrorIs(t, err, domain.ErrMalformedWireData)
}

func TestDecodeMessage_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		message   string
	}{
		{"unknown type", "bogus", "x"},
		{"balance too few fields", domain.EventTypeGoodBalanceChanged, "gem#SOOM#5"},
		{"balance too many fields", domain.EventTypeGoodBalanceChanged, "gem#SOOM#5#SOOM#1#SOOM#2"},
		{"balance not a number", domain.EventTypeCurrencyBalanceChanged, "coin#SOOM#five#SOOM#1"},
		{"empty item id", domain.EventTypeGoodEquipped, ""},
		{"extra field", domain.EventTypeGoodEquipped, "hat#SOOM#extra"},
		{"upgrade extra field", domain.EventTypeGoodUpgrade, "sword#SOOM#a#SOOM#b"},
		{"market purchase missing token", domain.EventTypeMarketPurchase, "no_ads#SOOM#p"},
		{"restore flag", domain.EventTypeRestoreTransactionsFinished, "yes"},
		{"non-consumable flag", domain.EventTypeNonConsumableChanged, "full_version#SOOM#2"},
		{"refresh not json", domain.EventTypeMarketItemsRefreshFinished, "{nope"},
		{"refresh missing product", domain.EventTypeMarketItemsRefreshFinished, `{"market_price":"$1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessage(tt.eventType, tt.message)
			assert.ErrorIs(t, err, domain.ErrMalformedWireData)
		})
	}
}
