package domain

// Store event type names. They double as the event names of the #SOOM# message
// protocol, so they must not change.
const (
	EventTypeBillingSupported            = "billingSupported"
	EventTypeBillingNotSupported         = "billingNotSupported"
	EventTypeStoreInitialized            = "storeInitialized"
	EventTypeIabServiceStarted           = "iabServiceStarted"
	EventTypeIabServiceStopped           = "iabServiceStopped"
	EventTypeCurrencyBalanceChanged      = "currencyBalanceChanged"
	EventTypeGoodBalanceChanged          = "goodBalanceChanged"
	EventTypeGoodEquipped                = "goodEquipped"
	EventTypeGoodUnequipped              = "goodUnequipped"
	EventTypeGoodUpgrade                 = "goodUpgrade"
	EventTypeItemPurchased               = "itemPurchased"
	EventTypeItemPurchaseStarted         = "itemPurchaseStarted"
	EventTypeMarketPurchaseStarted       = "marketPurchaseStarted"
	EventTypeMarketPurchase              = "marketPurchase"
	EventTypeMarketPurchaseCancelled     = "marketPurchaseCancelled"
	EventTypeMarketRefund                = "marketRefund"
	EventTypeRestoreTransactionsStarted  = "restoreTransactionsStarted"
	EventTypeRestoreTransactionsFinished = "restoreTransactionsFinished"
	EventTypeMarketItemsRefreshStarted   = "marketItemsRefreshStarted"
	EventTypeMarketItemsRefreshFinished  = "marketItemsRefreshFinished"
	EventTypeUnexpectedErrorInStore      = "unexpectedErrorInStore"
	EventTypeNonConsumableChanged        = "nonConsumableChanged"
)

// AllEventTypes lists every store event type
var AllEventTypes = []string{
	EventTypeBillingSupported,
	EventTypeBillingNotSupported,
	EventTypeStoreInitialized,
	EventTypeIabServiceStarted,
	EventTypeIabServiceStopped,
	EventTypeCurrencyBalanceChanged,
	EventTypeGoodBalanceChanged,
	EventTypeGoodEquipped,
	EventTypeGoodUnequipped,
	EventTypeGoodUpgrade,
	EventTypeItemPurchased,
	EventTypeItemPurchaseStarted,
	EventTypeMarketPurchaseStarted,
	EventTypeMarketPurchase,
	EventTypeMarketPurchaseCancelled,
	EventTypeMarketRefund,
	EventTypeRestoreTransactionsStarted,
	EventTypeRestoreTransactionsFinished,
	EventTypeMarketItemsRefreshStarted,
	EventTypeMarketItemsRefreshFinished,
	EventTypeUnexpectedErrorInStore,
	EventTypeNonConsumableChanged,
}

// SignalPayload is carried by events that have no fields
type SignalPayload struct{}

// ItemPayload identifies the item an event is about
type ItemPayload struct {
	ItemID string `json:"item_id"`
}

// BalanceChangedPayload is carried by currency and good balance changes
type BalanceChangedPayload struct {
	ItemID      string `json:"item_id"`
	Balance     int    `json:"balance"`
	AmountAdded int    `json:"amount_added"`
}

// GoodUpgradePayload reports the new current upgrade of a good ("" when removed)
type GoodUpgradePayload struct {
	GoodItemID    string `json:"good_item_id"`
	UpgradeItemID string `json:"upgrade_item_id,omitempty"`
}

// ItemPurchasedPayload is carried by itemPurchased
type ItemPurchasedPayload struct {
	ItemID  string `json:"item_id"`
	Payload string `json:"payload,omitempty"`
}

// MarketPurchasePayload is carried by a completed market purchase
type MarketPurchasePayload struct {
	ItemID  string `json:"item_id"`
	Payload string `json:"payload"`
	Token   string `json:"token"`
}

// RestoreTransactionsFinishedPayload reports the outcome of a restore
type RestoreTransactionsFinishedPayload struct {
	Success bool `json:"success"`
}

// MarketItemsRefreshFinishedPayload lists the refreshed market details
type MarketItemsRefreshFinishedPayload struct {
	Items []MarketItemDetails `json:"items"`
}

// UnexpectedErrorPayload carries a market failure message
type UnexpectedErrorPayload struct {
	Message string `json:"message"`
}

// NonConsumableChangedPayload reports non-consumable ownership changes
type NonConsumableChangedPayload struct {
	ItemID string `json:"item_id"`
	Owned  bool   `json:"owned"`
}
