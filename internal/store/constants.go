package store

// Error messages
const (
	ErrMsgNotMarketItem   = "%w: product %s is not sold on the market"
	ErrMsgNoProvider      = "%w: no market provider configured"
	ErrMsgProviderRequest = "market request failed: %w"
)

// Log messages
const (
	LogMsgStoreInitialized       = "Store initialized"
	LogMsgCatalogKept            = "Persisted catalog kept"
	LogMsgEventPublishFailed     = "Store event delivery failed"
	LogMsgCallbackFailed         = "Market callback could not be applied"
	LogMsgPurchaseFailed         = "Market purchase failed"
	LogMsgRestoreFailed          = "Market restore failed"
	LogMsgRefreshFailed          = "Market details refresh failed"
	LogMsgIabServiceStarted      = "IAB service started"
	LogMsgIabServiceStopped      = "IAB service stopped"
	LogMsgStoreClosed            = "Store closed"
	LogMsgMarketCallbackReceived = "Market callback received"
)
