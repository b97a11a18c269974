package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path and query parameter error messages
	ErrMsgMissingPathParam = "Missing %s path parameter"
	ErrMsgInvalidKindParam = "Invalid kind '%s'"

	// Catalog operation error messages
	ErrMsgEncodeItemFailed = "Failed to encode item"

	// Market callback error messages
	ErrMsgInvalidOutcome = "Invalid outcome"
)

// Success messages for API responses
const (
	MsgGiveSuccess              = "Balance credited"
	MsgTakeSuccess              = "Balance debited"
	MsgEquipSuccess             = "Good equipped"
	MsgUnequipSuccess           = "Good unequipped"
	MsgUpgradesRemovedSuccess   = "Upgrades removed"
	MsgNonConsumableAdded       = "Non-consumable added"
	MsgNonConsumableRemoved     = "Non-consumable removed"
	MsgMarketRefreshStarted     = "Market refresh started"
	MsgMarketRestoreStarted     = "Restore started"
	MsgMarketCallbackAccepted   = "Callback accepted"
	MsgUpgradeAlreadyAtLastStep = "Good is already at its last upgrade"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceFailed   = "Store operation failed"
	LogMsgWireEncodeError = "Failed to encode item for wire"
	LogMsgReadinessFailed = "Readiness check failed"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStorageFailed  = "storage connection failed"
	HealthMsgNotInitialized = "catalog not initialized"
)
