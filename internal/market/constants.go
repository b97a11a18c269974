package market

import "time"

// Sandbox defaults
const (
	DefaultDelay   = 50 * time.Millisecond
	PriceFormat    = "$%.2f"
	FailureMessage = "sandbox purchase failed for %s"
)

// Error messages
const (
	ErrMsgNoCallbacks     = "%w: no callbacks registered"
	ErrMsgSubmitFailed    = "%w: %w"
	ErrMsgUnknownOutcome  = "unknown outcome %q: %w"
	ErrMsgBillingDisabled = "%w: billing not supported"
)

// Log messages
const (
	LogMsgPurchaseSubmitted   = "Sandbox purchase submitted"
	LogMsgPurchaseSettled     = "Sandbox purchase settled"
	LogMsgRestoreSubmitted    = "Sandbox restore submitted"
	LogMsgRefreshSubmitted    = "Sandbox details refresh submitted"
	LogMsgSettlementAbandoned = "Sandbox settlement abandoned by shutdown"
)
