package inventory

import "time"

// Ledger keys, stored in the owner's namespace
const (
	KeyFmtCurrencyBalance   = "currency.%s.balance"
	KeyFmtGoodBalance       = "good.%s.balance"
	KeyFmtGoodEquipped      = "good.%s.equipped"
	KeyFmtGoodUpgrade       = "good.%s.currentUpgrade"
	KeyFmtNonConsumable     = "nonConsumable.%s.exists"
	KeyTransactionsRestored = "meta.transactionsRestored"

	FlagSet = "1"
)

// Market purchase token dedupe
const (
	TokenCacheSize = 4096
	TokenCacheTTL  = 24 * time.Hour
)

// Error messages
const (
	ErrMsgBeginTxFailed       = "failed to begin transaction: %w"
	ErrMsgCommitFailed        = "failed to commit transaction: %w"
	ErrMsgReadLedgerFailed    = "failed to read ledger key %s: %w"
	ErrMsgWriteLedgerFailed   = "failed to write ledger key %s: %w"
	ErrMsgCorruptLedgerValue  = "ledger key %s holds invalid value %q"
	ErrMsgSubmitFailed        = "failed to submit market purchase: %w"
	ErrMsgAmountNotPositive   = "%w: amount must be positive, got %d"
	ErrMsgBalanceOverflow     = "%w: balance of %s would overflow"
	ErrMsgNotPurchasable      = "%w: %s is not purchasable"
	ErrMsgNotEquippable       = "%w: %s is not equippable"
	ErrMsgNotUpgradable       = "%w: %s is not an upgradable good"
	ErrMsgNoUpgrades          = "%w: %s has no upgrades"
	ErrMsgNotNonConsumable    = "%w: %s is not a non-consumable item"
	ErrMsgNoBalance           = "%w: %s has no balance"
	ErrMsgNotMarketItem       = "%w: %s is not sold on the market"
	ErrMsgAlreadyOwnedFmt     = "%w: %s"
	ErrMsgInsufficientFmt     = "%w: %s costs %d %s, balance is %d"
	ErrMsgNotOwnedFmt         = "%w: %s"
	ErrMsgUpgradeSequenceFmt  = "%w: %s is step %d, next step is %d"
	ErrMsgMarketUnavailableFn = "%w: no market provider configured"
)

// Log messages
const (
	LogMsgBuyCalled              = "Buy called"
	LogMsgGiveCalled             = "Give called"
	LogMsgTakeCalled             = "Take called"
	LogMsgEquipCalled            = "Equip called"
	LogMsgUnequipCalled          = "Unequip called"
	LogMsgUpgradeCalled          = "Upgrade called"
	LogMsgRemoveUpgradesCalled   = "RemoveUpgrades called"
	LogMsgMarketPurchaseStarted  = "Market purchase submitted"
	LogMsgMarketPurchaseApplied  = "Market purchase credited"
	LogMsgStaleMarketCredit      = "Market purchase credited against a changed ledger"
	LogMsgDuplicateToken         = "Duplicate market purchase token ignored"
	LogMsgMarketCancelled        = "Market purchase cancelled"
	LogMsgMarketRefunded         = "Market purchase refunded"
	LogMsgRestoreApplied         = "Restored purchases applied"
	LogMsgRestoreSkippedProduct  = "Restored product skipped"
	LogMsgUpgradeAtLastStep      = "Good already at its last upgrade"
	LogMsgCategoryMissing        = "Category-model good has no category, equipping locally"
	LogMsgEventDeliveryFailed    = "Store event delivery failed"
	LogMsgVirtualPurchaseApplied = "Virtual item purchase applied"
)
