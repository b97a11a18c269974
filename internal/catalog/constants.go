package catalog

// Persistence layout
const (
	// Namespace is the key/value namespace holding the catalog
	Namespace = "catalog"

	KeyVersion = "meta.version"
	KeyAssets  = "meta.assets"
)

// Error messages
const (
	ErrMsgReadPersistedFailed   = "failed to read persisted catalog: %w"
	ErrMsgPersistFailed         = "failed to persist catalog: %w"
	ErrMsgEncodeCatalogFailed   = "failed to encode catalog: %w"
	ErrMsgBeginTxFailed         = "failed to begin transaction: %w"
	ErrMsgCommitFailed          = "failed to commit transaction: %w"
	ErrMsgReadAssetsFileFailed  = "failed to read store assets file: %w"
	ErrMsgParseAssetsYAMLFailed = "failed to parse store assets YAML: %w"
	ErrMsgSchemaFailedFmt       = "schema validation failed for %s: %w"
)

// Index validation fragments, wrapped around domain.ErrCatalogInvalid
const (
	ErrFmtEmptyItemID          = "%w: %s at index %d has empty itemId"
	ErrFmtDuplicateItemID      = "%w: duplicate itemId %q"
	ErrFmtDuplicateProductID   = "%w: duplicate productId %q (%s, %s)"
	ErrFmtMissingPurchase      = "%w: %q has no purchase type"
	ErrFmtMissingReference     = "%w: %q references unknown %s %q"
	ErrFmtWrongReferenceKind   = "%w: %q references %q of kind %s, expected %s"
	ErrFmtNonPositiveAmount    = "%w: %q has non-positive %s %d"
	ErrFmtUnpayableTarget      = "%w: %q is paid with %q which has no balance"
	ErrFmtEmptyCategoryName    = "%w: category at index %d has empty name"
	ErrFmtDuplicateCategory    = "%w: duplicate category %q"
	ErrFmtGoodInTwoCategories  = "%w: good %q is in categories %q and %q"
	ErrFmtCategoryNotGood      = "%w: category %q lists %q which is not a good"
	ErrFmtUpgradeOfUpgrade     = "%w: upgrade %q targets another upgrade %q"
	ErrFmtUpgradeWrongGood     = "%w: upgrade %q links to %q which upgrades %q"
	ErrFmtUpgradeLinkMismatch  = "%w: upgrade %q links to %q but the back link is %q"
	ErrFmtUpgradeChainEnds     = "%w: upgrade scale of %q has %d first and %d last steps"
	ErrFmtUpgradeChainDetached = "%w: upgrade scale of %q reaches %d of %d steps"
	ErrFmtUnknownMarketDetails = "%w: no market item with productId %q"
	ErrFmtGroupKindMismatch    = "%w: %q of kind %s listed as %s"
	ErrFmtSelfPayment          = "%w: %q is paid with itself"
)

// Log messages
const (
	LogMsgCatalogReplaced      = "Catalog replaced"
	LogMsgCatalogKept          = "Persisted catalog kept"
	LogMsgCatalogLoaded        = "Catalog loaded from persistence"
	LogMsgPersistedCorrupt     = "Persisted catalog unreadable, replacing it"
	LogMsgCategoryMissing      = "Category-model good has no category, it will equip locally"
	LogMsgMarketDetailsApplied = "Market item details applied"
	LogMsgMarketDetailsSkipped = "Market details for unknown product skipped"
	LogMsgAssetsFileLoaded     = "Store assets loaded"
	LogMsgInitializeCalled     = "Catalog Initialize called"
	LogMsgApplyDetailsCalled   = "Catalog ApplyMarketDetails called"
)

// Asset file extensions
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)
