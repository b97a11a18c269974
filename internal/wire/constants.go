package wire

// MessageSeparator joins the positional fields of an event message
const MessageSeparator = "#SOOM#"

// Envelope keys
const (
	KeyClassName = "className"
	KeyItem      = "item"
)

// Item keys
const (
	KeyItemID      = "itemId"
	KeyName        = "name"
	KeyDescription = "description"

	KeyPurchasableItem = "purchasableItem"
	KeyPurchaseType    = "purchaseType"
	KeyMarketItem      = "marketItem"
	KeyVIItemID        = "pvi_itemId"
	KeyVIAmount        = "pvi_amount"

	KeyCurrencyAmount = "currency_amount"
	KeyCurrencyItemID = "currency_itemId"
	KeyGoodItemID     = "good_itemId"
	KeyGoodAmount     = "good_amount"
	KeyPrevItemID     = "prev_itemId"
	KeyNextItemID     = "next_itemId"
	KeyEquipping      = "equipping"
	KeyGoodsItemIDs   = "goods_itemIds"
)

// Market item keys
const (
	KeyProductID         = "productId"
	KeyAndroidID         = "androidId"
	KeyIOSID             = "iosId"
	KeyConsumable        = "consumable"
	KeyPrice             = "price"
	KeyMarketPrice       = "marketPrice"
	KeyMarketTitle       = "marketTitle"
	KeyMarketDescription = "marketDesc"
)

// Purchase type values
const (
	PurchaseTypeMarket      = "market"
	PurchaseTypeVirtualItem = "virtualItem"
)

// Platform selects the platform-specific product id on decode
type Platform string

const (
	PlatformNone    Platform = ""
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Restore outcome encodings
const (
	FlagTrue  = "1"
	FlagFalse = "0"
)

// Error messages
const (
	ErrMsgDecodeEnvelopeFailed = "failed to decode item envelope: %w"
	ErrMsgUnknownClassNameFmt  = "unknown className %q: %w"
	ErrMsgMissingFieldFmt      = "missing %s: %w"
	ErrMsgInvalidFieldFmt      = "invalid %s %q: %w"
	ErrMsgUnknownPurchaseFmt   = "unknown purchaseType %q: %w"
	ErrMsgUnknownEventTypeFmt  = "unknown event type %q: %w"
	ErrMsgFieldCountFmt        = "event %s expects %d fields, got %d: %w"
	ErrMsgUnexpectedPayloadFmt = "event %s cannot encode payload %T: %w"
	ErrMsgDecodeAssetsFailed   = "failed to decode store assets: %w"
	ErrMsgEncodeFailed         = "failed to encode: %w"
)
