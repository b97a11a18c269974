package wire

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/VirtualStore_Go/internal/domain"
)

// MarketItemDocument is the JSON form of a market item
type MarketItemDocument struct {
	ProductID   string  `json:"productId" jsonschema:"required,title=Product ID,description=Market product identifier,minLength=1"`
	AndroidID   string  `json:"androidId,omitempty" jsonschema:"description=Google Play product id overriding productId on Android"`
	IOSID       string  `json:"iosId,omitempty" jsonschema:"description=App Store product id overriding productId on iOS"`
	Consumable  int     `json:"consumable" jsonschema:"enum=0,enum=1,enum=2,description=0 non-consumable / 1 consumable / 2 subscription"`
	Price       float64 `json:"price" jsonschema:"minimum=0"`
	MarketPrice string  `json:"marketPrice"`
	MarketTitle string  `json:"marketTitle"`
	MarketDesc  string  `json:"marketDesc"`
}

// PurchasableDocument is the JSON form of a purchase type
type PurchasableDocument struct {
	PurchaseType string              `json:"purchaseType" jsonschema:"required,enum=market,enum=virtualItem"`
	MarketItem   *MarketItemDocument `json:"marketItem,omitempty"`
	ItemID       string              `json:"pvi_itemId,omitempty"`
	Amount       *int                `json:"pvi_amount,omitempty" jsonschema:"minimum=1"`
}

// ItemDocument is the JSON form of any virtual item.
// Kind-specific keys are pointers so absent and empty can be told apart.
type ItemDocument struct {
	ItemID      string               `json:"itemId" jsonschema:"required,title=Item ID,minLength=1"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Purchasable *PurchasableDocument `json:"purchasableItem,omitempty"`

	CurrencyAmount *int    `json:"currency_amount,omitempty" jsonschema:"minimum=1"`
	CurrencyItemID *string `json:"currency_itemId,omitempty"`
	GoodItemID     *string `json:"good_itemId,omitempty"`
	GoodAmount     *int    `json:"good_amount,omitempty" jsonschema:"minimum=1"`
	PrevItemID     *string `json:"prev_itemId,omitempty"`
	NextItemID     *string `json:"next_itemId,omitempty"`
	Equipping      *string `json:"equipping,omitempty" jsonschema:"enum=local,enum=category,enum=global"`
}

// Envelope wraps an item with its variant tag
type Envelope struct {
	ClassName string          `json:"className"`
	Item      json.RawMessage `json:"item"`
}

// Codec encodes and decodes items for one platform.
// The zero value uses productId as is.
type Codec struct {
	Platform Platform
}

var defaultCodec = Codec{}

// EncodeItem encodes an item into its {"className", "item"} envelope
func EncodeItem(item domain.VirtualItem) ([]byte, error) {
	return defaultCodec.EncodeItem(item)
}

// DecodeItem decodes an envelope produced by EncodeItem
func DecodeItem(data []byte) (domain.VirtualItem, error) {
	return defaultCodec.DecodeItem(data)
}

// EncodeItem encodes an item into its {"className", "item"} envelope
func (c Codec) EncodeItem(item domain.VirtualItem) ([]byte, error) {
	doc, err := ToDocument(item)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeFailed, err)
	}
	data, err := json.Marshal(Envelope{ClassName: string(item.Kind), Item: raw})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeFailed, err)
	}
	return data, nil
}

// DecodeItem decodes an envelope, dispatching on className
func (c Codec) DecodeItem(data []byte) (domain.VirtualItem, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.VirtualItem{}, fmt.Errorf(ErrMsgDecodeEnvelopeFailed, fmt.Errorf("%w: %v", domain.ErrMalformedWireData, err))
	}
	kind, err := parseClassName(env.ClassName)
	if err != nil {
		return domain.VirtualItem{}, err
	}
	if len(env.Item) == 0 {
		return domain.VirtualItem{}, fmt.Errorf(ErrMsgMissingFieldFmt, KeyItem, domain.ErrMalformedWireData)
	}
	return c.DecodeItemJSON(kind, env.Item)
}

// DecodeItemJSON decodes the bare item object of a known kind
func (c Codec) DecodeItemJSON(kind domain.ItemKind, raw []byte) (domain.VirtualItem, error) {
	var doc ItemDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.VirtualItem{}, fmt.Errorf("%w: %v", domain.ErrMalformedWireData, err)
	}
	return c.FromDocument(kind, doc)
}

func parseClassName(name string) (domain.ItemKind, error) {
	for _, kind := range domain.AllItemKinds {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf(ErrMsgUnknownClassNameFmt, name, domain.ErrMalformedWireData)
}

// ToDocument converts an item into its JSON document
func ToDocument(item domain.VirtualItem) (ItemDocument, error) {
	doc := ItemDocument{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Description: item.Description,
	}
	if item.ItemID == "" {
		return doc, fmt.Errorf(ErrMsgMissingFieldFmt, KeyItemID, domain.ErrMalformedWireData)
	}

	if item.Kind != domain.KindVirtualCurrency {
		purchasable, err := purchaseToDocument(item.Purchase)
		if err != nil {
			return doc, err
		}
		doc.Purchasable = purchasable
	}

	switch item.Kind {
	case domain.KindVirtualCurrency, domain.KindSingleUseVG, domain.KindLifetimeVG, domain.KindNonConsumableItem:
	case domain.KindVirtualCurrencyPack:
		doc.CurrencyAmount = intPtr(item.CurrencyAmount)
		doc.CurrencyItemID = stringPtr(item.CurrencyItemID)
	case domain.KindSingleUsePackVG:
		doc.GoodItemID = stringPtr(item.GoodItemID)
		doc.GoodAmount = intPtr(item.GoodAmount)
	case domain.KindUpgradeVG:
		doc.GoodItemID = stringPtr(item.GoodItemID)
		doc.PrevItemID = stringPtr(item.PrevItemID)
		doc.NextItemID = stringPtr(item.NextItemID)
	case domain.KindEquippableVG:
		equipping := item.Equipping
		if equipping == "" {
			equipping = domain.EquippingCategory
		}
		doc.Equipping = stringPtr(string(equipping))
	default:
		return doc, fmt.Errorf(ErrMsgUnknownClassNameFmt, item.Kind, domain.ErrMalformedWireData)
	}
	return doc, nil
}

func purchaseToDocument(p *domain.PurchaseType) (*PurchasableDocument, error) {
	if p == nil {
		return nil, fmt.Errorf(ErrMsgMissingFieldFmt, KeyPurchasableItem, domain.ErrMalformedWireData)
	}
	switch p.Kind {
	case domain.PurchaseKindMarket:
		if p.Market == nil {
			return nil, fmt.Errorf(ErrMsgMissingFieldFmt, KeyMarketItem, domain.ErrMalformedWireData)
		}
		return &PurchasableDocument{
			PurchaseType: PurchaseTypeMarket,
			MarketItem: &MarketItemDocument{
				ProductID:   p.Market.ProductID,
				Consumable:  int(p.Market.Consumable),
				Price:       p.Market.Price,
				MarketPrice: p.Market.MarketPrice,
				MarketTitle: p.Market.MarketTitle,
				MarketDesc:  p.Market.MarketDescription,
			},
		}, nil
	case domain.PurchaseKindVirtualItem:
		return &PurchasableDocument{
			PurchaseType: PurchaseTypeVirtualItem,
			ItemID:       p.TargetItemID,
			Amount:       intPtr(p.Amount),
		}, nil
	}
	return nil, fmt.Errorf(ErrMsgUnknownPurchaseFmt, p.Kind, domain.ErrMalformedWireData)
}

// FromDocument converts a JSON document of the given kind into an item
func (c Codec) FromDocument(kind domain.ItemKind, doc ItemDocument) (domain.VirtualItem, error) {
	if doc.ItemID == "" {
		return domain.VirtualItem{}, fmt.Errorf(ErrMsgMissingFieldFmt, KeyItemID, domain.ErrMalformedWireData)
	}
	item := domain.VirtualItem{
		Kind:        kind,
		ItemID:      doc.ItemID,
		Name:        doc.Name,
		Description: doc.Description,
	}

	if kind != domain.KindVirtualCurrency {
		purchase, err := c.purchaseFromDocument(doc.Purchasable)
		if err != nil {
			return domain.VirtualItem{}, fmt.Errorf("%s: %w", doc.ItemID, err)
		}
		item.Purchase = purchase
	}

	var err error
	switch kind {
	case domain.KindVirtualCurrency, domain.KindSingleUseVG, domain.KindLifetimeVG, domain.KindNonConsumableItem:
	case domain.KindVirtualCurrencyPack:
		if item.CurrencyAmount, err = requireInt(doc.CurrencyAmount, KeyCurrencyAmount); err != nil {
			return domain.VirtualItem{}, err
		}
		if item.CurrencyItemID, err = requireString(doc.CurrencyItemID, KeyCurrencyItemID); err != nil {
			return domain.VirtualItem{}, err
		}
	case domain.KindSingleUsePackVG:
		if item.GoodItemID, err = requireString(doc.GoodItemID, KeyGoodItemID); err != nil {
			return domain.VirtualItem{}, err
		}
		if item.GoodAmount, err = requireInt(doc.GoodAmount, KeyGoodAmount); err != nil {
			return domain.VirtualItem{}, err
		}
	case domain.KindUpgradeVG:
		if item.GoodItemID, err = requireString(doc.GoodItemID, KeyGoodItemID); err != nil {
			return domain.VirtualItem{}, err
		}
		item.PrevItemID = optionalString(doc.PrevItemID)
		item.NextItemID = optionalString(doc.NextItemID)
	case domain.KindEquippableVG:
		item.Equipping = parseEquipping(optionalString(doc.Equipping))
	default:
		return domain.VirtualItem{}, fmt.Errorf(ErrMsgUnknownClassNameFmt, kind, domain.ErrMalformedWireData)
	}
	return item, nil
}

func (c Codec) purchaseFromDocument(doc *PurchasableDocument) (*domain.PurchaseType, error) {
	if doc == nil {
		return nil, fmt.Errorf(ErrMsgMissingFieldFmt, KeyPurchasableItem, domain.ErrMalformedWireData)
	}
	switch doc.PurchaseType {
	case PurchaseTypeMarket:
		if doc.MarketItem == nil {
			return nil, fmt.Errorf(ErrMsgMissingFieldFmt, KeyMarketItem, domain.ErrMalformedWireData)
		}
		return domain.PurchaseWithMarket(c.marketItemFromDocument(*doc.MarketItem)), nil
	case PurchaseTypeVirtualItem:
		if doc.ItemID == "" {
			return nil, fmt.Errorf(ErrMsgMissingFieldFmt, KeyVIItemID, domain.ErrMalformedWireData)
		}
		amount, err := requireInt(doc.Amount, KeyVIAmount)
		if err != nil {
			return nil, err
		}
		return domain.PurchaseWithVirtualItem(doc.ItemID, amount), nil
	}
	return nil, fmt.Errorf(ErrMsgUnknownPurchaseFmt, doc.PurchaseType, domain.ErrMalformedWireData)
}

func (c Codec) marketItemFromDocument(doc MarketItemDocument) domain.MarketItem {
	productID := doc.ProductID
	switch {
	case c.Platform == PlatformAndroid && doc.AndroidID != "":
		productID = doc.AndroidID
	case c.Platform == PlatformIOS && doc.IOSID != "":
		productID = doc.IOSID
	}

	consumable := domain.ConsumableSubscription
	switch doc.Consumable {
	case 0:
		consumable = domain.ConsumableNonConsumable
	case 1:
		consumable = domain.ConsumableConsumable
	}

	return domain.MarketItem{
		ProductID:         productID,
		Consumable:        consumable,
		Price:             doc.Price,
		MarketPrice:       doc.MarketPrice,
		MarketTitle:       doc.MarketTitle,
		MarketDescription: doc.MarketDesc,
	}
}

// parseEquipping maps the wire value to a model; anything unknown is Category
func parseEquipping(value string) domain.EquippingModel {
	switch domain.EquippingModel(value) {
	case domain.EquippingLocal:
		return domain.EquippingLocal
	case domain.EquippingGlobal:
		return domain.EquippingGlobal
	}
	return domain.EquippingCategory
}

func requireInt(v *int, key string) (int, error) {
	if v == nil {
		return 0, fmt.Errorf(ErrMsgMissingFieldFmt, key, domain.ErrMalformedWireData)
	}
	return *v, nil
}

func requireString(v *string, key string) (string, error) {
	if v == nil || *v == "" {
		return "", fmt.Errorf(ErrMsgMissingFieldFmt, key, domain.ErrMalformedWireData)
	}
	return *v, nil
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(v string) *string {
	return &v
}
