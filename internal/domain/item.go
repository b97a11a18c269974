package domain

// ItemKind tags the variant of a VirtualItem
type ItemKind string

const (
	KindVirtualCurrency     ItemKind = "VirtualCurrency"
	KindVirtualCurrencyPack ItemKind = "VirtualCurrencyPack"
	KindSingleUseVG         ItemKind = "SingleUseVG"
	KindLifetimeVG          ItemKind = "LifetimeVG"
	KindEquippableVG        ItemKind = "EquippableVG"
	KindUpgradeVG           ItemKind = "UpgradeVG"
	KindSingleUsePackVG     ItemKind = "SingleUsePackVG"
	KindNonConsumableItem   ItemKind = "NonConsumableItem"
)

// AllItemKinds lists every supported variant in catalog order
var AllItemKinds = []ItemKind{
	KindVirtualCurrency,
	KindVirtualCurrencyPack,
	KindSingleUseVG,
	KindLifetimeVG,
	KindEquippableVG,
	KindUpgradeVG,
	KindSingleUsePackVG,
	KindNonConsumableItem,
}

// EquippingModel governs how many goods may be equipped at once
type EquippingModel string

const (
	EquippingLocal    EquippingModel = "local"
	EquippingCategory EquippingModel = "category"
	EquippingGlobal   EquippingModel = "global"
)

// ConsumableKind describes how the market treats a product
type ConsumableKind int

const (
	ConsumableNonConsumable ConsumableKind = 0
	ConsumableConsumable    ConsumableKind = 1
	ConsumableSubscription  ConsumableKind = 2
)

// PurchaseKind tags the variant of a PurchaseType
type PurchaseKind string

const (
	PurchaseKindMarket      PurchaseKind = "market"
	PurchaseKindVirtualItem PurchaseKind = "virtualItem"
)

// MarketItem describes a product sold through the external market.
// The Market* display fields are reported by the market and change on refresh.
type MarketItem struct {
	ProductID         string         `json:"product_id"`
	Consumable        ConsumableKind `json:"consumable"`
	Price             float64        `json:"price"`
	MarketPrice       string         `json:"market_price"`
	MarketTitle       string         `json:"market_title"`
	MarketDescription string         `json:"market_description"`
}

// PurchaseType says how an item is paid for.
// Market is set for PurchaseKindMarket; TargetItemID and Amount for PurchaseKindVirtualItem.
type PurchaseType struct {
	Kind         PurchaseKind `json:"kind"`
	Market       *MarketItem  `json:"market,omitempty"`
	TargetItemID string       `json:"target_item_id,omitempty"`
	Amount       int          `json:"amount,omitempty"`
}

// PurchaseWithMarket builds a real-money purchase type
func PurchaseWithMarket(item MarketItem) *PurchaseType {
	return &PurchaseType{Kind: PurchaseKindMarket, Market: &item}
}

// PurchaseWithVirtualItem builds a purchase type that spends amount of targetItemID
func PurchaseWithVirtualItem(targetItemID string, amount int) *PurchaseType {
	return &PurchaseType{Kind: PurchaseKindVirtualItem, TargetItemID: targetItemID, Amount: amount}
}

// IsMarket reports whether the purchase goes through the external market
func (p *PurchaseType) IsMarket() bool {
	return p != nil && p.Kind == PurchaseKindMarket && p.Market != nil
}

// VirtualItem is a flat tagged variant covering every catalog item kind.
// Only the fields relevant to Kind are populated:
//   - VirtualCurrencyPack: CurrencyItemID, CurrencyAmount
//   - SingleUsePackVG: GoodItemID, GoodAmount
//   - UpgradeVG: GoodItemID, PrevItemID, NextItemID ("" means none)
//   - EquippableVG: Equipping
//
// Purchase is nil only for VirtualCurrency.
type VirtualItem struct {
	Kind        ItemKind      `json:"kind"`
	ItemID      string        `json:"item_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Purchase    *PurchaseType `json:"purchase,omitempty"`

	CurrencyItemID string `json:"currency_item_id,omitempty"`
	CurrencyAmount int    `json:"currency_amount,omitempty"`

	GoodItemID string `json:"good_item_id,omitempty"`
	GoodAmount int    `json:"good_amount,omitempty"`
	PrevItemID string `json:"prev_item_id,omitempty"`
	NextItemID string `json:"next_item_id,omitempty"`

	Equipping EquippingModel `json:"equipping,omitempty"`
}

// IsPurchasable reports whether the item can be bought
func (v *VirtualItem) IsPurchasable() bool {
	return v.Kind != KindVirtualCurrency && v.Purchase != nil
}

// IsGood reports whether the item is one of the virtual good variants
func (v *VirtualItem) IsGood() bool {
	switch v.Kind {
	case KindSingleUseVG, KindLifetimeVG, KindEquippableVG, KindUpgradeVG, KindSingleUsePackVG:
		return true
	}
	return false
}

// IsLifetime reports whether ownership of the item is a boolean that can be bought at most once
func (v *VirtualItem) IsLifetime() bool {
	switch v.Kind {
	case KindLifetimeVG, KindEquippableVG, KindUpgradeVG:
		return true
	}
	return false
}

// HasBalance reports whether the item carries a ledger balance of its own
func (v *VirtualItem) HasBalance() bool {
	return v.Kind != KindVirtualCurrencyPack && v.Kind != KindSingleUsePackVG
}

// VirtualCategory groups goods for Category-model equip exclusivity
type VirtualCategory struct {
	Name        string   `json:"name"`
	GoodItemIDs []string `json:"goods_item_ids"`
}

// NewVirtualCurrency creates a balance-only currency
func NewVirtualCurrency(itemID, name, description string) VirtualItem {
	return VirtualItem{Kind: KindVirtualCurrency, ItemID: itemID, Name: name, Description: description}
}

// NewVirtualCurrencyPack creates a pack that grants amount of currencyItemID
func NewVirtualCurrencyPack(itemID, name, description string, amount int, currencyItemID string, purchase *PurchaseType) VirtualItem {
	return VirtualItem{
		Kind:           KindVirtualCurrencyPack,
		ItemID:         itemID,
		Name:           name,
		Description:    description,
		Purchase:       purchase,
		CurrencyItemID: currencyItemID,
		CurrencyAmount: amount,
	}
}

// NewSingleUseVG creates a good with an integer balance
func NewSingleUseVG(itemID, name, description string, purchase *PurchaseType) VirtualItem {
	return VirtualItem{Kind: KindSingleUseVG, ItemID: itemID, Name: name, Description: description, Purchase: purchase}
}

// NewLifetimeVG creates a good that is bought once
func NewLifetimeVG(itemID, name, description string, purchase *PurchaseType) VirtualItem {
	return VirtualItem{Kind: KindLifetimeVG, ItemID: itemID, Name: name, Description: description, Purchase: purchase}
}

// NewEquippableVG creates an equippable lifetime good. Any model other than
// Local or Global becomes Category, matching how the wire format decodes it.
func NewEquippableVG(itemID, name, description string, equipping EquippingModel, purchase *PurchaseType) VirtualItem {
	if equipping != EquippingLocal && equipping != EquippingGlobal {
		equipping = EquippingCategory
	}
	return VirtualItem{
		Kind:        KindEquippableVG,
		ItemID:      itemID,
		Name:        name,
		Description: description,
		Purchase:    purchase,
		Equipping:   equipping,
	}
}

// NewUpgradeVG creates one step of the upgrade scale of goodItemID
func NewUpgradeVG(itemID, name, description, goodItemID, prevItemID, nextItemID string, purchase *PurchaseType) VirtualItem {
	return VirtualItem{
		Kind:        KindUpgradeVG,
		ItemID:      itemID,
		Name:        name,
		Description: description,
		Purchase:    purchase,
		GoodItemID:  goodItemID,
		PrevItemID:  prevItemID,
		NextItemID:  nextItemID,
	}
}

// NewSingleUsePackVG creates a bundle granting amount of goodItemID
func NewSingleUsePackVG(itemID, name, description, goodItemID string, amount int, purchase *PurchaseType) VirtualItem {
	return VirtualItem{
		Kind:        KindSingleUsePackVG,
		ItemID:      itemID,
		Name:        name,
		Description: description,
		Purchase:    purchase,
		GoodItemID:  goodItemID,
		GoodAmount:  amount,
	}
}

// NewNonConsumableItem creates a market-remembered ownership item
func NewNonConsumableItem(itemID, name, description string, purchase *PurchaseType) VirtualItem {
	return VirtualItem{Kind: KindNonConsumableItem, ItemID: itemID, Name: name, Description: description, Purchase: purchase}
}

// Clone returns a deep copy of the item
func (v *VirtualItem) Clone() VirtualItem {
	out := *v
	if v.Purchase != nil {
		p := *v.Purchase
		if p.Market != nil {
			m := *p.Market
			p.Market = &m
		}
		out.Purchase = &p
	}
	return out
}

// Clone returns a deep copy of the category
func (c VirtualCategory) Clone() VirtualCategory {
	ids := make([]string, len(c.GoodItemIDs))
	copy(ids, c.GoodItemIDs)
	c.GoodItemIDs = ids
	return c
}
