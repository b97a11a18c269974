package domain

// StoreGoods groups the virtual goods of a store definition by variant
type StoreGoods struct {
	SingleUse  []VirtualItem `json:"single_use"`
	Lifetime   []VirtualItem `json:"lifetime"`
	Equippable []VirtualItem `json:"equippable"`
	Upgrades   []VirtualItem `json:"upgrades"`
	Packs      []VirtualItem `json:"packs"`
}

// StoreAssets is the host-supplied economy definition the catalog is built from
type StoreAssets struct {
	Version        int               `json:"version"`
	Currencies     []VirtualItem     `json:"currencies"`
	CurrencyPacks  []VirtualItem     `json:"currency_packs"`
	Goods          StoreGoods        `json:"goods"`
	NonConsumables []VirtualItem     `json:"non_consumables"`
	Categories     []VirtualCategory `json:"categories"`
}

// AllItems returns every item of the definition, currencies first
func (a *StoreAssets) AllItems() []VirtualItem {
	items := make([]VirtualItem, 0, a.ItemCount())
	items = append(items, a.Currencies...)
	items = append(items, a.CurrencyPacks...)
	items = append(items, a.Goods.All()...)
	items = append(items, a.NonConsumables...)
	return items
}

// ItemCount returns the number of items across all groups
func (a *StoreAssets) ItemCount() int {
	return len(a.Currencies) + len(a.CurrencyPacks) + len(a.NonConsumables) +
		len(a.Goods.SingleUse) + len(a.Goods.Lifetime) + len(a.Goods.Equippable) +
		len(a.Goods.Upgrades) + len(a.Goods.Packs)
}

// All returns every good in group order
func (g *StoreGoods) All() []VirtualItem {
	goods := make([]VirtualItem, 0, len(g.SingleUse)+len(g.Lifetime)+len(g.Equippable)+len(g.Upgrades)+len(g.Packs))
	goods = append(goods, g.SingleUse...)
	goods = append(goods, g.Lifetime...)
	goods = append(goods, g.Equippable...)
	goods = append(goods, g.Upgrades...)
	goods = append(goods, g.Packs...)
	return goods
}

// AddGood appends a good to the group matching its kind.
// It returns false for kinds that are not goods.
func (g *StoreGoods) AddGood(item VirtualItem) bool {
	switch item.Kind {
	case KindSingleUseVG:
		g.SingleUse = append(g.SingleUse, item)
	case KindLifetimeVG:
		g.Lifetime = append(g.Lifetime, item)
	case KindEquippableVG:
		g.Equippable = append(g.Equippable, item)
	case KindUpgradeVG:
		g.Upgrades = append(g.Upgrades, item)
	case KindSingleUsePackVG:
		g.Packs = append(g.Packs, item)
	default:
		return false
	}
	return true
}

// MarketItemDetails is what the market reports for one product on refresh
type MarketItemDetails struct {
	ProductID   string `json:"productId"`
	Price       string `json:"market_price"`
	Title       string `json:"market_title"`
	Description string `json:"market_desc"`
}

// Clone returns a deep copy of the definition
func (a *StoreAssets) Clone() StoreAssets {
	return a.MapItems(func(item VirtualItem) VirtualItem { return item })
}

// MapItems returns a deep copy of the definition with fn applied to every item
func (a *StoreAssets) MapItems(fn func(VirtualItem) VirtualItem) StoreAssets {
	mapped := func(items []VirtualItem) []VirtualItem {
		if items == nil {
			return nil
		}
		out := make([]VirtualItem, len(items))
		for i, item := range items {
			out[i] = fn(item.Clone())
		}
		return out
	}

	out := StoreAssets{
		Version:        a.Version,
		Currencies:     mapped(a.Currencies),
		CurrencyPacks:  mapped(a.CurrencyPacks),
		NonConsumables: mapped(a.NonConsumables),
		Goods: StoreGoods{
			SingleUse:  mapped(a.Goods.SingleUse),
			Lifetime:   mapped(a.Goods.Lifetime),
			Equippable: mapped(a.Goods.Equippable),
			Upgrades:   mapped(a.Goods.Upgrades),
			Packs:      mapped(a.Goods.Packs),
		},
	}
	if a.Categories != nil {
		out.Categories = make([]VirtualCategory, len(a.Categories))
		for i, c := range a.Categories {
			out.Categories[i] = c.Clone()
		}
	}
	return out
}
