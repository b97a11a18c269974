package catalog

import (
	"fmt"

	"github.com/osse101/VirtualStore_Go/internal/domain"
)

// index is an immutable lookup structure over one store definition.
// A refresh builds a new index rather than mutating the current one.
type index struct {
	assets     domain.StoreAssets
	items      map[string]domain.VirtualItem
	order      []string
	byProduct  map[string]string
	categories map[string]domain.VirtualCategory
	catOrder   []string
	categoryOf map[string]string
	upgrades   map[string][]string
}

// buildIndex validates assets and indexes them. It takes ownership of assets.
func buildIndex(assets domain.StoreAssets) (*index, error) {
	idx := &index{
		assets:     assets,
		items:      make(map[string]domain.VirtualItem, assets.ItemCount()),
		byProduct:  make(map[string]string),
		categories: make(map[string]domain.VirtualCategory, len(assets.Categories)),
		categoryOf: make(map[string]string),
		upgrades:   make(map[string][]string),
	}

	groups := []struct {
		kind  domain.ItemKind
		items []domain.VirtualItem
	}{
		{domain.KindVirtualCurrency, assets.Currencies},
		{domain.KindVirtualCurrencyPack, assets.CurrencyPacks},
		{domain.KindSingleUseVG, assets.Goods.SingleUse},
		{domain.KindLifetimeVG, assets.Goods.Lifetime},
		{domain.KindEquippableVG, assets.Goods.Equippable},
		{domain.KindUpgradeVG, assets.Goods.Upgrades},
		{domain.KindSingleUsePackVG, assets.Goods.Packs},
		{domain.KindNonConsumableItem, assets.NonConsumables},
	}
	for _, g := range groups {
		for i, item := range g.items {
			if err := idx.add(g.kind, i, item); err != nil {
				return nil, err
			}
		}
	}

	for _, id := range idx.order {
		if err := idx.checkReferences(idx.items[id]); err != nil {
			return nil, err
		}
	}
	if err := idx.indexCategories(); err != nil {
		return nil, err
	}
	if err := idx.indexUpgrades(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *index) add(groupKind domain.ItemKind, position int, item domain.VirtualItem) error {
	if item.ItemID == "" {
		return fmt.Errorf(ErrFmtEmptyItemID, domain.ErrCatalogInvalid, groupKind, position)
	}
	if item.Kind != groupKind {
		return fmt.Errorf(ErrFmtGroupKindMismatch, domain.ErrCatalogInvalid, item.ItemID, item.Kind, groupKind)
	}
	if _, exists := idx.items[item.ItemID]; exists {
		return fmt.Errorf(ErrFmtDuplicateItemID, domain.ErrCatalogInvalid, item.ItemID)
	}
	if item.Kind != domain.KindVirtualCurrency && item.Purchase == nil {
		return fmt.Errorf(ErrFmtMissingPurchase, domain.ErrCatalogInvalid, item.ItemID)
	}
	if item.Purchase.IsMarket() {
		productID := item.Purchase.Market.ProductID
		if productID == "" {
			return fmt.Errorf(ErrFmtMissingReference, domain.ErrCatalogInvalid, item.ItemID, "productId", productID)
		}
		if owner, taken := idx.byProduct[productID]; taken {
			return fmt.Errorf(ErrFmtDuplicateProductID, domain.ErrCatalogInvalid, productID, owner, item.ItemID)
		}
		idx.byProduct[productID] = item.ItemID
	}

	idx.items[item.ItemID] = item
	idx.order = append(idx.order, item.ItemID)
	return nil
}

// checkReferences verifies every id an item points at, except upgrade links
func (idx *index) checkReferences(item domain.VirtualItem) error {
	if p := item.Purchase; p != nil && p.Kind == domain.PurchaseKindVirtualItem {
		target, ok := idx.items[p.TargetItemID]
		if !ok {
			return fmt.Errorf(ErrFmtMissingReference, domain.ErrCatalogInvalid, item.ItemID, "item", p.TargetItemID)
		}
		if target.ItemID == item.ItemID {
			return fmt.Errorf(ErrFmtSelfPayment, domain.ErrCatalogInvalid, item.ItemID)
		}
		if !target.HasBalance() {
			return fmt.Errorf(ErrFmtUnpayableTarget, domain.ErrCatalogInvalid, item.ItemID, target.ItemID)
		}
		if p.Amount <= 0 {
			return fmt.Errorf(ErrFmtNonPositiveAmount, domain.ErrCatalogInvalid, item.ItemID, "price", p.Amount)
		}
	}

	switch item.Kind {
	case domain.KindVirtualCurrencyPack:
		if err := idx.expectKind(item.ItemID, item.CurrencyItemID, domain.KindVirtualCurrency); err != nil {
			return err
		}
		if item.CurrencyAmount <= 0 {
			return fmt.Errorf(ErrFmtNonPositiveAmount, domain.ErrCatalogInvalid, item.ItemID, "currency amount", item.CurrencyAmount)
		}
	case domain.KindSingleUsePackVG:
		if err := idx.expectKind(item.ItemID, item.GoodItemID, domain.KindSingleUseVG); err != nil {
			return err
		}
		if item.GoodAmount <= 0 {
			return fmt.Errorf(ErrFmtNonPositiveAmount, domain.ErrCatalogInvalid, item.ItemID, "good amount", item.GoodAmount)
		}
	case domain.KindUpgradeVG:
		good, ok := idx.items[item.GoodItemID]
		if !ok || !good.IsGood() {
			return fmt.Errorf(ErrFmtMissingReference, domain.ErrCatalogInvalid, item.ItemID, "good", item.GoodItemID)
		}
		if good.Kind == domain.KindUpgradeVG {
			return fmt.Errorf(ErrFmtUpgradeOfUpgrade, domain.ErrCatalogInvalid, item.ItemID, good.ItemID)
		}
	}
	return nil
}

func (idx *index) expectKind(ownerID, refID string, kind domain.ItemKind) error {
	ref, ok := idx.items[refID]
	if !ok {
		return fmt.Errorf(ErrFmtMissingReference, domain.ErrCatalogInvalid, ownerID, "item", refID)
	}
	if ref.Kind != kind {
		return fmt.Errorf(ErrFmtWrongReferenceKind, domain.ErrCatalogInvalid, ownerID, refID, ref.Kind, kind)
	}
	return nil
}

func (idx *index) indexCategories() error {
	for i, c := range idx.assets.Categories {
		if c.Name == "" {
			return fmt.Errorf(ErrFmtEmptyCategoryName, domain.ErrCatalogInvalid, i)
		}
		if _, exists := idx.categories[c.Name]; exists {
			return fmt.Errorf(ErrFmtDuplicateCategory, domain.ErrCatalogInvalid, c.Name)
		}
		for _, goodID := range c.GoodItemIDs {
			good, ok := idx.items[goodID]
			if !ok || !good.IsGood() {
				return fmt.Errorf(ErrFmtCategoryNotGood, domain.ErrCatalogInvalid, c.Name, goodID)
			}
			if other, taken := idx.categoryOf[goodID]; taken && other != c.Name {
				return fmt.Errorf(ErrFmtGoodInTwoCategories, domain.ErrCatalogInvalid, goodID, other, c.Name)
			}
			idx.categoryOf[goodID] = c.Name
		}
		idx.categories[c.Name] = c
		idx.catOrder = append(idx.catOrder, c.Name)
	}
	return nil
}

// indexUpgrades orders each upgrade scale first to last and rejects broken chains
func (idx *index) indexUpgrades() error {
	scales := make(map[string][]domain.VirtualItem)
	var goodOrder []string
	for _, up := range idx.assets.Goods.Upgrades {
		if _, seen := scales[up.GoodItemID]; !seen {
			goodOrder = append(goodOrder, up.GoodItemID)
		}
		scales[up.GoodItemID] = append(scales[up.GoodItemID], up)
	}

	for _, goodID := range goodOrder {
		scale := scales[goodID]
		var first string
		firsts, lasts := 0, 0
		for _, up := range scale {
			if err := idx.checkLink(up, up.PrevItemID, true); err != nil {
				return err
			}
			if err := idx.checkLink(up, up.NextItemID, false); err != nil {
				return err
			}
			if up.PrevItemID == "" {
				firsts++
				first = up.ItemID
			}
			if up.NextItemID == "" {
				lasts++
			}
		}
		if firsts != 1 || lasts != 1 {
			return fmt.Errorf(ErrFmtUpgradeChainEnds, domain.ErrCatalogInvalid, goodID, firsts, lasts)
		}

		chain := make([]string, 0, len(scale))
		visited := make(map[string]bool, len(scale))
		for id := first; id != "" && !visited[id]; id = idx.items[id].NextItemID {
			visited[id] = true
			chain = append(chain, id)
		}
		if len(chain) != len(scale) {
			return fmt.Errorf(ErrFmtUpgradeChainDetached, domain.ErrCatalogInvalid, goodID, len(chain), len(scale))
		}
		idx.upgrades[goodID] = chain
	}
	return nil
}

// checkLink verifies that linkID is an upgrade of the same good pointing back at up
func (idx *index) checkLink(up domain.VirtualItem, linkID string, isPrev bool) error {
	if linkID == "" {
		return nil
	}
	linked, ok := idx.items[linkID]
	if !ok || linked.Kind != domain.KindUpgradeVG {
		return fmt.Errorf(ErrFmtMissingReference, domain.ErrCatalogInvalid, up.ItemID, "upgrade", linkID)
	}
	if linked.GoodItemID != up.GoodItemID {
		return fmt.Errorf(ErrFmtUpgradeWrongGood, domain.ErrCatalogInvalid, up.ItemID, linkID, linked.GoodItemID)
	}
	back := linked.NextItemID
	if !isPrev {
		back = linked.PrevItemID
	}
	if back != up.ItemID {
		return fmt.Errorf(ErrFmtUpgradeLinkMismatch, domain.ErrCatalogInvalid, up.ItemID, linkID, back)
	}
	return nil
}

// uncategorizedCategoryGoods lists Category-model goods that belong to no category
func (idx *index) uncategorizedCategoryGoods() []string {
	var ids []string
	for _, item := range idx.assets.Goods.Equippable {
		if item.Equipping == domain.EquippingCategory {
			if _, ok := idx.categoryOf[item.ItemID]; !ok {
				ids = append(ids, item.ItemID)
			}
		}
	}
	return ids
}

func (idx *index) listItems(items []domain.VirtualItem) []domain.VirtualItem {
	out := make([]domain.VirtualItem, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
