package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/testing/storetest"
)

func TestBuildIndex_SampleEconomy(t *testing.T) {
	idx, err := buildIndex(storetest.Assets(1))
	require.NoError(t, err)

	assets := storetest.Assets(1)
	assert.Len(t, idx.order, assets.ItemCount())
	assert.Equal(t, storetest.Premium, idx.byProduct[storetest.ProductPremium])
	assert.Equal(t, storetest.CapeCategory, idx.categoryOf[storetest.CapeGold])
	assert.Equal(t, []string{storetest.SwordLvl1, storetest.SwordLvl2, storetest.SwordLvl3}, idx.upgrades[storetest.Sword])
	assert.Empty(t, idx.uncategorizedCategoryGoods())
}

func TestBuildIndex_UpgradesDeclaredOutOfOrder(t *testing.T) {
	assets := storetest.Assets(1)
	ups := assets.Goods.Upgrades
	assets.Goods.Upgrades = []domain.VirtualItem{ups[2], ups[0], ups[1]}

	idx, err := buildIndex(assets)
	require.NoError(t, err)
	assert.Equal(t, []string{storetest.SwordLvl1, storetest.SwordLvl2, storetest.SwordLvl3}, idx.upgrades[storetest.Sword])
}

func TestBuildIndex_UncategorizedCategoryGood(t *testing.T) {
	assets := storetest.Assets(1)
	assets.Categories = assets.Categories[1:]

	idx, err := buildIndex(assets)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{storetest.HatRed, storetest.HatBlue}, idx.uncategorizedCategoryGoods())
}

func TestBuildIndex_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(a *domain.StoreAssets)
		contains string
	}{
		{
			name:     "empty item id",
			mutate:   func(a *domain.StoreAssets) { a.Goods.SingleUse[1].ItemID = "" },
			contains: "empty itemId",
		},
		{
			name: "duplicate item id across groups",
			mutate: func(a *domain.StoreAssets) {
				a.NonConsumables[0].ItemID = storetest.Gem
			},
			contains: "duplicate itemId",
		},
		{
			name:     "item in the wrong group",
			mutate:   func(a *domain.StoreAssets) { a.Goods.Lifetime[1].Kind = domain.KindSingleUseVG },
			contains: "listed as",
		},
		{
			name:     "purchasable without purchase type",
			mutate:   func(a *domain.StoreAssets) { a.Goods.Lifetime[1].Purchase = nil },
			contains: "no purchase type",
		},
		{
			name: "duplicate product id",
			mutate: func(a *domain.StoreAssets) {
				a.NonConsumables[0].Purchase.Market.ProductID = storetest.ProductNoAds
			},
			contains: "duplicate productId",
		},
		{
			name:     "payment with unknown item",
			mutate:   func(a *domain.StoreAssets) { a.Goods.SingleUse[0].Purchase.TargetItemID = "gold" },
			contains: "unknown item",
		},
		{
			name:     "payment with itself",
			mutate:   func(a *domain.StoreAssets) { a.Goods.SingleUse[0].Purchase.TargetItemID = storetest.Gem },
			contains: "paid with itself",
		},
		{
			name:     "payment with a pack",
			mutate:   func(a *domain.StoreAssets) { a.Goods.SingleUse[0].Purchase.TargetItemID = storetest.GemPack },
			contains: "no balance",
		},
		{
			name:     "zero price",
			mutate:   func(a *domain.StoreAssets) { a.Goods.SingleUse[0].Purchase.Amount = 0 },
			contains: "non-positive price",
		},
		{
			name:     "currency pack of a good",
			mutate:   func(a *domain.StoreAssets) { a.CurrencyPacks[0].CurrencyItemID = storetest.Gem },
			contains: "expected VirtualCurrency",
		},
		{
			name:     "currency pack without amount",
			mutate:   func(a *domain.StoreAssets) { a.CurrencyPacks[0].CurrencyAmount = 0 },
			contains: "currency amount",
		},
		{
			name:     "good pack of a lifetime good",
			mutate:   func(a *domain.StoreAssets) { a.Goods.Packs[0].GoodItemID = storetest.Sword },
			contains: "expected SingleUseVG",
		},
		{
			name:     "empty category name",
			mutate:   func(a *domain.StoreAssets) { a.Categories[0].Name = "" },
			contains: "empty name",
		},
		{
			name:     "duplicate category",
			mutate:   func(a *domain.StoreAssets) { a.Categories[1].Name = storetest.HatsCategory },
			contains: "duplicate category",
		},
		{
			name: "good in two categories",
			mutate: func(a *domain.StoreAssets) {
				a.Categories[1].GoodItemIDs = append(a.Categories[1].GoodItemIDs, storetest.HatRed)
			},
			contains: "is in categories",
		},
		{
			name: "category lists a currency",
			mutate: func(a *domain.StoreAssets) {
				a.Categories[0].GoodItemIDs = append(a.Categories[0].GoodItemIDs, storetest.Coin)
			},
			contains: "not a good",
		},
		{
			name:     "upgrade of unknown good",
			mutate:   func(a *domain.StoreAssets) { a.Goods.Upgrades[0].GoodItemID = "axe" },
			contains: "unknown good",
		},
		{
			name:     "upgrade link to unknown item",
			mutate:   func(a *domain.StoreAssets) { a.Goods.Upgrades[2].NextItemID = "sword_lvl4" },
			contains: "unknown upgrade",
		},
		{
			name:     "inconsistent back link",
			mutate:   func(a *domain.StoreAssets) { a.Goods.Upgrades[1].PrevItemID = "" },
			contains: "back link",
		},
		{
			name: "two first steps",
			mutate: func(a *domain.StoreAssets) {
				extra := domain.NewUpgradeVG("sword_alt", "Alt", "", storetest.Sword, "", "",
					domain.PurchaseWithVirtualItem(storetest.Gem, 1))
				a.Goods.Upgrades = append(a.Goods.Upgrades, extra)
			},
			contains: "2 first and 2 last",
		},
		{
			name: "upgrade linking across goods",
			mutate: func(a *domain.StoreAssets) {
				shield := domain.NewUpgradeVG("shield_lvl1", "Shield I", "", storetest.NoAds, "", storetest.SwordLvl2,
					domain.PurchaseWithVirtualItem(storetest.Gem, 1))
				a.Goods.Upgrades = append(a.Goods.Upgrades, shield)
			},
			contains: "which upgrades",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets := storetest.Assets(1)
			tt.mutate(&assets)

			_, err := buildIndex(assets)
			require.ErrorIs(t, err, domain.ErrCatalogInvalid)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
