// Package storetest provides a small but complete store economy for tests.
package storetest

import "github.com/osse101/VirtualStore_Go/internal/domain"

// Item ids of the sample economy
const (
	Coin         = "coin"
	CoinPack     = "coin_pack_100"
	Gem          = "gem"
	Potion       = "potion"
	GemPack      = "gem_pack_5"
	NoAds        = "no_ads"
	Sword        = "sword"
	SwordLvl1    = "sword_lvl1"
	SwordLvl2    = "sword_lvl2"
	SwordLvl3    = "sword_lvl3"
	HatRed       = "hat_red"
	HatBlue      = "hat_blue"
	Cape         = "cape"
	CapeGold     = "cape_gold"
	Ring         = "ring"
	Premium      = "premium"
	HatsCategory = "Hats"
	CapeCategory = "Capes"
)

// Market product ids of the sample economy
const (
	ProductCoinPack = "com.example.coins100"
	ProductPotion   = "com.example.potion"
	ProductNoAds    = "com.example.noads"
	ProductPremium  = "com.example.premium"
	ProductSwordL3  = "com.example.sword3"
)

// Prices of the sample economy
const (
	GemPriceInCoins     = 5
	GemPackPriceInCoins = 20
	GemPackAmount       = 5
	CoinPackAmount      = 100
	SwordPriceInCoins   = 50
	HatPriceInCoins     = 10
	CapePriceInCoins    = 15
	RingPriceInCoins    = 8
	SwordLvl1PriceGems  = 10
	SwordLvl2PriceGems  = 20
)

// Assets returns a fresh copy of the sample economy at version
func Assets(version int) domain.StoreAssets {
	coins := func(n int) *domain.PurchaseType { return domain.PurchaseWithVirtualItem(Coin, n) }
	gems := func(n int) *domain.PurchaseType { return domain.PurchaseWithVirtualItem(Gem, n) }
	market := func(productID string, kind domain.ConsumableKind, price float64) *domain.PurchaseType {
		return domain.PurchaseWithMarket(domain.MarketItem{ProductID: productID, Consumable: kind, Price: price})
	}

	return domain.StoreAssets{
		Version: version,
		Currencies: []domain.VirtualItem{
			domain.NewVirtualCurrency(Coin, "Coins", "Soft currency"),
		},
		CurrencyPacks: []domain.VirtualItem{
			domain.NewVirtualCurrencyPack(CoinPack, "100 Coins", "A bag of coins", CoinPackAmount, Coin,
				market(ProductCoinPack, domain.ConsumableConsumable, 0.99)),
		},
		Goods: domain.StoreGoods{
			SingleUse: []domain.VirtualItem{
				domain.NewSingleUseVG(Gem, "Gem", "Shiny", coins(GemPriceInCoins)),
				domain.NewSingleUseVG(Potion, "Potion", "Restores health", market(ProductPotion, domain.ConsumableConsumable, 1.99)),
			},
			Lifetime: []domain.VirtualItem{
				domain.NewLifetimeVG(NoAds, "No Ads", "Removes ads", market(ProductNoAds, domain.ConsumableNonConsumable, 2.99)),
				domain.NewLifetimeVG(Sword, "Sword", "A plain sword", coins(SwordPriceInCoins)),
			},
			Equippable: []domain.VirtualItem{
				domain.NewEquippableVG(HatRed, "Red Hat", "", domain.EquippingCategory, coins(HatPriceInCoins)),
				domain.NewEquippableVG(HatBlue, "Blue Hat", "", domain.EquippingCategory, coins(HatPriceInCoins)),
				domain.NewEquippableVG(Cape, "Cape", "", domain.EquippingGlobal, coins(CapePriceInCoins)),
				domain.NewEquippableVG(CapeGold, "Golden Cape", "", domain.EquippingGlobal, coins(CapePriceInCoins)),
				domain.NewEquippableVG(Ring, "Ring", "", domain.EquippingLocal, coins(RingPriceInCoins)),
			},
			Upgrades: []domain.VirtualItem{
				domain.NewUpgradeVG(SwordLvl1, "Sword I", "", Sword, "", SwordLvl2, gems(SwordLvl1PriceGems)),
				domain.NewUpgradeVG(SwordLvl2, "Sword II", "", Sword, SwordLvl1, SwordLvl3, gems(SwordLvl2PriceGems)),
				domain.NewUpgradeVG(SwordLvl3, "Sword III", "", Sword, SwordLvl2, "",
					market(ProductSwordL3, domain.ConsumableNonConsumable, 4.99)),
			},
			Packs: []domain.VirtualItem{
				domain.NewSingleUsePackVG(GemPack, "5 Gems", "", Gem, GemPackAmount, coins(GemPackPriceInCoins)),
			},
		},
		NonConsumables: []domain.VirtualItem{
			domain.NewNonConsumableItem(Premium, "Premium", "Premium membership",
				market(ProductPremium, domain.ConsumableNonConsumable, 4.99)),
		},
		Categories: []domain.VirtualCategory{
			{Name: HatsCategory, GoodItemIDs: []string{HatRed, HatBlue}},
			{Name: CapeCategory, GoodItemIDs: []string{Cape, CapeGold}},
		},
	}
}
