package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/database/memory"
	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/testing/storetest"
)

func newInitialized(t *testing.T) (Service, *memory.KeyValueStore) {
	t.Helper()
	store := memory.NewKeyValueStore()
	svc := NewService(store)
	replaced, err := svc.Initialize(context.Background(), storetest.Assets(1))
	require.NoError(t, err)
	require.True(t, replaced)
	return svc, store
}

func TestInitialize_FirstRunInstallsAssets(t *testing.T) {
	svc, store := newInitialized(t)

	assert.True(t, svc.Initialized())
	assert.Equal(t, 1, svc.Version())

	gem, err := svc.GetItem(storetest.Gem)
	require.NoError(t, err)
	assert.Equal(t, domain.KindSingleUseVG, gem.Kind)

	version, found, err := store.Get(context.Background(), Namespace, KeyVersion)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", version)
}

func TestInitialize_SameVersionKeepsPersisted(t *testing.T) {
	ctx := context.Background()
	_, store := newInitialized(t)

	defsB := storetest.Assets(1)
	defsB.Goods.SingleUse[0].Name = "Ruby"

	// A fresh service simulates the next process start
	svc := NewService(store)
	replaced, err := svc.Initialize(ctx, defsB)
	require.NoError(t, err)
	assert.False(t, replaced)

	gem, err := svc.GetItem(storetest.Gem)
	require.NoError(t, err)
	assert.Equal(t, "Gem", gem.Name)
}

func TestInitialize_LowerVersionKeepsPersisted(t *testing.T) {
	_, store := newInitialized(t)

	svc := NewService(store)
	replaced, err := svc.Initialize(context.Background(), storetest.Assets(0))
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Equal(t, 1, svc.Version())
}

func TestInitialize_HigherVersionReplaces(t *testing.T) {
	ctx := context.Background()
	svc, store := newInitialized(t)

	defsB := storetest.Assets(2)
	defsB.Goods.SingleUse[0].Name = "Ruby"

	replaced, err := svc.Initialize(ctx, defsB)
	require.NoError(t, err)
	assert.True(t, replaced)

	gem, err := svc.GetItem(storetest.Gem)
	require.NoError(t, err)
	assert.Equal(t, "Ruby", gem.Name)

	reloaded := NewService(store)
	_, err = reloaded.Initialize(ctx, storetest.Assets(1))
	require.NoError(t, err)
	gem, err = reloaded.GetItem(storetest.Gem)
	require.NoError(t, err)
	assert.Equal(t, "Ruby", gem.Name)
	assert.Equal(t, 2, reloaded.Version())
}

func TestInitialize_InvalidAssetsNotPersisted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()
	svc := NewService(store)

	bad := storetest.Assets(1)
	bad.Goods.Packs[0].GoodItemID = "missing"

	_, err := svc.Initialize(ctx, bad)
	require.ErrorIs(t, err, domain.ErrCatalogInvalid)
	assert.False(t, svc.Initialized())

	_, found, err := store.Get(ctx, Namespace, KeyVersion)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitialize_CorruptPersistedIsReplaced(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Set(ctx, Namespace, KeyVersion, "5"))
	require.NoError(t, tx.Set(ctx, Namespace, KeyAssets, "{not json"))
	require.NoError(t, tx.Commit(ctx))

	svc := NewService(store)
	replaced, err := svc.Initialize(ctx, storetest.Assets(1))
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, 1, svc.Version())
}

func TestInitialize_StoreReadError(t *testing.T) {
	store := &MockKeyValueStore{}
	store.On("Get", mock.Anything, Namespace, KeyVersion).Return("", false, errors.New("connection refused"))

	svc := NewService(store)
	_, err := svc.Initialize(context.Background(), storetest.Assets(1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, svc.Initialized())
	store.AssertExpectations(t)
}

func TestLookups_BeforeInitialize(t *testing.T) {
	svc := NewService(memory.NewKeyValueStore())

	_, err := svc.GetItem(storetest.Gem)
	assert.ErrorIs(t, err, domain.ErrCatalogNotInitialized)
	_, err = svc.GetUpgrades(storetest.Sword)
	assert.ErrorIs(t, err, domain.ErrCatalogNotInitialized)
	assert.Equal(t, -1, svc.Version())
	assert.Nil(t, svc.Items())
	assert.Nil(t, svc.Categories())
}

func TestGetItem_NotFound(t *testing.T) {
	svc, _ := newInitialized(t)

	_, err := svc.GetItem("nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetPurchasable(t *testing.T) {
	svc, _ := newInitialized(t)

	item, err := svc.GetPurchasable(storetest.ProductPremium)
	require.NoError(t, err)
	assert.Equal(t, storetest.Premium, item.ItemID)

	_, err = svc.GetPurchasable("com.example.unknown")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetCategoryOf(t *testing.T) {
	svc, _ := newInitialized(t)

	cat, err := svc.GetCategoryOf(storetest.HatBlue)
	require.NoError(t, err)
	assert.Equal(t, storetest.HatsCategory, cat.Name)
	assert.ElementsMatch(t, []string{storetest.HatRed, storetest.HatBlue}, cat.GoodItemIDs)

	_, err = svc.GetCategoryOf(storetest.Ring)
	assert.ErrorIs(t, err, domain.ErrItemNotFound, "uncategorized good")
	_, err = svc.GetCategoryOf("nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpgradeLookups(t *testing.T) {
	svc, _ := newInitialized(t)

	chain, err := svc.GetUpgrades(storetest.Sword)
	require.NoError(t, err)
	ids := make([]string, len(chain))
	for i, up := range chain {
		ids[i] = up.ItemID
	}
	assert.Equal(t, []string{storetest.SwordLvl1, storetest.SwordLvl2, storetest.SwordLvl3}, ids)

	first, err := svc.GetFirstUpgrade(storetest.Sword)
	require.NoError(t, err)
	assert.Equal(t, storetest.SwordLvl1, first.ItemID)

	last, err := svc.GetLastUpgrade(storetest.Sword)
	require.NoError(t, err)
	assert.Equal(t, storetest.SwordLvl3, last.ItemID)

	none, err := svc.GetUpgrades(storetest.Gem)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.GetFirstUpgrade(storetest.Gem)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	_, err = svc.GetLastUpgrade("nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestBulkListers(t *testing.T) {
	svc, _ := newInitialized(t)
	assets := storetest.Assets(1)

	assert.Len(t, svc.Currencies(), len(assets.Currencies))
	assert.Len(t, svc.CurrencyPacks(), len(assets.CurrencyPacks))
	assert.Len(t, svc.Goods(), len(assets.Goods.All()))
	assert.Len(t, svc.NonConsumables(), len(assets.NonConsumables))
	assert.Len(t, svc.Items(), assets.ItemCount())

	cats := svc.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, storetest.HatsCategory, cats[0].Name)
	assert.Equal(t, storetest.CapeCategory, cats[1].Name)
}

func TestLookupsReturnCopies(t *testing.T) {
	svc, _ := newInitialized(t)

	item, err := svc.GetItem(storetest.Premium)
	require.NoError(t, err)
	item.Purchase.Market.MarketTitle = "tampered"
	item.Name = "tampered"

	again, err := svc.GetItem(storetest.Premium)
	require.NoError(t, err)
	assert.Empty(t, again.Purchase.Market.MarketTitle)
	assert.Equal(t, "Premium", again.Name)

	cats := svc.Categories()
	cats[0].GoodItemIDs[0] = "tampered"
	cat, err := svc.GetCategoryOf(storetest.HatRed)
	require.NoError(t, err)
	assert.Equal(t, storetest.HatsCategory, cat.Name)
}

func TestApplyMarketDetails(t *testing.T) {
	ctx := context.Background()
	svc, store := newInitialized(t)

	applied, err := svc.ApplyMarketDetails(ctx, []domain.MarketItemDetails{
		{ProductID: storetest.ProductPremium, Price: "$4.99", Title: "Premium!", Description: "All the things"},
		{ProductID: "com.example.unknown", Price: "$1"},
		{ProductID: storetest.ProductNoAds, Price: "$1.00", Title: "old"},
		{ProductID: storetest.ProductNoAds, Price: "$2.99", Title: "No Ads"},
	})
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, storetest.ProductPremium, applied[0].ProductID)
	assert.Equal(t, "No Ads", applied[1].Title)

	premium, err := svc.GetItem(storetest.Premium)
	require.NoError(t, err)
	assert.Equal(t, "$4.99", premium.Purchase.Market.MarketPrice)
	assert.Equal(t, "Premium!", premium.Purchase.Market.MarketTitle)
	assert.Equal(t, "All the things", premium.Purchase.Market.MarketDescription)
	assert.Equal(t, 4.99, premium.Purchase.Market.Price, "nominal price is not a display field")
	assert.Equal(t, "Premium", premium.Name)

	reloaded := NewService(store)
	_, err = reloaded.Initialize(ctx, storetest.Assets(1))
	require.NoError(t, err)
	noAds, err := reloaded.GetItem(storetest.NoAds)
	require.NoError(t, err)
	assert.Equal(t, "$2.99", noAds.Purchase.Market.MarketPrice)
}

func TestApplyMarketDetails_NothingKnown(t *testing.T) {
	svc, _ := newInitialized(t)

	applied, err := svc.ApplyMarketDetails(context.Background(), []domain.MarketItemDetails{{ProductID: "x"}})
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestApplyMarketDetails_BeforeInitialize(t *testing.T) {
	svc := NewService(memory.NewKeyValueStore())

	_, err := svc.ApplyMarketDetails(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrCatalogNotInitialized)
}
