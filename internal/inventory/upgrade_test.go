package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/testing/storetest"
)

func (f *fixture) level(t *testing.T) (int, string) {
	t.Helper()
	level, err := f.svc.GetUpgradeLevel(f.ctx, storetest.Sword)
	require.NoError(t, err)
	current, err := f.svc.GetCurrentUpgrade(f.ctx, storetest.Sword)
	require.NoError(t, err)
	return level, current
}

func TestUpgrade_WalksTheScale(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.Gem, storetest.SwordLvl1PriceGems+storetest.SwordLvl2PriceGems)

	level, current := f.level(t)
	assert.Equal(t, 0, level)
	assert.Equal(t, "", current)

	res, err := f.svc.Upgrade(f.ctx, storetest.Sword)
	require.NoError(t, err)
	assert.Equal(t, &UpgradeResult{GoodItemID: storetest.Sword, UpgradeItemID: storetest.SwordLvl1}, res)

	res, err = f.svc.Upgrade(f.ctx, storetest.Sword)
	require.NoError(t, err)
	assert.Equal(t, storetest.SwordLvl2, res.UpgradeItemID)

	level, current = f.level(t)
	assert.Equal(t, 2, level)
	assert.Equal(t, storetest.SwordLvl2, current)
	assert.Equal(t, 0, f.balance(t, storetest.Gem))
	assert.Equal(t, 1, f.balance(t, storetest.SwordLvl1), "earlier steps count as owned")
	assert.Equal(t, 1, f.balance(t, storetest.SwordLvl2))
	assert.Equal(t, 0, f.balance(t, storetest.SwordLvl3))
}

func TestUpgrade_MarketStepIsSubmitted(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.SwordLvl2, 1)
	f.market.On("SubmitPurchase", mock.Anything, storetest.ProductSwordL3, "").Return(nil)

	res, err := f.svc.Upgrade(f.ctx, storetest.Sword)
	require.NoError(t, err)
	assert.Equal(t, &UpgradeResult{GoodItemID: storetest.Sword, UpgradeItemID: storetest.SwordLvl3, Pending: true}, res)

	require.NoError(t, f.svc.CompleteMarketPurchase(f.ctx, storetest.ProductSwordL3, "", "tok-sword"))
	_, current := f.level(t)
	assert.Equal(t, storetest.SwordLvl3, current)
	f.market.AssertExpectations(t)
}

func TestUpgrade_AtLastStepDoesNothing(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.SwordLvl3, 1)
	f.events.reset()

	res, err := f.svc.Upgrade(f.ctx, storetest.Sword)
	require.NoError(t, err)
	assert.Equal(t, &UpgradeResult{GoodItemID: storetest.Sword}, res)
	assert.Empty(t, f.events.types())
}

func TestUpgrade_InsufficientFunds(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.Gem, storetest.SwordLvl1PriceGems-1)

	_, err := f.svc.Upgrade(f.ctx, storetest.Sword)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	level, _ := f.level(t)
	assert.Equal(t, 0, level)
}

func TestBuyUpgrade_Sequencing(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.Gem, 100)

	_, err := f.svc.Buy(f.ctx, storetest.SwordLvl2, "")
	require.ErrorIs(t, err, domain.ErrUpgradeOutOfSequence)

	_, err = f.svc.Buy(f.ctx, storetest.SwordLvl1, "")
	require.NoError(t, err)
	_, err = f.svc.Buy(f.ctx, storetest.SwordLvl1, "")
	require.ErrorIs(t, err, domain.ErrAlreadyOwned)

	assert.Equal(t, 100-storetest.SwordLvl1PriceGems, f.balance(t, storetest.Gem))
}

func TestUpgrade_Errors(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Upgrade(f.ctx, storetest.HatRed)
	assert.ErrorIs(t, err, domain.ErrItemNotFound, "a good without a scale")
	_, err = f.svc.Upgrade(f.ctx, storetest.Coin)
	assert.ErrorIs(t, err, domain.ErrWrongItemKind)
	_, err = f.svc.Upgrade(f.ctx, storetest.SwordLvl1)
	assert.ErrorIs(t, err, domain.ErrWrongItemKind)
	_, err = f.svc.GetUpgradeLevel(f.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRemoveUpgrades(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.SwordLvl2, 1)
	f.events.reset()

	require.NoError(t, f.svc.RemoveUpgrades(f.ctx, storetest.Sword))
	require.NoError(t, f.svc.RemoveUpgrades(f.ctx, storetest.Sword))

	level, current := f.level(t)
	assert.Equal(t, 0, level)
	assert.Equal(t, "", current)
	assert.Equal(t, []interface{}{
		domain.GoodUpgradePayload{GoodItemID: storetest.Sword},
		domain.GoodUpgradePayload{GoodItemID: storetest.Sword},
	}, f.events.payloads())
}

func TestTakeUpgrade_RevertsToPrevious(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.SwordLvl2, 1)

	require.NoError(t, f.svc.Take(f.ctx, storetest.SwordLvl1, 1))
	_, current := f.level(t)
	assert.Equal(t, storetest.SwordLvl2, current, "only the current upgrade can be taken")

	require.NoError(t, f.svc.Take(f.ctx, storetest.SwordLvl2, 1))
	_, current = f.level(t)
	assert.Equal(t, storetest.SwordLvl1, current)

	require.NoError(t, f.svc.Take(f.ctx, storetest.SwordLvl1, 1))
	_, current = f.level(t)
	assert.Equal(t, "", current)
}
