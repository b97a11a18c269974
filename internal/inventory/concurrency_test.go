package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/testing/storetest"
)

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.Coin, 1000)

	const workers = 20
	const perWorker = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := f.svc.Buy(f.ctx, storetest.Gem, "")
				assert.NoError(t, err)
				assert.NoError(t, f.svc.Give(f.ctx, storetest.Potion, 1))
			}
		}()
	}
	wg.Wait()

	total := workers * perWorker
	assert.Equal(t, 1000-total*storetest.GemPriceInCoins, f.balance(t, storetest.Coin))
	assert.Equal(t, total, f.balance(t, storetest.Gem))
	assert.Equal(t, total, f.balance(t, storetest.Potion))
}

func TestConcurrentPurchasesNeverOverspend(t *testing.T) {
	f := setup(t)
	f.give(t, storetest.Coin, 7*storetest.GemPriceInCoins)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.svc.Buy(f.ctx, storetest.Gem, "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, f.balance(t, storetest.Coin))
	assert.Equal(t, 7, f.balance(t, storetest.Gem))
}

func TestHandlerMayCallBackIntoService(t *testing.T) {
	f := setup(t)

	// Every purchased gem earns a bonus potion
	f.bus.Subscribe(event.Type(domain.EventTypeItemPurchased), func(ctx context.Context, evt event.Event) error {
		p, ok := evt.Payload.(domain.ItemPurchasedPayload)
		if !ok || p.ItemID != storetest.Gem {
			return nil
		}
		return f.svc.Give(ctx, storetest.Potion, 1)
	})

	f.give(t, storetest.Coin, storetest.GemPriceInCoins)
	f.events.reset()
	_, err := f.svc.Buy(f.ctx, storetest.Gem, "")
	require.NoError(t, err)

	assert.Equal(t, 1, f.balance(t, storetest.Potion))
	assert.Equal(t, []string{
		domain.EventTypeItemPurchaseStarted,
		domain.EventTypeCurrencyBalanceChanged,
		domain.EventTypeGoodBalanceChanged,
		domain.EventTypeItemPurchased,
		domain.EventTypeGoodBalanceChanged,
	}, f.events.types(), "the handler's change is delivered after the purchase events")
}
