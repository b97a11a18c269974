package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/catalog"
	"github.com/osse101/VirtualStore_Go/internal/database/memory"
	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/testing/storetest"
)

const testOwner = "player-1"

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(ctx context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, evt := range r.events {
		out[i] = string(evt.Type)
	}
	return out
}

func (r *recorder) payloads() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]interface{}, len(r.events))
	for i, evt := range r.events {
		out[i] = evt.Payload
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	ctx     context.Context
	svc     Service
	catalog catalog.Service
	store   *memory.KeyValueStore
	bus     *event.MemoryBus
	market  *MockMarket
	events  *recorder
}

func setup(t *testing.T) *fixture {
	t.Helper()
	return setupWithAssets(t, storetest.Assets(1))
}

func setupWithAssets(t *testing.T, assets domain.StoreAssets) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewKeyValueStore()

	cat := catalog.NewService(store)
	_, err := cat.Initialize(ctx, assets)
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	rec := &recorder{}
	bus.SubscribeAll(rec.handle)

	market := &MockMarket{}
	return &fixture{
		ctx:     ctx,
		svc:     NewService(cat, store, testOwner, bus, market),
		catalog: cat,
		store:   store,
		bus:     bus,
		market:  market,
		events:  rec,
	}
}

func (f *fixture) give(t *testing.T, itemID string, amount int) {
	t.Helper()
	require.NoError(t, f.svc.Give(f.ctx, itemID, amount))
}

func (f *fixture) balance(t *testing.T, itemID string) int {
	t.Helper()
	n, err := f.svc.GetBalance(f.ctx, itemID)
	require.NoError(t, err)
	return n
}
