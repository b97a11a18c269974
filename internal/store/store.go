// Package store is the explicit context object of the economy. It owns the
// catalog, the inventory of one owner, the event bus and the market provider,
// and routes the provider's asynchronous answers back into the engine.
package store

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/osse101/VirtualStore_Go/internal/catalog"
	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/inventory"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/market"
	"github.com/osse101/VirtualStore_Go/internal/repository"
	"github.com/osse101/VirtualStore_Go/internal/worker"
)

// Deps are the collaborators of a Store
type Deps struct {
	Storage repository.KeyValueStore
	Bus     event.Bus
	OwnerID string
	// Provider may be nil; market operations then fail with ErrMarketUnavailable
	Provider market.Provider
	// Pool runs the provider's settlements and is stopped by Close
	Pool *worker.Pool
}

// Store wires the engine together. Its exported methods are the store-level
// operations; the On* methods implement market.Callbacks.
type Store struct {
	catalog   catalog.Service
	inventory inventory.Service
	bus       event.Bus
	provider  market.Provider
	pool      *worker.Pool

	iabRunning atomic.Bool
}

// New builds a store and registers it as the provider's callbacks
func New(deps Deps) *Store {
	s := &Store{
		catalog:  catalog.NewService(deps.Storage),
		bus:      deps.Bus,
		provider: deps.Provider,
		pool:     deps.Pool,
	}
	var purchaser inventory.MarketPurchaser
	if deps.Provider != nil {
		purchaser = deps.Provider
		deps.Provider.SetCallbacks(s)
	}
	s.inventory = inventory.NewService(s.catalog, deps.Storage, deps.OwnerID, deps.Bus, purchaser)
	return s
}

func (s *Store) Catalog() catalog.Service {
	return s.catalog
}

func (s *Store) Inventory() inventory.Service {
	return s.inventory
}

func (s *Store) Bus() event.Bus {
	return s.bus
}

// Initialize loads assets into the catalog under the versioned rule, then
// reports storeInitialized and whether billing is available.
func (s *Store) Initialize(ctx context.Context, assets domain.StoreAssets) (bool, error) {
	log := logger.FromContext(ctx)

	replaced, err := s.catalog.Initialize(ctx, assets)
	if err != nil {
		return false, err
	}
	if !replaced {
		log.Info(LogMsgCatalogKept, "version", s.catalog.Version())
	}

	s.publish(ctx, domain.EventTypeStoreInitialized, domain.SignalPayload{})
	if s.provider != nil && s.provider.BillingSupported(ctx) {
		s.publish(ctx, domain.EventTypeBillingSupported, domain.SignalPayload{})
	} else {
		s.publish(ctx, domain.EventTypeBillingNotSupported, domain.SignalPayload{})
	}

	log.Info(LogMsgStoreInitialized, "version", s.catalog.Version(), "replaced", replaced)
	return replaced, nil
}

// BuyMarketItem starts the purchase of a market product
func (s *Store) BuyMarketItem(ctx context.Context, productID, payload string) (*inventory.BuyResult, error) {
	item, err := s.catalog.GetPurchasable(productID)
	if err != nil {
		return nil, err
	}
	if !item.Purchase.IsMarket() {
		return nil, fmt.Errorf(ErrMsgNotMarketItem, domain.ErrWrongItemKind, productID)
	}
	return s.inventory.Buy(ctx, item.ItemID, payload)
}

// RefreshInventory restores transactions and refreshes market details
func (s *Store) RefreshInventory(ctx context.Context) error {
	if err := s.RestoreTransactions(ctx); err != nil {
		return err
	}
	return s.RefreshMarketItemsDetails(ctx)
}

// RefreshMarketItemsDetails asks the provider for the store listing of every
// market product. The answer arrives through OnItemsDetailsRefreshed.
func (s *Store) RefreshMarketItemsDetails(ctx context.Context) error {
	if s.provider == nil {
		return fmt.Errorf(ErrMsgNoProvider, domain.ErrMarketUnavailable)
	}
	var products []market.Product
	for _, item := range s.catalog.Items() {
		if item.Purchase == nil || !item.Purchase.IsMarket() {
			continue
		}
		products = append(products, market.Product{
			ProductID:   item.Purchase.Market.ProductID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Purchase.Market.Price,
		})
	}

	s.publish(ctx, domain.EventTypeMarketItemsRefreshStarted, domain.SignalPayload{})
	if err := s.provider.RefreshItemsDetails(ctx, products); err != nil {
		return fmt.Errorf(ErrMsgProviderRequest, err)
	}
	return nil
}

// RestoreTransactions asks the provider for the products it remembers. The
// answer arrives through OnRestoreFinished.
func (s *Store) RestoreTransactions(ctx context.Context) error {
	if s.provider == nil {
		return fmt.Errorf(ErrMsgNoProvider, domain.ErrMarketUnavailable)
	}
	s.publish(ctx, domain.EventTypeRestoreTransactionsStarted, domain.SignalPayload{})
	if err := s.provider.RestoreTransactions(ctx); err != nil {
		return fmt.Errorf(ErrMsgProviderRequest, err)
	}
	return nil
}

func (s *Store) TransactionsAlreadyRestored(ctx context.Context) (bool, error) {
	return s.inventory.TransactionsAlreadyRestored(ctx)
}

// StartIabServiceInBg marks the billing service as running
func (s *Store) StartIabServiceInBg(ctx context.Context) {
	s.iabRunning.Store(true)
	logger.FromContext(ctx).Info(LogMsgIabServiceStarted)
	s.publish(ctx, domain.EventTypeIabServiceStarted, domain.SignalPayload{})
}

// StopIabServiceInBg marks the billing service as stopped
func (s *Store) StopIabServiceInBg(ctx context.Context) {
	s.iabRunning.Store(false)
	logger.FromContext(ctx).Info(LogMsgIabServiceStopped)
	s.publish(ctx, domain.EventTypeIabServiceStopped, domain.SignalPayload{})
}

func (s *Store) IabServiceRunning() bool {
	return s.iabRunning.Load()
}

// Close stops the worker pool, waiting for in-flight settlements
func (s *Store) Close(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	if err := s.pool.Stop(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgStoreClosed)
	return nil
}

// publish delivers a store-level event. Listener failures are logged only.
func (s *Store) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.bus.Publish(ctx, event.New(eventType, payload)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", eventType, "error", err)
	}
}
