package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/VirtualStore_Go/internal/catalog"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/repository"
)

// BuyResult reports how a purchase was routed
type BuyResult struct {
	ItemID string `json:"item_id"`
	// Pending is true for market purchases, which complete asynchronously
	Pending bool `json:"pending"`
}

// UpgradeResult reports what an upgrade step did
type UpgradeResult struct {
	GoodItemID string `json:"good_item_id"`
	// UpgradeItemID is the step bought, "" when the good is already at its last step
	UpgradeItemID string `json:"upgrade_item_id,omitempty"`
	Pending       bool   `json:"pending"`
}

// Service defines the interface for ledger operations.
// Every mutation is all-or-nothing and emits its events only after it commits.
type Service interface {
	Buy(ctx context.Context, itemID, payload string) (*BuyResult, error)
	Give(ctx context.Context, itemID string, amount int) error
	Take(ctx context.Context, itemID string, amount int) error
	GetBalance(ctx context.Context, itemID string) (int, error)

	Equip(ctx context.Context, goodID string) error
	Unequip(ctx context.Context, goodID string) error
	IsEquipped(ctx context.Context, goodID string) (bool, error)

	Upgrade(ctx context.Context, goodID string) (*UpgradeResult, error)
	GetUpgradeLevel(ctx context.Context, goodID string) (int, error)
	GetCurrentUpgrade(ctx context.Context, goodID string) (string, error)
	RemoveUpgrades(ctx context.Context, goodID string) error

	NonConsumableExists(ctx context.Context, itemID string) (bool, error)
	AddNonConsumable(ctx context.Context, itemID string) error
	RemoveNonConsumable(ctx context.Context, itemID string) error

	CompleteMarketPurchase(ctx context.Context, productID, payload, token string) error
	CancelMarketPurchase(ctx context.Context, productID string) error
	RefundMarketPurchase(ctx context.Context, productID string) error
	RestorePurchases(ctx context.Context, productIDs []string) error
	TransactionsAlreadyRestored(ctx context.Context) (bool, error)
}

// MarketPurchaser submits real-money purchases; the outcome arrives later
// through CompleteMarketPurchase, CancelMarketPurchase or RefundMarketPurchase.
type MarketPurchaser interface {
	SubmitPurchase(ctx context.Context, productID, payload string) error
}

type service struct {
	catalog   catalog.Service
	store     repository.KeyValueStore
	ownerID   string
	publisher event.Publisher
	market    MarketPurchaser
	tokens    *expirable.LRU[string, struct{}]

	// mu is the single-writer lock around every ledger mutation
	mu sync.Mutex
}

// NewService creates an inventory over the ledger of ownerID.
// market may be nil, in which case market purchases fail with ErrMarketUnavailable.
func NewService(cat catalog.Service, store repository.KeyValueStore, ownerID string, publisher event.Publisher, market MarketPurchaser) Service {
	return &service{
		catalog:   cat,
		store:     store,
		ownerID:   ownerID,
		publisher: publisher,
		market:    market,
		tokens:    expirable.NewLRU[string, struct{}](TokenCacheSize, nil, TokenCacheTTL),
	}
}

// mutate runs fn against a ledger transaction while holding the writer lock.
// On success the events fn recorded are queued in commit order and delivered
// after the lock is released, so handlers may call back into the service.
func (s *service) mutate(ctx context.Context, fn func(l *ledger) error) error {
	if err := s.mutateLocked(ctx, fn); err != nil {
		return err
	}
	s.flush(ctx)
	return nil
}

func (s *service) mutateLocked(ctx context.Context, fn func(l *ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	l := &ledger{ctx: ctx, kv: tx, tx: tx, ns: s.ownerID, catalog: s.catalog}
	if err := fn(l); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitFailed, err)
	}

	for _, evt := range l.events {
		s.publisher.Enqueue(ctx, evt)
	}
	return nil
}

// emit queues events that carry no ledger change
func (s *service) emit(ctx context.Context, events ...event.Event) {
	s.mu.Lock()
	for _, evt := range events {
		s.publisher.Enqueue(ctx, evt)
	}
	s.mu.Unlock()
	s.flush(ctx)
}

// flush delivers queued events. Listener failures never fail the operation
// that caused the event.
func (s *service) flush(ctx context.Context) {
	if err := s.publisher.Flush(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventDeliveryFailed, "error", err)
	}
}

// reader returns a read-only ledger over committed state
func (s *service) reader(ctx context.Context) *ledger {
	return &ledger{ctx: ctx, kv: s.store, ns: s.ownerID, catalog: s.catalog}
}
