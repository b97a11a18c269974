package market

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/worker"
)

// SandboxConfig controls how the sandbox answers
type SandboxConfig struct {
	Delay            time.Duration
	Outcome          Outcome
	BillingSupported bool
}

// Sandbox is an in-process Provider for development and tests. Purchases
// settle after Delay with the configured Outcome; completed products are
// remembered and reported by RestoreTransactions.
type Sandbox struct {
	pool *worker.Pool
	cfg  SandboxConfig

	mu        sync.RWMutex
	callbacks Callbacks
	owned     map[string]bool
}

// NewSandbox creates a sandbox provider running its settlements on pool
func NewSandbox(pool *worker.Pool, cfg SandboxConfig) *Sandbox {
	if cfg.Outcome == "" {
		cfg.Outcome = OutcomeComplete
	}
	return &Sandbox{
		pool:  pool,
		cfg:   cfg,
		owned: make(map[string]bool),
	}
}

func (s *Sandbox) SetCallbacks(cb Callbacks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = cb
}

func (s *Sandbox) BillingSupported(ctx context.Context) bool {
	return s.cfg.BillingSupported
}

func (s *Sandbox) SubmitPurchase(ctx context.Context, productID, payload string) error {
	log := logger.FromContext(ctx)
	if !s.cfg.BillingSupported {
		return fmt.Errorf(ErrMsgBillingDisabled, domain.ErrMarketUnavailable)
	}

	err := s.submit(func(jobCtx context.Context, cb Callbacks) {
		s.settle(jobCtx, cb, productID, payload, s.cfg.Outcome)
	})
	if err != nil {
		return err
	}
	log.Info(LogMsgPurchaseSubmitted, "product_id", productID, "outcome", s.cfg.Outcome)
	return nil
}

// Settle reports outcome for productID as if the market had decided it,
// without delay. It backs the provider webhook.
func (s *Sandbox) Settle(ctx context.Context, productID, payload string, outcome Outcome) error {
	cb, err := s.currentCallbacks()
	if err != nil {
		return err
	}
	s.settle(ctx, cb, productID, payload, outcome)
	return nil
}

func (s *Sandbox) settle(ctx context.Context, cb Callbacks, productID, payload string, outcome Outcome) {
	logger.FromContext(ctx).Info(LogMsgPurchaseSettled, "product_id", productID, "outcome", outcome)
	switch outcome {
	case OutcomeComplete:
		s.mu.Lock()
		s.owned[productID] = true
		s.mu.Unlock()
		cb.OnPurchaseCompleted(ctx, productID, payload, uuid.NewString())
	case OutcomeCancel:
		cb.OnPurchaseCancelled(ctx, productID)
	case OutcomeRefund:
		s.mu.Lock()
		delete(s.owned, productID)
		s.mu.Unlock()
		cb.OnRefund(ctx, productID)
	default:
		cb.OnPurchaseFailed(ctx, productID, fmt.Sprintf(FailureMessage, productID))
	}
}

func (s *Sandbox) RestoreTransactions(ctx context.Context) error {
	err := s.submit(func(jobCtx context.Context, cb Callbacks) {
		s.mu.RLock()
		ids := make([]string, 0, len(s.owned))
		for id := range s.owned {
			ids = append(ids, id)
		}
		s.mu.RUnlock()
		sort.Strings(ids)
		cb.OnRestoreFinished(jobCtx, ids, nil)
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgRestoreSubmitted)
	return nil
}

func (s *Sandbox) RefreshItemsDetails(ctx context.Context, products []Product) error {
	snapshot := make([]Product, len(products))
	copy(snapshot, products)

	err := s.submit(func(jobCtx context.Context, cb Callbacks) {
		details := make([]domain.MarketItemDetails, 0, len(snapshot))
		for _, p := range snapshot {
			details = append(details, s.describe(p))
		}
		cb.OnItemsDetailsRefreshed(jobCtx, details, nil)
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgRefreshSubmitted, "count", len(products))
	return nil
}

// describe renders the store listing of a product. Casers are stateful, so
// each call gets its own.
func (s *Sandbox) describe(p Product) domain.MarketItemDetails {
	return domain.MarketItemDetails{
		ProductID:   p.ProductID,
		Price:       fmt.Sprintf(PriceFormat, p.Price),
		Title:       cases.Title(language.English).String(p.Name),
		Description: p.Description,
	}
}

func (s *Sandbox) currentCallbacks() (Callbacks, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.callbacks == nil {
		return nil, fmt.Errorf(ErrMsgNoCallbacks, domain.ErrMarketUnavailable)
	}
	return s.callbacks, nil
}

// submit runs fn on the pool after the configured delay
func (s *Sandbox) submit(fn func(ctx context.Context, cb Callbacks)) error {
	cb, err := s.currentCallbacks()
	if err != nil {
		return err
	}
	delay := s.cfg.Delay
	job := worker.JobFunc(func(ctx context.Context) error {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				logger.FromContext(ctx).Warn(LogMsgSettlementAbandoned)
				return ctx.Err()
			}
		}
		fn(ctx, cb)
		return nil
	})
	if err := s.pool.Submit(job); err != nil {
		return fmt.Errorf(ErrMsgSubmitFailed, domain.ErrMarketUnavailable, err)
	}
	return nil
}
