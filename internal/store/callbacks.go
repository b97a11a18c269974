package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/market"
)

var _ market.Callbacks = (*Store)(nil)

// MarketCallback is a provider notification delivered from outside the
// process, such as a billing webhook
type MarketCallback struct {
	ProductID string
	Payload   string
	Token     string
	Outcome   market.Outcome
	Message   string
}

// HandleMarketCallback applies a provider notification as if the provider
// had called back directly. A notification without a token is handed to the
// provider to settle when it can; otherwise a completion gets a fresh token.
func (s *Store) HandleMarketCallback(ctx context.Context, cb MarketCallback) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgMarketCallbackReceived, "product_id", cb.ProductID, "outcome", cb.Outcome)

	if _, err := s.catalog.GetPurchasable(cb.ProductID); err != nil {
		return err
	}
	if settler, ok := s.provider.(market.Settler); ok && cb.Token == "" {
		return settler.Settle(ctx, cb.ProductID, cb.Payload, cb.Outcome)
	}
	switch cb.Outcome {
	case market.OutcomeComplete:
		token := cb.Token
		if token == "" {
			token = uuid.NewString()
		}
		return s.inventory.CompleteMarketPurchase(ctx, cb.ProductID, cb.Payload, token)
	case market.OutcomeCancel:
		return s.inventory.CancelMarketPurchase(ctx, cb.ProductID)
	case market.OutcomeRefund:
		return s.inventory.RefundMarketPurchase(ctx, cb.ProductID)
	default:
		s.OnPurchaseFailed(ctx, cb.ProductID, cb.Message)
		return nil
	}
}

func (s *Store) OnPurchaseCompleted(ctx context.Context, productID, payload, token string) {
	if err := s.inventory.CompleteMarketPurchase(ctx, productID, payload, token); err != nil {
		s.callbackFailed(ctx, productID, err)
	}
}

func (s *Store) OnPurchaseCancelled(ctx context.Context, productID string) {
	if err := s.inventory.CancelMarketPurchase(ctx, productID); err != nil {
		s.callbackFailed(ctx, productID, err)
	}
}

func (s *Store) OnPurchaseFailed(ctx context.Context, productID, message string) {
	logger.FromContext(ctx).Warn(LogMsgPurchaseFailed, "product_id", productID, "message", message)
	s.publish(ctx, domain.EventTypeUnexpectedErrorInStore, domain.UnexpectedErrorPayload{Message: message})
}

func (s *Store) OnRefund(ctx context.Context, productID string) {
	if err := s.inventory.RefundMarketPurchase(ctx, productID); err != nil {
		s.callbackFailed(ctx, productID, err)
	}
}

func (s *Store) OnRestoreFinished(ctx context.Context, productIDs []string, err error) {
	if err == nil {
		err = s.inventory.RestorePurchases(ctx, productIDs)
	}
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgRestoreFailed, "error", err)
		s.publish(ctx, domain.EventTypeUnexpectedErrorInStore, domain.UnexpectedErrorPayload{Message: err.Error()})
	}
	s.publish(ctx, domain.EventTypeRestoreTransactionsFinished, domain.RestoreTransactionsFinishedPayload{Success: err == nil})
}

func (s *Store) OnItemsDetailsRefreshed(ctx context.Context, details []domain.MarketItemDetails, err error) {
	var applied []domain.MarketItemDetails
	if err == nil {
		applied, err = s.catalog.ApplyMarketDetails(ctx, details)
	}
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgRefreshFailed, "error", err)
		s.publish(ctx, domain.EventTypeUnexpectedErrorInStore, domain.UnexpectedErrorPayload{Message: err.Error()})
		return
	}
	s.publish(ctx, domain.EventTypeMarketItemsRefreshFinished, domain.MarketItemsRefreshFinishedPayload{Items: applied})
}

// callbackFailed reports a provider answer the engine could not apply
func (s *Store) callbackFailed(ctx context.Context, productID string, err error) {
	logger.FromContext(ctx).Error(LogMsgCallbackFailed, "product_id", productID, "error", err)
	s.publish(ctx, domain.EventTypeUnexpectedErrorInStore, domain.UnexpectedErrorPayload{Message: err.Error()})
}
