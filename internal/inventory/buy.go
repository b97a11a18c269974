package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/logger"
)

// Buy purchases itemID. Virtual-item purchases settle synchronously; market
// purchases are submitted to the market and complete through its callbacks.
func (s *service) Buy(ctx context.Context, itemID, payload string) (*BuyResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyCalled, "item_id", itemID)

	item, err := s.catalog.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsPurchasable() {
		return nil, fmt.Errorf(ErrMsgNotPurchasable, domain.ErrWrongItemKind, itemID)
	}

	if item.Purchase.IsMarket() {
		if err := s.submitMarketPurchase(ctx, item, payload); err != nil {
			return nil, err
		}
		return &BuyResult{ItemID: itemID, Pending: true}, nil
	}

	err = s.mutate(ctx, func(l *ledger) error {
		if err := l.checkCanBuy(item); err != nil {
			return err
		}
		l.record(domain.EventTypeItemPurchaseStarted, domain.ItemPayload{ItemID: item.ItemID})
		if err := l.pay(item); err != nil {
			return err
		}
		if err := l.give(item, 1); err != nil {
			return err
		}
		l.record(domain.EventTypeItemPurchased, domain.ItemPurchasedPayload{ItemID: item.ItemID, Payload: payload})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgVirtualPurchaseApplied, "item_id", itemID)
	return &BuyResult{ItemID: itemID}, nil
}

// submitMarketPurchase checks ownership rules against committed state and hands
// the purchase to the market. No ledger row changes until the market confirms.
func (s *service) submitMarketPurchase(ctx context.Context, item domain.VirtualItem, payload string) error {
	log := logger.FromContext(ctx)

	if s.market == nil {
		return fmt.Errorf(ErrMsgMarketUnavailableFn, domain.ErrMarketUnavailable)
	}
	if err := s.reader(ctx).checkCanBuy(item); err != nil {
		return err
	}

	productID := item.Purchase.Market.ProductID
	if err := s.market.SubmitPurchase(ctx, productID, payload); err != nil {
		return fmt.Errorf(ErrMsgSubmitFailed, err)
	}

	log.Info(LogMsgMarketPurchaseStarted, "item_id", item.ItemID, "product_id", productID)
	s.emit(ctx, event.New(domain.EventTypeMarketPurchaseStarted, domain.ItemPayload{ItemID: item.ItemID}))
	return nil
}

// Upgrade buys the next step of goodID's upgrade scale. At the last step it
// does nothing and emits nothing.
func (s *service) Upgrade(ctx context.Context, goodID string) (*UpgradeResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUpgradeCalled, "good_id", goodID)

	chain, pos, err := s.upgradeState(ctx, goodID)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf(ErrMsgNoUpgrades, domain.ErrItemNotFound, goodID)
	}
	if pos == len(chain) {
		log.Info(LogMsgUpgradeAtLastStep, "good_id", goodID, "upgrade_id", chain[pos-1].ItemID)
		return &UpgradeResult{GoodItemID: goodID}, nil
	}

	next := chain[pos]
	res, err := s.Buy(ctx, next.ItemID, "")
	if err != nil {
		return nil, err
	}
	return &UpgradeResult{GoodItemID: goodID, UpgradeItemID: next.ItemID, Pending: res.Pending}, nil
}

// CompleteMarketPurchase credits a purchase the market confirmed. A token seen
// before is ignored so a redelivered callback never credits twice.
//
// The market has already charged, so completion always credits, even when the
// ledger moved since submit (the item is owned again, or the upgrade is no
// longer the next step). Those credits are logged as stale.
func (s *service) CompleteMarketPurchase(ctx context.Context, productID, payload, token string) error {
	log := logger.FromContext(ctx)

	item, err := s.catalog.GetPurchasable(productID)
	if err != nil {
		return err
	}

	duplicate := false
	var stale error
	err = s.mutate(ctx, func(l *ledger) error {
		if token != "" && s.tokens.Contains(token) {
			duplicate = true
			return nil
		}
		if err := l.checkCanBuy(item); err != nil {
			if !errors.Is(err, domain.ErrAlreadyOwned) && !errors.Is(err, domain.ErrUpgradeOutOfSequence) {
				return err
			}
			stale = err
		}
		if err := l.give(item, 1); err != nil {
			return err
		}
		l.record(domain.EventTypeMarketPurchase, domain.MarketPurchasePayload{ItemID: item.ItemID, Payload: payload, Token: token})
		l.record(domain.EventTypeItemPurchased, domain.ItemPurchasedPayload{ItemID: item.ItemID, Payload: payload})
		if token != "" {
			// Held under the writer lock, so the check above cannot race
			s.tokens.Add(token, struct{}{})
		}
		return nil
	})
	if err != nil {
		if token != "" {
			s.tokens.Remove(token)
		}
		return err
	}

	if duplicate {
		log.Warn(LogMsgDuplicateToken, "product_id", productID, "token", token)
		return nil
	}
	if stale != nil {
		log.Warn(LogMsgStaleMarketCredit, "item_id", item.ItemID, "product_id", productID, "reason", stale)
	}
	log.Info(LogMsgMarketPurchaseApplied, "item_id", item.ItemID, "product_id", productID)
	return nil
}

// CancelMarketPurchase reports a purchase the user abandoned; nothing was credited
func (s *service) CancelMarketPurchase(ctx context.Context, productID string) error {
	item, err := s.catalog.GetPurchasable(productID)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgMarketCancelled, "item_id", item.ItemID, "product_id", productID)
	s.emit(ctx, event.New(domain.EventTypeMarketPurchaseCancelled, domain.ItemPayload{ItemID: item.ItemID}))
	return nil
}

// RefundMarketPurchase reports a refund issued by the market. The ledger is
// left alone; the host decides whether to take the item back.
func (s *service) RefundMarketPurchase(ctx context.Context, productID string) error {
	item, err := s.catalog.GetPurchasable(productID)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgMarketRefunded, "item_id", item.ItemID, "product_id", productID)
	s.emit(ctx, event.New(domain.EventTypeMarketRefund, domain.ItemPayload{ItemID: item.ItemID}))
	return nil
}

// RestorePurchases re-grants the non-consumable market products the market
// remembers and marks transactions as restored. Unknown and consumable
// products are skipped.
func (s *service) RestorePurchases(ctx context.Context, productIDs []string) error {
	log := logger.FromContext(ctx)

	restored := 0
	err := s.mutate(ctx, func(l *ledger) error {
		for _, productID := range productIDs {
			item, err := s.catalog.GetPurchasable(productID)
			if err != nil {
				if isMissing(err) {
					log.Warn(LogMsgRestoreSkippedProduct, "product_id", productID, "reason", "unknown")
					continue
				}
				return err
			}
			if item.Purchase.Market.Consumable == domain.ConsumableConsumable || !item.HasBalance() {
				log.Warn(LogMsgRestoreSkippedProduct, "product_id", productID, "reason", "consumable")
				continue
			}
			owned, err := l.balance(item)
			if err != nil {
				return err
			}
			if owned > 0 {
				continue
			}
			if err := l.give(item, 1); err != nil {
				return err
			}
			restored++
		}
		return l.setFlag(KeyTransactionsRestored, true)
	})
	if err != nil {
		return err
	}

	log.Info(LogMsgRestoreApplied, "reported", len(productIDs), "restored", restored)
	return nil
}

func (s *service) TransactionsAlreadyRestored(ctx context.Context) (bool, error) {
	return s.reader(ctx).getFlag(KeyTransactionsRestored)
}
