package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
)

// Give credits amount of itemID. Packs expand into their contents, lifetime
// goods become owned, upgrades become the current upgrade.
func (s *service) Give(ctx context.Context, itemID string, amount int) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgGiveCalled, "item_id", itemID, "amount", amount)

	item, err := s.itemForAmount(itemID, amount)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(l *ledger) error {
		return l.give(item, amount)
	})
}

// Take debits amount of itemID. Balances clamp at zero rather than failing.
func (s *service) Take(ctx context.Context, itemID string, amount int) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgTakeCalled, "item_id", itemID, "amount", amount)

	item, err := s.itemForAmount(itemID, amount)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(l *ledger) error {
		return l.take(item, amount)
	})
}

func (s *service) itemForAmount(itemID string, amount int) (domain.VirtualItem, error) {
	item, err := s.catalog.GetItem(itemID)
	if err != nil {
		return domain.VirtualItem{}, err
	}
	if amount <= 0 {
		return domain.VirtualItem{}, fmt.Errorf(ErrMsgAmountNotPositive, domain.ErrInvalidInput, amount)
	}
	return item, nil
}

func (s *service) GetBalance(ctx context.Context, itemID string) (int, error) {
	item, err := s.catalog.GetItem(itemID)
	if err != nil {
		return 0, err
	}
	return s.reader(ctx).balance(item)
}

func (s *service) upgradableGood(goodID string) (domain.VirtualItem, error) {
	good, err := s.catalog.GetItem(goodID)
	if err != nil {
		return domain.VirtualItem{}, err
	}
	if !good.IsGood() || good.Kind == domain.KindUpgradeVG {
		return domain.VirtualItem{}, fmt.Errorf(ErrMsgNotUpgradable, domain.ErrWrongItemKind, goodID)
	}
	return good, nil
}

func (s *service) upgradeState(ctx context.Context, goodID string) ([]domain.VirtualItem, int, error) {
	if _, err := s.upgradableGood(goodID); err != nil {
		return nil, 0, err
	}
	return s.reader(ctx).upgradeState(goodID)
}

// GetUpgradeLevel returns the 1-based step of the current upgrade, 0 for none
func (s *service) GetUpgradeLevel(ctx context.Context, goodID string) (int, error) {
	_, pos, err := s.upgradeState(ctx, goodID)
	return pos, err
}

// GetCurrentUpgrade returns the current upgrade id, "" for none
func (s *service) GetCurrentUpgrade(ctx context.Context, goodID string) (string, error) {
	chain, pos, err := s.upgradeState(ctx, goodID)
	if err != nil || pos == 0 {
		return "", err
	}
	return chain[pos-1].ItemID, nil
}

// RemoveUpgrades resets goodID to no upgrade without refunding anything
func (s *service) RemoveUpgrades(ctx context.Context, goodID string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRemoveUpgradesCalled, "good_id", goodID)

	if _, err := s.upgradableGood(goodID); err != nil {
		return err
	}
	return s.mutate(ctx, func(l *ledger) error {
		return l.setCurrentUpgrade(goodID, "")
	})
}

func (s *service) nonConsumable(itemID string) (domain.VirtualItem, error) {
	item, err := s.catalog.GetItem(itemID)
	if err != nil {
		return domain.VirtualItem{}, err
	}
	if item.Kind != domain.KindNonConsumableItem {
		return domain.VirtualItem{}, fmt.Errorf(ErrMsgNotNonConsumable, domain.ErrWrongItemKind, itemID)
	}
	return item, nil
}

func (s *service) NonConsumableExists(ctx context.Context, itemID string) (bool, error) {
	item, err := s.nonConsumable(itemID)
	if err != nil {
		return false, err
	}
	owned, err := s.reader(ctx).balance(item)
	return owned > 0, err
}

// AddNonConsumable marks itemID as owned; adding twice is not an error
func (s *service) AddNonConsumable(ctx context.Context, itemID string) error {
	if _, err := s.nonConsumable(itemID); err != nil {
		return err
	}
	return s.mutate(ctx, func(l *ledger) error {
		return l.setNonConsumable(itemID, true)
	})
}

// RemoveNonConsumable clears ownership of itemID; removing an absent id is not an error
func (s *service) RemoveNonConsumable(ctx context.Context, itemID string) error {
	if _, err := s.nonConsumable(itemID); err != nil {
		return err
	}
	return s.mutate(ctx, func(l *ledger) error {
		return l.setNonConsumable(itemID, false)
	})
}
