package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
)

func (s *service) equippable(goodID string) (domain.VirtualItem, error) {
	good, err := s.catalog.GetItem(goodID)
	if err != nil {
		return domain.VirtualItem{}, err
	}
	if good.Kind != domain.KindEquippableVG {
		return domain.VirtualItem{}, fmt.Errorf(ErrMsgNotEquippable, domain.ErrWrongItemKind, goodID)
	}
	return good, nil
}

// Equip equips an owned good, first unequipping the goods its equipping model
// excludes: none for Local, the rest of its category for Category, every other
// equippable good for Global.
func (s *service) Equip(ctx context.Context, goodID string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgEquipCalled, "good_id", goodID)

	good, err := s.equippable(goodID)
	if err != nil {
		return err
	}
	siblings, err := s.exclusiveSiblings(ctx, good)
	if err != nil {
		return err
	}

	return s.mutate(ctx, func(l *ledger) error {
		owned, err := l.balance(good)
		if err != nil {
			return err
		}
		if owned == 0 {
			return fmt.Errorf(ErrMsgNotOwnedFmt, domain.ErrNotOwned, goodID)
		}
		for _, id := range siblings {
			equipped, err := l.isEquipped(id)
			if err != nil {
				return err
			}
			if equipped {
				if err := l.setEquipped(id, false); err != nil {
					return err
				}
			}
		}
		return l.setEquipped(goodID, true)
	})
}

// exclusiveSiblings lists the equippable goods that equipping good unequips
func (s *service) exclusiveSiblings(ctx context.Context, good domain.VirtualItem) ([]string, error) {
	var candidates []string
	switch good.Equipping {
	case domain.EquippingCategory:
		category, err := s.catalog.GetCategoryOf(good.ItemID)
		if err != nil {
			if isMissing(err) {
				logger.FromContext(ctx).Warn(LogMsgCategoryMissing, "good_id", good.ItemID)
				return nil, nil
			}
			return nil, err
		}
		candidates = category.GoodItemIDs
	case domain.EquippingGlobal:
		for _, g := range s.catalog.Goods() {
			candidates = append(candidates, g.ItemID)
		}
	default:
		return nil, nil
	}

	var siblings []string
	for _, id := range candidates {
		if id == good.ItemID {
			continue
		}
		item, err := s.catalog.GetItem(id)
		if err != nil {
			return nil, err
		}
		if item.Kind == domain.KindEquippableVG {
			siblings = append(siblings, id)
		}
	}
	return siblings, nil
}

// Unequip clears the equipped flag. It is idempotent and always emits.
func (s *service) Unequip(ctx context.Context, goodID string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUnequipCalled, "good_id", goodID)

	if _, err := s.equippable(goodID); err != nil {
		return err
	}
	return s.mutate(ctx, func(l *ledger) error {
		return l.setEquipped(goodID, false)
	})
}

func (s *service) IsEquipped(ctx context.Context, goodID string) (bool, error) {
	if _, err := s.equippable(goodID); err != nil {
		return false, err
	}
	return s.reader(ctx).isEquipped(goodID)
}
