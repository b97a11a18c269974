package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/osse101/VirtualStore_Go/internal/catalog"
	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/repository"
)

type kvReader interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
}

// ledger reads and writes the rows of one owner. Writes require tx; a ledger
// built for reads has a nil tx and must only be used through read methods.
// Every write records the event describing it, in order.
type ledger struct {
	ctx     context.Context
	kv      kvReader
	tx      repository.KeyValueTx
	ns      string
	catalog catalog.Service
	events  []event.Event
}

func (l *ledger) record(eventType string, payload interface{}) {
	l.events = append(l.events, event.New(eventType, payload))
}

func (l *ledger) getString(key string) (string, error) {
	raw, found, err := l.kv.Get(l.ctx, l.ns, key)
	if err != nil {
		return "", fmt.Errorf(ErrMsgReadLedgerFailed, key, err)
	}
	if !found {
		return "", nil
	}
	return raw, nil
}

// setString stores value; "" deletes the row
func (l *ledger) setString(key, value string) error {
	var err error
	if value == "" {
		err = l.tx.Delete(l.ctx, l.ns, key)
	} else {
		err = l.tx.Set(l.ctx, l.ns, key, value)
	}
	if err != nil {
		return fmt.Errorf(ErrMsgWriteLedgerFailed, key, err)
	}
	return nil
}

func (l *ledger) getInt(key string) (int, error) {
	raw, err := l.getString(key)
	if err != nil || raw == "" {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf(ErrMsgCorruptLedgerValue, key, raw)
	}
	return n, nil
}

func (l *ledger) setInt(key string, n int) error {
	return l.setString(key, strconv.Itoa(n))
}

func (l *ledger) getFlag(key string) (bool, error) {
	raw, err := l.getString(key)
	return raw == FlagSet, err
}

func (l *ledger) setFlag(key string, on bool) error {
	if on {
		return l.setString(key, FlagSet)
	}
	return l.setString(key, "")
}

func balanceKey(item domain.VirtualItem) string {
	if item.Kind == domain.KindVirtualCurrency {
		return fmt.Sprintf(KeyFmtCurrencyBalance, item.ItemID)
	}
	return fmt.Sprintf(KeyFmtGoodBalance, item.ItemID)
}

func balanceEventType(item domain.VirtualItem) string {
	if item.Kind == domain.KindVirtualCurrency {
		return domain.EventTypeCurrencyBalanceChanged
	}
	return domain.EventTypeGoodBalanceChanged
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// balance returns the balance of any item that has one; ownership reads as 0 or 1
func (l *ledger) balance(item domain.VirtualItem) (int, error) {
	switch item.Kind {
	case domain.KindVirtualCurrency, domain.KindSingleUseVG, domain.KindLifetimeVG, domain.KindEquippableVG:
		return l.getInt(balanceKey(item))
	case domain.KindUpgradeVG:
		owned, err := l.upgradeOwned(item)
		return boolToInt(owned), err
	case domain.KindNonConsumableItem:
		exists, err := l.getFlag(fmt.Sprintf(KeyFmtNonConsumable, item.ItemID))
		return boolToInt(exists), err
	}
	return 0, fmt.Errorf(ErrMsgNoBalance, domain.ErrWrongItemKind, item.ItemID)
}

// give credits amount of item according to its kind
func (l *ledger) give(item domain.VirtualItem, amount int) error {
	switch item.Kind {
	case domain.KindVirtualCurrency, domain.KindSingleUseVG:
		return l.addBalance(item, amount)
	case domain.KindVirtualCurrencyPack:
		currency, err := l.catalog.GetItem(item.CurrencyItemID)
		if err != nil {
			return err
		}
		total, ok := packTotal(amount, item.CurrencyAmount)
		if !ok {
			return fmt.Errorf(ErrMsgBalanceOverflow, domain.ErrInvalidInput, currency.ItemID)
		}
		return l.addBalance(currency, total)
	case domain.KindSingleUsePackVG:
		good, err := l.catalog.GetItem(item.GoodItemID)
		if err != nil {
			return err
		}
		total, ok := packTotal(amount, item.GoodAmount)
		if !ok {
			return fmt.Errorf(ErrMsgBalanceOverflow, domain.ErrInvalidInput, good.ItemID)
		}
		return l.addBalance(good, total)
	case domain.KindLifetimeVG, domain.KindEquippableVG:
		return l.setOwned(item, true)
	case domain.KindUpgradeVG:
		return l.assignUpgrade(item)
	case domain.KindNonConsumableItem:
		return l.setNonConsumable(item.ItemID, true)
	}
	return fmt.Errorf(ErrMsgNoBalance, domain.ErrWrongItemKind, item.ItemID)
}

// take debits amount of item according to its kind. Balances clamp at zero.
func (l *ledger) take(item domain.VirtualItem, amount int) error {
	switch item.Kind {
	case domain.KindVirtualCurrency, domain.KindSingleUseVG:
		return l.addBalance(item, -amount)
	case domain.KindVirtualCurrencyPack:
		currency, err := l.catalog.GetItem(item.CurrencyItemID)
		if err != nil {
			return err
		}
		total, _ := packTotal(amount, item.CurrencyAmount)
		return l.addBalance(currency, -total)
	case domain.KindSingleUsePackVG:
		good, err := l.catalog.GetItem(item.GoodItemID)
		if err != nil {
			return err
		}
		total, _ := packTotal(amount, item.GoodAmount)
		return l.addBalance(good, -total)
	case domain.KindEquippableVG:
		equipped, err := l.getFlag(fmt.Sprintf(KeyFmtGoodEquipped, item.ItemID))
		if err != nil {
			return err
		}
		if equipped {
			if err := l.setEquipped(item.ItemID, false); err != nil {
				return err
			}
		}
		return l.setOwned(item, false)
	case domain.KindLifetimeVG:
		return l.setOwned(item, false)
	case domain.KindUpgradeVG:
		return l.revertUpgrade(item)
	case domain.KindNonConsumableItem:
		return l.setNonConsumable(item.ItemID, false)
	}
	return fmt.Errorf(ErrMsgNoBalance, domain.ErrWrongItemKind, item.ItemID)
}

func (l *ledger) addBalance(item domain.VirtualItem, delta int) error {
	key := balanceKey(item)
	current, err := l.getInt(key)
	if err != nil {
		return err
	}
	if delta > 0 && current > math.MaxInt-delta {
		return fmt.Errorf(ErrMsgBalanceOverflow, domain.ErrInvalidInput, item.ItemID)
	}
	// current >= 0 and delta >= -MaxInt, so a debit cannot wrap
	next := current + delta
	if next < 0 {
		next = 0
	}
	if err := l.setInt(key, next); err != nil {
		return err
	}
	l.record(balanceEventType(item), domain.BalanceChangedPayload{
		ItemID:      item.ItemID,
		Balance:     next,
		AmountAdded: next - current,
	})
	return nil
}

// packTotal is amount packs of per units each, saturating at MaxInt
func packTotal(amount, per int) (int, bool) {
	if per > 0 && amount > math.MaxInt/per {
		return math.MaxInt, false
	}
	return amount * per, true
}

func (l *ledger) setOwned(item domain.VirtualItem, owned bool) error {
	key := balanceKey(item)
	current, err := l.getInt(key)
	if err != nil {
		return err
	}
	next := boolToInt(owned)
	if err := l.setInt(key, next); err != nil {
		return err
	}
	l.record(domain.EventTypeGoodBalanceChanged, domain.BalanceChangedPayload{
		ItemID:      item.ItemID,
		Balance:     next,
		AmountAdded: next - current,
	})
	return nil
}

func (l *ledger) setNonConsumable(itemID string, exists bool) error {
	if err := l.setFlag(fmt.Sprintf(KeyFmtNonConsumable, itemID), exists); err != nil {
		return err
	}
	l.record(domain.EventTypeNonConsumableChanged, domain.NonConsumableChangedPayload{ItemID: itemID, Owned: exists})
	return nil
}

func (l *ledger) isEquipped(goodID string) (bool, error) {
	return l.getFlag(fmt.Sprintf(KeyFmtGoodEquipped, goodID))
}

func (l *ledger) setEquipped(goodID string, equipped bool) error {
	if err := l.setFlag(fmt.Sprintf(KeyFmtGoodEquipped, goodID), equipped); err != nil {
		return err
	}
	eventType := domain.EventTypeGoodUnequipped
	if equipped {
		eventType = domain.EventTypeGoodEquipped
	}
	l.record(eventType, domain.ItemPayload{ItemID: goodID})
	return nil
}

// upgradeState returns the upgrade scale of goodID and the 1-based position of
// its current upgrade (0 for none). A stored upgrade that is no longer part of
// the scale counts as none.
func (l *ledger) upgradeState(goodID string) ([]domain.VirtualItem, int, error) {
	chain, err := l.catalog.GetUpgrades(goodID)
	if err != nil {
		return nil, 0, err
	}
	current, err := l.getString(fmt.Sprintf(KeyFmtGoodUpgrade, goodID))
	if err != nil {
		return nil, 0, err
	}
	return chain, positionOf(chain, current), nil
}

// positionOf returns the 1-based position of id in chain, 0 when absent
func positionOf(chain []domain.VirtualItem, id string) int {
	if id == "" {
		return 0
	}
	for i, up := range chain {
		if up.ItemID == id {
			return i + 1
		}
	}
	return 0
}

// upgradeOwned reports whether the good has reached up's step
func (l *ledger) upgradeOwned(up domain.VirtualItem) (bool, error) {
	chain, pos, err := l.upgradeState(up.GoodItemID)
	if err != nil {
		return false, err
	}
	step := positionOf(chain, up.ItemID)
	return pos > 0 && step > 0 && step <= pos, nil
}

func (l *ledger) setCurrentUpgrade(goodID, upgradeID string) error {
	if err := l.setString(fmt.Sprintf(KeyFmtGoodUpgrade, goodID), upgradeID); err != nil {
		return err
	}
	l.record(domain.EventTypeGoodUpgrade, domain.GoodUpgradePayload{GoodItemID: goodID, UpgradeItemID: upgradeID})
	return nil
}

func (l *ledger) assignUpgrade(up domain.VirtualItem) error {
	return l.setCurrentUpgrade(up.GoodItemID, up.ItemID)
}

// revertUpgrade steps the good back to the upgrade before up. Only the current
// upgrade can be taken; any other step is left alone.
func (l *ledger) revertUpgrade(up domain.VirtualItem) error {
	chain, pos, err := l.upgradeState(up.GoodItemID)
	if err != nil {
		return err
	}
	if pos == 0 || positionOf(chain, up.ItemID) != pos {
		return nil
	}
	return l.setCurrentUpgrade(up.GoodItemID, up.PrevItemID)
}

// checkCanBuy enforces single ownership of lifetime items and upgrade sequencing
func (l *ledger) checkCanBuy(item domain.VirtualItem) error {
	switch item.Kind {
	case domain.KindLifetimeVG, domain.KindEquippableVG, domain.KindNonConsumableItem:
		owned, err := l.balance(item)
		if err != nil {
			return err
		}
		if owned > 0 {
			return fmt.Errorf(ErrMsgAlreadyOwnedFmt, domain.ErrAlreadyOwned, item.ItemID)
		}
	case domain.KindUpgradeVG:
		chain, pos, err := l.upgradeState(item.GoodItemID)
		if err != nil {
			return err
		}
		step := positionOf(chain, item.ItemID)
		if step <= pos {
			return fmt.Errorf(ErrMsgAlreadyOwnedFmt, domain.ErrAlreadyOwned, item.ItemID)
		}
		if step > pos+1 {
			return fmt.Errorf(ErrMsgUpgradeSequenceFmt, domain.ErrUpgradeOutOfSequence, item.ItemID, step, pos+1)
		}
	}
	return nil
}

// pay debits the virtual price of a purchase, failing without side effects
// when the payer's balance is short
func (l *ledger) pay(item domain.VirtualItem) error {
	p := item.Purchase
	target, err := l.catalog.GetItem(p.TargetItemID)
	if err != nil {
		return err
	}
	balance, err := l.balance(target)
	if err != nil {
		return err
	}
	if balance < p.Amount {
		return fmt.Errorf(ErrMsgInsufficientFmt, domain.ErrInsufficientFunds, item.ItemID, p.Amount, target.ItemID, balance)
	}
	return l.take(target, p.Amount)
}

// isMissing reports whether err means the catalog has no such entry
func isMissing(err error) bool {
	return errors.Is(err, domain.ErrItemNotFound)
}
