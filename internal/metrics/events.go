package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/logger"
)

// EventMetricsCollector subscribes to store events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event on bus
func (e *EventMetricsCollector) Register(bus event.Bus) event.SubscriptionID {
	return bus.SubscribeAll(e.HandleEvent)
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case domain.BalanceChangedPayload:
		if p.AmountAdded > 0 {
			BalanceCredited.WithLabelValues(p.ItemID).Add(float64(p.AmountAdded))
		} else if p.AmountAdded < 0 {
			BalanceDebited.WithLabelValues(p.ItemID).Add(float64(-p.AmountAdded))
		}

	case domain.ItemPurchasedPayload:
		ItemsPurchased.WithLabelValues(p.ItemID).Inc()

	case domain.MarketPurchasePayload:
		MarketPurchases.WithLabelValues(p.ItemID).Inc()

	case domain.ItemPayload:
		switch string(evt.Type) {
		case domain.EventTypeGoodEquipped:
			GoodsEquipped.WithLabelValues(p.ItemID).Inc()
		case domain.EventTypeMarketPurchaseCancelled:
			MarketCancellations.WithLabelValues(p.ItemID).Inc()
		case domain.EventTypeMarketRefund:
			MarketRefunds.WithLabelValues(p.ItemID).Inc()
		}

	case domain.GoodUpgradePayload:
		if p.UpgradeItemID != "" {
			UpgradesApplied.WithLabelValues(p.GoodItemID).Inc()
		}

	case domain.NonConsumableChangedPayload:
		NonConsumablesChanged.WithLabelValues(p.ItemID, strconv.FormatBool(p.Owned)).Inc()

	case domain.UnexpectedErrorPayload:
		UnexpectedStoreErrors.Inc()

	case domain.SignalPayload, domain.RestoreTransactionsFinishedPayload, domain.MarketItemsRefreshFinishedPayload:

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// DeadLetterCounter counts handler failures before passing them on
type DeadLetterCounter struct {
	next event.DeadLetterSink
}

// NewDeadLetterCounter wraps next, which may be nil
func NewDeadLetterCounter(next event.DeadLetterSink) *DeadLetterCounter {
	return &DeadLetterCounter{next: next}
}

func (d *DeadLetterCounter) Write(evt event.Event, attempts int, lastError error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	if d.next == nil {
		return nil
	}
	return d.next.Write(evt, attempts, lastError)
}
