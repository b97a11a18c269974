package sse

import (
	"context"
	"time"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/wire"
)

// Subscriber bridges the store event bus to the hub
type Subscriber struct {
	hub   *Hub
	bus   event.Bus
	known map[string]bool
	subID event.SubscriptionID
}

// NewSubscriber creates a new subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	known := make(map[string]bool, len(domain.AllEventTypes))
	for _, t := range domain.AllEventTypes {
		known[t] = true
	}
	return &Subscriber{hub: hub, bus: bus, known: known}
}

// Subscribe attaches the subscriber to every store event
func (s *Subscriber) Subscribe(ctx context.Context) {
	s.subID = s.bus.SubscribeAll(s.handle)
	logger.FromContext(ctx).Info(LogMsgSubscriberAttached, "types", len(s.known))
}

// Unsubscribe detaches the subscriber from the bus
func (s *Subscriber) Unsubscribe() {
	s.bus.Unsubscribe(s.subID)
}

func (s *Subscriber) handle(ctx context.Context, evt event.Event) error {
	eventType := string(evt.Type)
	if !s.known[eventType] {
		return nil
	}

	log := logger.FromContext(ctx)
	message, err := wire.EncodeMessage(eventType, evt.Payload)
	if err != nil {
		// A listener never fails the operation; the frame goes out without a message
		log.Warn(LogMsgEncodeError, "event_type", eventType, "error", err)
	}

	s.hub.Broadcast(Event{
		ID:        evt.ID(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Message:   message,
		Payload:   evt.Payload,
	})
	log.Debug(LogMsgEventBroadcast, "event_type", eventType)
	return nil
}
