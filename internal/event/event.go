package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/VirtualStore_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// New creates an event of eventType stamped with an id and emission time.
// eventType is one of the domain.EventType* names.
func New(eventType string, payload interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(eventType),
		Payload: payload,
		Metadata: map[string]interface{}{
			MetadataKeyEventID:   uuid.NewString(),
			MetadataKeyEmittedAt: time.Now().UTC().Format(time.RFC3339Nano),
		},
	}
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// ID returns the event id assigned by New, or ""
func (e Event) ID() string {
	id, _ := e.GetMetadataValue(MetadataKeyEventID).(string)
	return id
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler) SubscriptionID
	SubscribeAll(handler Handler) SubscriptionID
	Unsubscribe(id SubscriptionID) bool
}

// Publisher queues events and delivers them later in queue order
type Publisher interface {
	Enqueue(ctx context.Context, event Event)
	Flush() error
}

// DeadLetterSink receives events a handler failed to process
type DeadLetterSink interface {
	Write(event Event, attempts int, lastError error) error
}

type subscription struct {
	id      SubscriptionID
	handler Handler
}

type queued struct {
	ctx   context.Context
	event Event
}

// MemoryBus is an in-memory implementation of the Event Bus.
//
// Delivery is ordered and single-threaded: events are queued in publish order
// and drained by one goroutine at a time, so handlers never run concurrently
// and a handler may publish without deadlocking. A failing or panicking handler
// is logged and dead-lettered; the remaining handlers still run.
type MemoryBus struct {
	handlers map[Type][]subscription
	all      []subscription
	nextID   SubscriptionID
	mu       sync.RWMutex

	queue    []queued
	draining bool
	qmu      sync.Mutex

	deadLetter DeadLetterSink
}

// Option configures a MemoryBus
type Option func(*MemoryBus)

// WithDeadLetter routes failed deliveries to sink
func WithDeadLetter(sink DeadLetterSink) Option {
	return func(b *MemoryBus) {
		b.deadLetter = sink
	}
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus(opts ...Option) *MemoryBus {
	b := &MemoryBus{
		handlers: make(map[Type][]subscription),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish queues an event and, unless another call is already draining the
// queue, delivers queued events until the queue is empty.
// The returned error aggregates handler failures of the events this call delivered.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.Enqueue(ctx, event)
	if errs := b.drain(); len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Enqueue appends an event to the delivery queue without delivering it.
// Callers that enqueue under their own lock call Flush after releasing it, so
// queue order follows their critical sections while handlers run outside them.
func (b *MemoryBus) Enqueue(ctx context.Context, event Event) {
	b.qmu.Lock()
	b.queue = append(b.queue, queued{ctx: ctx, event: event})
	b.qmu.Unlock()
}

// Flush delivers queued events unless another call is already doing so
func (b *MemoryBus) Flush() error {
	if errs := b.drain(); len(errs) > 0 {
		return fmt.Errorf(ErrMsgFlushFormat, len(errs), errs)
	}
	return nil
}

func (b *MemoryBus) drain() []error {
	b.qmu.Lock()
	if b.draining {
		b.qmu.Unlock()
		return nil
	}
	b.draining = true
	b.qmu.Unlock()

	var errs []error
	for {
		b.qmu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.qmu.Unlock()
			return errs
		}
		next := b.queue[0]
		b.queue[0] = queued{}
		b.queue = b.queue[1:]
		b.qmu.Unlock()

		errs = append(errs, b.deliver(next.ctx, next.event)...)
	}
}

func (b *MemoryBus) deliver(ctx context.Context, event Event) []error {
	b.mu.RLock()
	subs := make([]subscription, 0, len(b.handlers[event.Type])+len(b.all))
	subs = append(subs, b.handlers[event.Type]...)
	subs = append(subs, b.all...)
	b.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := b.invoke(ctx, sub.handler, event); err != nil {
			errs = append(errs, err)
			b.handleFailure(ctx, event, err)
		}
	}
	return errs
}

func (b *MemoryBus) invoke(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerPanicked, "event_type", event.Type, "panic", r)
			err = fmt.Errorf(ErrMsgHandlerPanicFormat, r)
		}
	}()
	return handler(ctx, event)
}

func (b *MemoryBus) handleFailure(ctx context.Context, event Event, err error) {
	log := logger.FromContext(ctx)
	log.Warn(LogMsgHandlerFailed, "event_type", event.Type, "event_id", event.ID(), "error", err)

	if b.deadLetter == nil {
		return
	}
	if dlErr := b.deadLetter.Write(event, DeliveryAttempts, err); dlErr != nil {
		log.Error(LogMsgDeadLetterWriteFailed, "event_type", event.Type, "error", dlErr)
	}
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// SubscribeAll subscribes a handler to every event type.
// Wildcard handlers run after the type-specific handlers of each event.
func (b *MemoryBus) SubscribeAll(handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.all = append(b.all, subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a handler; it reports whether the id was registered
func (b *MemoryBus) Unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := removeSubscription(b.all, id); ok {
		b.all = subs
		return true
	}
	for eventType, subs := range b.handlers {
		if remaining, ok := removeSubscription(subs, id); ok {
			if len(remaining) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = remaining
			}
			return true
		}
	}
	return false
}

func removeSubscription(subs []subscription, id SubscriptionID) ([]subscription, bool) {
	for i, sub := range subs {
		if sub.id == id {
			// Copy so snapshots taken by an in-flight delivery stay intact
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...), true
		}
	}
	return subs, false
}
