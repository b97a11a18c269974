package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/metrics"
	"github.com/osse101/VirtualStore_Go/internal/sse"
)

// RegisterEventHandlers attaches the bus observers:
// the metrics collector counts every store event and
// the stream subscriber forwards them to SSE and WebSocket clients.
func RegisterEventHandlers(ctx context.Context, bus event.Bus, hub *sse.Hub) *sse.Subscriber {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	subscriber := sse.NewSubscriber(hub, bus)
	subscriber.Subscribe(ctx)
	slog.Info(LogMsgEventStreamSubscribed)

	return subscriber
}
