package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/repository"
	"github.com/osse101/VirtualStore_Go/internal/server"
	"github.com/osse101/VirtualStore_Go/internal/sse"
	"github.com/osse101/VirtualStore_Go/internal/store"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server     *server.Server
	Store      *store.Store
	Subscriber *sse.Subscriber
	Hub        *sse.Hub
	Bus        event.Publisher
	DeadLetter *event.DeadLetterWriter
	Storage    repository.KeyValueStore
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Store (wait for in-flight market settlements)
// 3. Event stream (flush queued events, then disconnect clients)
// 4. Dead-letter file and storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownStore)
	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			slog.Error(LogMsgStoreShutdownFailed, "error", err)
		}
	}

	if c.Bus != nil {
		if err := c.Bus.Flush(); err != nil {
			slog.Warn(LogMsgPendingEventsDropped, "error", err)
		}
	}
	if c.Subscriber != nil {
		c.Subscriber.Unsubscribe()
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.DeadLetter != nil {
		if err := c.DeadLetter.Close(); err != nil {
			slog.Error(LogMsgDeadLetterCloseFailed, "error", err)
		}
	}
	if c.Storage != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
