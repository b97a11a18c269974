package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/VirtualStore_Go/internal/config"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/metrics"
)

// InitializeEventSystem creates the store event bus. Handler failures are
// counted by the metrics layer and appended to the dead-letter file.
// The caller must Close the returned writer after the bus is drained.
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *event.DeadLetterWriter, error) {
	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	deadLetter, err := event.NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetter, err)
	}

	bus := event.NewMemoryBus(event.WithDeadLetter(metrics.NewDeadLetterCounter(deadLetter)))

	slog.Info(LogMsgEventSystemInitialized, "deadletter_path", deadLetterPath)
	return bus, deadLetter, nil
}
