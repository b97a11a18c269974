package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/VirtualStore_Go/internal/config"
	"github.com/osse101/VirtualStore_Go/internal/market"
	"github.com/osse101/VirtualStore_Go/internal/worker"
)

// InitializeMarket starts the worker pool that settles purchases and the
// sandbox provider running on it. The store built on them stops the pool.
func InitializeMarket(ctx context.Context, cfg *config.Config) (*worker.Pool, market.Provider, error) {
	outcome, err := market.ParseOutcome(cfg.MarketOutcome)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgInvalidOutcome, err)
	}

	pool := worker.NewPool(ctx, cfg.MarketWorkers, cfg.MarketQueueSize)
	pool.Start()

	provider := market.NewSandbox(pool, market.SandboxConfig{
		Delay:            cfg.MarketDelay,
		Outcome:          outcome,
		BillingSupported: cfg.MarketBillingSupported,
	})

	slog.Info(LogMsgMarketSandboxReady,
		"workers", cfg.MarketWorkers,
		"delay", cfg.MarketDelay,
		"outcome", outcome,
		"billing_supported", cfg.MarketBillingSupported)
	return pool, provider, nil
}
