package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/VirtualStore_Go/internal/bootstrap"
	"github.com/osse101/VirtualStore_Go/internal/config"
	"github.com/osse101/VirtualStore_Go/internal/server"
	"github.com/osse101/VirtualStore_Go/internal/sse"
	"github.com/osse101/VirtualStore_Go/internal/store"
)

// @title Virtual Store API
// @version 1.0
// @description Virtual economy service: catalog, balances, goods, upgrades and market purchases.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Store exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	bus, deadLetter, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	subscriber := bootstrap.RegisterEventHandlers(ctx, bus, hub)

	// Settlements must outlive the signal context so shutdown can drain them
	pool, provider, err := bootstrap.InitializeMarket(context.WithoutCancel(ctx), cfg)
	if err != nil {
		hub.Stop()
		_ = deadLetter.Close()
		storage.Close()
		return err
	}

	st := store.New(store.Deps{
		Storage:  storage,
		Bus:      bus,
		OwnerID:  cfg.StoreOwnerID,
		Provider: provider,
		Pool:     pool,
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, storage, st, hub)

	components := bootstrap.ShutdownComponents{
		Server:     srv,
		Store:      st,
		Subscriber: subscriber,
		Hub:        hub,
		Bus:        bus,
		DeadLetter: deadLetter,
		Storage:    storage,
	}

	if err := bootstrap.SyncStoreAssets(ctx, cfg, st); err != nil {
		components.Server = nil
		shutdown(components)
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdown(components)
		return nil
	case err := <-errCh:
		shutdown(components)
		return err
	}
}

func shutdown(components bootstrap.ShutdownComponents) {
	ctx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, components)
}
