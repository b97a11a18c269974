package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/VirtualStore_Go/internal/config"
	"github.com/osse101/VirtualStore_Go/internal/database"
	"github.com/osse101/VirtualStore_Go/internal/database/memory"
	"github.com/osse101/VirtualStore_Go/internal/database/postgres"
	"github.com/osse101/VirtualStore_Go/internal/database/sqlite"
	"github.com/osse101/VirtualStore_Go/internal/repository"
)

// InitializeStorage opens the key-value storage selected by STORAGE_BACKEND
// and brings its schema up to date. The caller owns the returned store and
// must Close it.
func InitializeStorage(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	var (
		kv  repository.KeyValueStore
		err error
	)

	switch cfg.StorageBackend {
	case config.StorageBackendPostgres:
		kv, err = openPostgres(ctx, cfg)
	case config.StorageBackendSQLite:
		kv, err = sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			err = fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
	case config.StorageBackendMemory:
		kv = memory.NewKeyValueStore()
	default:
		err = fmt.Errorf(ErrMsgUnknownStorageBackend, cfg.StorageBackend)
	}
	if err != nil {
		return nil, err
	}

	slog.Info(LogMsgStorageOpened, "backend", cfg.StorageBackend)
	return kv, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	slog.Info(LogMsgRunningMigrationsOnBoot)
	if err := database.MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDatabase, err)
	}
	return postgres.NewKeyValueStore(pool), nil
}
