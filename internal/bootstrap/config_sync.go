package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/VirtualStore_Go/internal/catalog"
	"github.com/osse101/VirtualStore_Go/internal/config"
	"github.com/osse101/VirtualStore_Go/internal/store"
	"github.com/osse101/VirtualStore_Go/internal/wire"
)

// SyncStoreAssets loads, validates and installs the store definition.
// A persisted catalog of the same or a higher version wins, so the file
// only replaces what is stored when its version was bumped.
func SyncStoreAssets(ctx context.Context, cfg *config.Config, st *store.Store) error {
	slog.Info(LogMsgSyncingStoreAssets, "path", cfg.StoreAssetsPath)

	loader := catalog.NewLoader(cfg.StoreAssetsSchemaPath, wire.Platform(cfg.MarketPlatform))
	assets, err := loader.Load(ctx, cfg.StoreAssetsPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadStoreAssets, err)
	}

	replaced, err := st.Initialize(ctx, assets)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncStoreAssets, err)
	}

	if replaced {
		slog.Info(LogMsgStoreAssetsSynced,
			"version", st.Catalog().Version(),
			"items", len(st.Catalog().Items()),
			"categories", len(st.Catalog().Categories()))
	} else {
		slog.Info(LogMsgStoreAssetsKept, "stored_version", st.Catalog().Version(), "file_version", assets.Version)
	}
	return nil
}
