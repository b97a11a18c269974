package config

import "time"

const (
	// Configuration file paths
	ConfigPathStoreAssets       = "configs/store_assets.json"
	ConfigPathStoreAssetsSchema = "configs/schemas/store_assets.schema.json"
)

// Storage backends
const (
	StorageBackendPostgres = "postgres"
	StorageBackendSQLite   = "sqlite"
	StorageBackendMemory   = "memory"
)

// Sandbox market outcomes
const (
	MarketOutcomeComplete = "complete"
	MarketOutcomeCancel   = "cancel"
	MarketOutcomeFail     = "fail"
)

// Defaults
const (
	DefaultPort                 = 8080
	DefaultStoreOwnerID         = "default"
	DefaultSQLitePath           = "data/store.db"
	DefaultDeadLetterPath       = "logs/event_deadletter.jsonl"
	DefaultDBMaxConns           = 10
	DefaultDBMaxConnIdleTime    = 5 * time.Minute
	DefaultDBMaxConnLifetime    = 30 * time.Minute
	DefaultMarketWorkers        = 2
	DefaultMarketQueueSize      = 64
	DefaultMarketDelay          = 500 * time.Millisecond
	DefaultRateLimitRPS         = 20.0
	DefaultRateLimitBurst       = 40
	DefaultServiceName          = "virtual-store"
	DefaultVersion              = "dev"
	DefaultEnvironment          = "dev"
	DefaultLogDir               = "logs"
	DefaultLogFormat            = "text"
	DefaultLogLevel             = "info"
	DefaultStorageBackend       = StorageBackendMemory
	DefaultMarketOutcome        = MarketOutcomeComplete
	DefaultPostgresConnTemplate = "postgres://%s:%s@%s:%s/%s?sslmode=disable"
)
