package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingStore       = "Starting virtual store"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStorageOpened           = "Storage opened"
	ErrMsgFailedConnectDatabase   = "failed to connect to database"
	ErrMsgFailedMigrateDatabase   = "failed to migrate database"
	ErrMsgFailedOpenSQLite        = "failed to open sqlite store"
	ErrMsgUnknownStorageBackend   = "unknown storage backend %q"
	LogMsgRunningMigrationsOnBoot = "Applying database migrations"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgFailedCreateDeadLetter     = "failed to open dead-letter file"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventStreamSubscribed      = "Event stream subscribed to store events"
)

// =============================================================================
// Market
// =============================================================================

const (
	LogMsgMarketSandboxReady = "Market sandbox ready"
	ErrMsgInvalidOutcome     = "invalid market outcome"
)

// =============================================================================
// Store Assets Sync
// =============================================================================

const (
	LogMsgSyncingStoreAssets = "Syncing store assets from config..."
	LogMsgStoreAssetsSynced  = "Store assets synced successfully"
	LogMsgStoreAssetsKept    = "Stored catalog is newer, config ignored"

	ErrMsgFailedLoadStoreAssets = "failed to load store assets config"
	ErrMsgFailedSyncStoreAssets = "failed to initialize store"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgShuttingDownStore     = "Shutting down store..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgStoreShutdownFailed   = "Store shutdown failed"
	LogMsgDeadLetterCloseFailed = "Dead-letter file close failed"
	LogMsgPendingEventsDropped  = "Pending events failed during shutdown"
)

// ShutdownTimeout bounds GracefulShutdown when the caller has no deadline
const ShutdownTimeout = 10 * time.Second
