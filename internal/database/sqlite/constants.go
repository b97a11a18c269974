package sqlite

// DriverName is the database/sql driver registered by modernc.org/sqlite
const DriverName = "sqlite"

// DirPermissions is the mode used when creating the database directory
const DirPermissions = 0755

// Key/value statements
const (
	queryGetValue = `SELECT value FROM kv_store WHERE namespace = ? AND key = ?`

	queryListValues = `SELECT key, value FROM kv_store WHERE namespace = ? AND substr(key, 1, length(?)) = ?`

	querySetValue = `
		INSERT INTO kv_store (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	queryDeleteValue = `DELETE FROM kv_store WHERE namespace = ? AND key = ?`
)

// Error Messages
const (
	ErrMsgFailedToCreateDir        = "failed to create database directory"
	ErrMsgFailedToOpen             = "failed to open sqlite database"
	ErrMsgFailedToPing             = "failed to ping sqlite database"
	ErrMsgFailedToMigrate          = "failed to migrate sqlite database"
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToGetValue         = "failed to get value"
	ErrMsgFailedToListValues       = "failed to list values"
	ErrMsgFailedToSetValue         = "failed to set value"
	ErrMsgFailedToDeleteValue      = "failed to delete value"
)
