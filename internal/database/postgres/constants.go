package postgres

// Key/value statements
const (
	queryGetValue = `SELECT value FROM kv_store WHERE namespace = $1 AND key = $2`

	queryListValues = `SELECT key, value FROM kv_store WHERE namespace = $1 AND starts_with(key, $2)`

	querySetValue = `
		INSERT INTO kv_store (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	queryDeleteValue = `DELETE FROM kv_store WHERE namespace = $1 AND key = $2`
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToGetValue         = "failed to get value"
	ErrMsgFailedToListValues       = "failed to list values"
	ErrMsgFailedToSetValue         = "failed to set value"
	ErrMsgFailedToDeleteValue      = "failed to delete value"
)
