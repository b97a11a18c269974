package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644

	// DeliveryAttempts is recorded on dead-letter entries; the bus never retries
	DeliveryAttempts = 1
)

// Metadata keys
const (
	MetadataKeyEventID   = "event_id"
	MetadataKeyEmittedAt = "emitted_at"
	MetadataKeySource    = "source"
)

// Log message constants
const (
	LogMsgHandlerFailed         = "Event handler failed"
	LogMsgHandlerPanicked       = "Event handler panicked"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"

	ErrMsgHandlerPanicFormat = "handler panicked: %v"
	ErrMsgFlushFormat        = "encountered %d errors while flushing events: %v"
)
