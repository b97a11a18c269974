package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 64

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// Connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second

	// PongWait is how long a WebSocket peer may stay silent
	PongWait = 60 * time.Second

	// PingPeriod must be shorter than PongWait
	PingPeriod = (PongWait * 9) / 10

	// MaxClientMessageSize bounds frames read from WebSocket clients; the stream is one-way
	MaxClientMessageSize = 512
)

// Stream-only event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// FilterQueryParam selects event types, comma separated
const FilterQueryParam = "types"

// Log messages
const (
	LogMsgClientConnected     = "Event stream client connected"
	LogMsgClientDisconnected  = "Event stream client disconnected"
	LogMsgEventBroadcast      = "Broadcasting store event"
	LogMsgBroadcastDropped    = "Broadcast buffer full, store event dropped"
	LogMsgWriteError          = "Failed to write stream event"
	LogMsgEncodeError         = "Failed to encode store event message"
	LogMsgUpgradeFailed       = "WebSocket upgrade failed"
	LogMsgUnexpectedClose     = "WebSocket closed unexpectedly"
	LogMsgSubscriberAttached  = "Event stream subscriber attached to bus"
	LogMsgStreamNotSupported  = "Streaming not supported"
	LogMsgHubStopped          = "Event stream hub stopped"
	LogMsgClientEventsDropped = "Client buffer full, store event dropped"
)
