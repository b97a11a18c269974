package sse

// Event is one frame of the host event stream. Message carries the
// #SOOM#-delimited rendering of Payload that native hosts parse.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Message   string      `json:"message"`
	Payload   interface{} `json:"payload,omitempty"`
}
