package sse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Hosts connect from native shells and local tools, not browsers of other origins
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler streams hub events as JSON text frames
func WebSocketHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventTypes := parseFilter(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client
			slog.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		client := hub.Register(uuid.New().String(), eventTypes)
		if client == nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, LogMsgHubStopped),
				time.Now().Add(WriteTimeout))
			return
		}
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"transport", "websocket",
			"filters", eventTypes)
		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		if err := writeJSON(conn, connectedEvent(client.ID, eventTypes)); err != nil {
			return
		}

		closed := make(chan struct{})
		go readPump(conn, closed)
		writePump(conn, client, closed)
	}
}

// readPump discards client frames and answers pongs until the peer goes away
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(MaxClientMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug(LogMsgUnexpectedClose, "error", err)
			}
			return
		}
	}
}

func writePump(conn *websocket.Conn, client *Client, closed <-chan struct{}) {
	ticker := time.NewTicker(PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return

		case event, ok := <-client.EventChannel:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
					time.Now().Add(WriteTimeout))
				return
			}
			if err := writeJSON(conn, event); err != nil {
				slog.Warn(LogMsgWriteError, "client_id", client.ID, "error", err)
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, event Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(event)
}
