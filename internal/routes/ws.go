package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Binaergewitter/datefinder/internal/broadcast"
)

const writeTimeout = 10 * time.Second

// WSHandler bridges the broadcast hub onto websocket connections. The auth
// middleware runs before the upgrade, so unauthenticated connection
// attempts never reach the hub.
type WSHandler struct {
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *broadcast.Hub) *WSHandler {
	return &WSHandler{
		hub:      hub,
		upgrader: websocket.Upgrader{},
	}
}

func (h *WSHandler) Serve(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response
		slog.Warn("Websocket upgrade failed", "error", err, "user_id", user.ID)
		return
	}

	sub := h.hub.Subscribe()
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	// Clients send nothing; the read loop only observes disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, open := <-sub.C:
			if !open {
				// The hub dropped us as a slow consumer; tell the client to
				// reconnect and reconcile with a full availability read.
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too slow"),
					time.Now().Add(writeTimeout))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
