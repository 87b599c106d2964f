package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"skybridge/internal/node"
	"skybridge/internal/shared/logger"
)

// EventsHandler streams node events to the web page over a websocket.
// Events share one queue across connections: each event reaches exactly
// one connected client, same semantics as the result channels.
type EventsHandler struct {
	events <-chan node.Event
	logger logger.Interface

	upgrader websocket.Upgrader
}

func NewEventsHandler(events <-chan node.Event, logger logger.Interface) *EventsHandler {
	return &EventsHandler{
		events: events,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Loopback-only surface; the page is served from this same origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream upgrades the connection and forwards node events as JSON frames
// until either side goes away.
func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Reader goroutine only to notice the peer closing.
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
		case ev, ok := <-h.events:
			if !ok {
				h.logger.Info("event channel closed, ending stream")
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				h.logger.Debugw("event write failed, client gone", "error", err)
				return
			}
		case <-done:
			return
		}
	}
}
