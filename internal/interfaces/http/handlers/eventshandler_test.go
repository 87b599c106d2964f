package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybridge/internal/interfaces/http/handlers/testutil"
	"skybridge/internal/node"
)

func TestStreamDeliversEventsInOrder(t *testing.T) {
	events := make(chan node.Event, 8)
	h := NewEventsHandler(events, testutil.NewMockLogger())

	engine := gin.New()
	engine.GET("/events", h.Stream)

	srv := httptest.NewServer(engine)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	events <- node.NewEvent(node.EventSweepStarted, 1, "sweep 1")
	events <- node.NewEvent(node.EventNodeDiscovered, 5, "server")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	var first, second node.Event
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))

	assert.Equal(t, node.EventSweepStarted, first.Type)
	assert.Equal(t, node.EventNodeDiscovered, second.Type)
	assert.Equal(t, node.ID(5), second.Node)
}

func TestStreamEndsWhenEventChannelCloses(t *testing.T) {
	events := make(chan node.Event)
	h := NewEventsHandler(events, testutil.NewMockLogger())

	engine := gin.New()
	engine.GET("/events", h.Stream)

	srv := httptest.NewServer(engine)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	close(events)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "server closes the connection once the stream ends")
}
