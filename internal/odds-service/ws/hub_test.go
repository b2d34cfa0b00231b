package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// ping/pong garante que as mensagens anteriores já foram processadas pelo hub
func flush(t *testing.T, c *websocket.Conn) {
	t.Helper()
	require.NoError(t, c.WriteJSON(ClientMsg{Type: "ping"}))
	var resp map[string]string
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, c.ReadJSON(&resp))
	require.Equal(t, "pong", resp["type"])
}

func TestHub_SubscribeAndBroadcast(t *testing.T) {
	hub := NewHub(zap.NewNop(), func(*http.Request) bool { return true })
	var delivered int
	hub.OnBroadcast = func(_ string, n int) { delivered = n }

	c := dial(t, hub)
	require.NoError(t, c.WriteJSON(ClientMsg{Type: "subscribe", Sport: "basketball_nba"}))
	flush(t, c)
	assert.Equal(t, 1, hub.Subscribers("basketball_nba"))

	hub.Broadcast(PicksUpdate{Sport: "americanfootball_nfl", Payload: "ignored"})
	hub.Broadcast(PicksUpdate{Sport: "basketball_nba", Payload: map[string]any{"picks": 2}})

	var got PicksUpdate
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, "basketball_nba", got.Sport)
	assert.Equal(t, map[string]any{"picks": float64(2)}, got.Payload)
	assert.Equal(t, 1, delivered)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub(zap.NewNop(), func(*http.Request) bool { return true })

	c := dial(t, hub)
	require.NoError(t, c.WriteJSON(ClientMsg{Type: "subscribe", Sport: "basketball_nba"}))
	require.NoError(t, c.WriteJSON(ClientMsg{Type: "unsubscribe", Sport: "basketball_nba"}))
	flush(t, c)

	assert.Equal(t, 0, hub.Subscribers("basketball_nba"))
}

func TestHub_SubscribeRequiresSport(t *testing.T) {
	hub := NewHub(zap.NewNop(), func(*http.Request) bool { return true })

	c := dial(t, hub)
	require.NoError(t, c.WriteJSON(ClientMsg{Type: "subscribe"}))

	var resp map[string]string
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, c.ReadJSON(&resp))
	assert.Equal(t, "error", resp["type"])
}
