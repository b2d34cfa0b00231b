package ws

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisSubscriber_ForwardsToSubscribedClients(t *testing.T) {
	const channel = "shark_picks_broadcast"
	mr := miniredis.RunT(t)
	r := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zap.NewNop(), func(*http.Request) bool { return true })
	StartRedisSubscriber(ctx, r, channel, hub, zap.NewNop())
	require.Eventually(t, func() bool { return mr.PubSubNumSub(channel)[channel] == 1 }, 2*time.Second, 10*time.Millisecond)

	c := dial(t, hub)
	require.NoError(t, c.WriteJSON(ClientMsg{Type: "subscribe", Sport: "basketball_nba"}))
	flush(t, c)

	// payload inválido é ignorado sem derrubar o subscriber
	mr.Publish(channel, `not json`)
	mr.Publish(channel, `{"sport":"basketball_nba","payload":{"id":"e1"}}`)

	var got PicksUpdate
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, c.ReadJSON(&got))
	assert.Equal(t, "basketball_nba", got.Sport)
	assert.Equal(t, map[string]any{"id": "e1"}, got.Payload)
}
