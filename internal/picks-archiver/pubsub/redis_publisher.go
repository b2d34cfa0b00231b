package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/shark-picks/pkg/contracts/events"
)

type RedisBroadcaster struct {
	r       *redis.Client
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel}
}

// Payload padrão para o WS do odds-service (ver ws.PicksUpdate)
type WSUpdate struct {
	Sport   string      `json:"sport"`
	Payload interface{} `json:"payload"`
}

// BroadcastPicks envia o evento já persistido para os clientes WS do sport
func (b *RedisBroadcaster) BroadcastPicks(ctx context.Context, e events.PicksComputed) error {
	msg, err := json.Marshal(WSUpdate{Sport: e.Sport, Payload: e})
	if err != nil {
		return err
	}
	return b.r.Publish(ctx, b.channel, msg).Err()
}
