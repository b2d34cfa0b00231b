package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/shark-picks/pkg/contracts/events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher publica os picks calculados no tópico picks_computed
type KafkaPublisher struct {
	Writer messageWriter
	Topic  string
}

func NewKafkaPublisher(w *kafka.Writer, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

// PublishPicks usa o sport como chave para manter a ordem por sport na partição
func (p *KafkaPublisher) PublishPicks(ctx context.Context, e events.PicksComputed) error {
	if e.ComputedAt.IsZero() {
		e.ComputedAt = time.Now().UTC()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Sport),
		Value: b,
		Time:  e.ComputedAt,
	})
}
