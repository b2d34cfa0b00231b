package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/shark-picks/pkg/contracts/events"
)

// MessageReader é o reader do consumer group; o offset só é confirmado via CommitMessages
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type PickStore interface {
	InsertPicks(ctx context.Context, e events.PicksComputed) error
}

var errInvalidEvent = errors.New("invalid picks event")

const defaultRetryBackoff = time.Second

// Processor consome eventos picks_computed do Kafka e persiste no banco
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log    *zap.Logger
	Reader MessageReader
	Repo   PickStore

	RetryBackoff time.Duration // espera entre tentativas de gravação; zero = 1s

	OnConsumed func()       // métricas (counter++)
	OnPersist  func(int)    // métricas; recebe a quantidade de picks gravados
	OnError    func(string) // métricas por fase

	// Após persistir, repassa o evento (ex.: broadcast Redis -> WS)
	OnAfterPersist func(events.PicksComputed)
}

// Run inicia o loop principal de consumo e processamento das mensagens Kafka.
// Falha de gravação é repetida até dar certo; o offset só avança depois disso.
// Mensagens inválidas são descartadas (e confirmadas).
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka fetch failed", zap.Error(err))
			p.fail("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}

		if err := p.handleWithRetry(ctx, m); err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // sem commit: a mensagem volta na próxima subida
			}
			p.Log.Warn("picks event dropped",
				zap.Int64("offset", m.Offset),
				zap.Int("partition", m.Partition),
				zap.Error(err),
			)
		}

		if err := p.Reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Log.Warn("kafka commit failed", zap.Int64("offset", m.Offset), zap.Error(err))
			p.fail("commit")
		}
	}
}

// handleWithRetry repete Handle enquanto o erro não for de evento inválido
func (p *Processor) handleWithRetry(ctx context.Context, m kafka.Message) error {
	backoff := p.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	for {
		err := p.Handle(ctx, m.Value)
		if err == nil || errors.Is(err, errInvalidEvent) {
			return err
		}
		p.Log.Warn("persist picks failed; retrying",
			zap.Int64("offset", m.Offset),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// Handle processa uma única mensagem; erros são registrados por fase
func (p *Processor) Handle(ctx context.Context, value []byte) error {
	var ev events.PicksComputed
	if err := json.Unmarshal(value, &ev); err != nil {
		p.fail("decode")
		return fmt.Errorf("%w: %v", errInvalidEvent, err)
	}
	if ev.ID == "" || ev.Sport == "" {
		p.fail("decode")
		return errInvalidEvent
	}
	if len(ev.Picks) == 0 {
		return nil // nada para auditar
	}

	if err := p.Repo.InsertPicks(ctx, ev); err != nil {
		p.fail("db_insert")
		return err
	}
	if p.OnPersist != nil {
		p.OnPersist(len(ev.Picks))
	}

	if p.OnAfterPersist != nil {
		p.OnAfterPersist(ev)
	}
	return nil
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}
