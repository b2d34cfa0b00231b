package quota

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/shark-picks/internal/odds-service/oddsapi"
)

const (
	usageKey = "oddsapi:usage"
	usageTTL = 24 * time.Hour
)

// UsageStore guarda no Redis o último snapshot de cota do provedor de odds.
// Só a cota é armazenada; as odds nunca passam por cache.
type UsageStore struct{ R *redis.Client }

func New(r *redis.Client) *UsageStore { return &UsageStore{R: r} }

func (s *UsageStore) RecordUsage(ctx context.Context, u oddsapi.Usage) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, usageKey, b, usageTTL).Err()
}

// LastUsage retorna false quando nada foi registrado (ou expirou)
func (s *UsageStore) LastUsage(ctx context.Context) (oddsapi.Usage, bool, error) {
	var u oddsapi.Usage
	b, err := s.R.Get(ctx, usageKey).Bytes()
	if err == redis.Nil {
		return u, false, nil
	}
	if err != nil {
		return u, false, err
	}
	return u, true, json.Unmarshal(b, &u)
}
