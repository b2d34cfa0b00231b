package oddsapi

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Usage é o snapshot de cota do provedor, lido dos headers de cada resposta
type Usage struct {
	RequestsRemaining int       `json:"requests_remaining"`
	RequestsUsed      int       `json:"requests_used"`
	RequestsLast      int       `json:"requests_last"`
	Endpoint          string    `json:"endpoint"`
	ObservedAt        time.Time `json:"observed_at"`
}

// UsageRecorder recebe cada snapshot de cota observado
type UsageRecorder interface {
	RecordUsage(ctx context.Context, u Usage) error
}

// parseUsage retorna false quando o provedor não mandou os headers de cota
func parseUsage(h http.Header) (Usage, bool) {
	remaining, okR := headerInt(h, "x-requests-remaining")
	used, okU := headerInt(h, "x-requests-used")
	if !okR && !okU {
		return Usage{}, false
	}
	last, _ := headerInt(h, "x-requests-last")
	return Usage{
		RequestsRemaining: remaining,
		RequestsUsed:      used,
		RequestsLast:      last,
	}, true
}

func headerInt(h http.Header, key string) (int, bool) {
	v := h.Get(key)
	if v == "" {
		return 0, false
	}
	// o provedor às vezes manda "499.0"
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
