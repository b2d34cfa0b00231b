package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/radieske/shark-picks/internal/odds-service/dto"
	"github.com/radieske/shark-picks/internal/odds-service/oddsapi"
	"github.com/radieske/shark-picks/internal/odds-service/ws"
	"github.com/radieske/shark-picks/pkg/contracts/events"
)

// OddsSource é o provedor de odds (oddsapi.Client em produção)
type OddsSource interface {
	Odds(ctx context.Context, sport string) ([]byte, error)
	Sports(ctx context.Context) ([]byte, error)
	SportKeys(ctx context.Context) ([]string, error)
}

type UsageReader interface {
	LastUsage(ctx context.Context) (oddsapi.Usage, bool, error)
}

type PicksPublisher interface {
	PublishPicks(ctx context.Context, e events.PicksComputed) error
}

// HistoryReader lê o histórico arquivado (repo.ReadRepo em produção)
type HistoryReader interface {
	ListHistory(ctx context.Context, sport string, limit int) ([]dto.HistoryPick, error)
}

// API expõe os endpoints REST de odds e Shark Picks.
// Usage, Publisher, History e Hub são opcionais (nil desativa o recurso).
type API struct {
	Log       *zap.Logger
	Odds      OddsSource
	Usage     UsageReader
	Publisher PicksPublisher
	History   HistoryReader
	Hub       *ws.Hub

	CORSOrigins []string

	OnUpstreamError func(route string)            // métricas
	OnPicks         func(sport string, count int) // métricas
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(a.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", a.health)

		r.Get("/odds/sports", a.listSports) // Lista sports do provedor
		r.Get("/odds/usage", a.getUsage)    // Cota consumida no provedor
		r.Get("/odds/{sport}", a.getOdds)   // Odds h2h de um sport

		r.Get("/shark-picks/{sport}", a.getSharkPicks)      // Melhor pick por jogo
		r.Get("/shark-picks/{sport}/history", a.getHistory) // Picks já arquivados
	})

	if a.Hub != nil {
		r.Get("/ws/picks", a.Hub.HandleWS)
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRaw repassa um corpo JSON já serializado (resposta do provedor)
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
