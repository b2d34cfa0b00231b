package http

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/shark-picks/internal/odds-simulator/dto"
	"github.com/radieske/shark-picks/internal/odds-simulator/feed"
)

const monthlyQuota = 500

// Server imita a API do provedor de odds para desenvolvimento local
type Server struct {
	log        *zap.Logger
	apiKey     string
	suspendPct int

	mu   sync.Mutex // protege rnd e used
	rnd  *rand.Rand
	used int

	OnRequest func(endpoint string, status int) // métricas
}

func NewServer(log *zap.Logger, apiKey string, suspendPct int, seed int64) *Server {
	return &Server{
		log:        log,
		apiKey:     apiKey,
		suspendPct: suspendPct,
		rnd:        rand.New(rand.NewSource(seed)),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v4/sports", s.listSports)           // GET /v4/sports?apiKey=
	r.Get("/v4/sports/{sport}/odds", s.getOdds)  // GET /v4/sports/{sport}/odds?apiKey=&regions=...
	r.Get("/v4/sports/{sport}/odds/", s.getOdds) // o provedor aceita a barra final
	return r
}

func (s *Server) listSports(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r, "sports") {
		return
	}
	s.reply(w, "sports", http.StatusOK, feed.Sports())
}

func (s *Server) getOdds(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r, "odds") {
		return
	}
	sport := chi.URLParam(r, "sport")

	s.mu.Lock()
	games, ok := feed.Generate(sport, s.rnd, time.Now(), s.suspendPct)
	s.mu.Unlock()

	if !ok {
		s.log.Info("unknown sport requested", zap.String("sport", sport))
		s.reply(w, "odds", http.StatusNotFound, dto.ErrorResp{
			Message:   "Unknown sport. Check the list of sports at /v4/sports",
			ErrorCode: dto.ErrorCodeUnknownSport,
		})
		return
	}
	s.reply(w, "odds", http.StatusOK, games)
}

// authorize valida o apiKey da query string como o provedor faz
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, endpoint string) bool {
	key := r.URL.Query().Get("apiKey")
	switch {
	case key == "":
		s.reply(w, endpoint, http.StatusUnauthorized, dto.ErrorResp{Message: "API key is missing", ErrorCode: dto.ErrorCodeMissingAPIKey})
		return false
	case s.apiKey != "" && key != s.apiKey:
		s.reply(w, endpoint, http.StatusUnauthorized, dto.ErrorResp{Message: "API key is not valid", ErrorCode: dto.ErrorCodeInvalidAPIKey})
		return false
	}
	return true
}

// reply grava a resposta com os headers de cota (x-requests-*)
func (s *Server) reply(w http.ResponseWriter, endpoint string, status int, v any) {
	cost := 0
	if status == http.StatusOK && endpoint == "odds" {
		cost = 1 // 1 região x 1 mercado
	}
	s.mu.Lock()
	s.used += cost
	used := s.used
	s.mu.Unlock()

	remaining := monthlyQuota - used
	if remaining < 0 {
		remaining = 0
	}
	w.Header().Set("x-requests-used", strconv.Itoa(used))
	w.Header().Set("x-requests-remaining", strconv.Itoa(remaining))
	w.Header().Set("x-requests-last", strconv.Itoa(cost))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)

	if s.OnRequest != nil {
		s.OnRequest(endpoint, status)
	}
}
