package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/shark-picks/internal/odds-service/oddsapi"
	"github.com/radieske/shark-picks/internal/odds-service/picks"
	"github.com/radieske/shark-picks/pkg/contracts/events"
)

const (
	msgMissingKey   = "Odds API key is not configured"
	msgPicksFailed  = "Failed to fetch shark picks"
	msgNoUsage      = "no usage recorded"
	msgNoHistory    = "pick history is not enabled"
	publishDeadline = 2 * time.Second
)

// getOdds repassa as odds do provedor sem alteração
func (a *API) getOdds(w http.ResponseWriter, r *http.Request) {
	sport := chi.URLParam(r, "sport")

	body, err := a.Odds.Odds(r.Context(), sport)
	if err != nil {
		a.upstreamError(w, r, "odds", err)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

// listSports repassa a lista de sports do provedor
func (a *API) listSports(w http.ResponseWriter, r *http.Request) {
	body, err := a.Odds.Sports(r.Context())
	if err != nil {
		a.upstreamError(w, r, "sports", err)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

// upstreamError traduz falhas do provedor:
// sem API key -> 500; sport desconhecido -> 400 com a lista de sports válidos; resto -> 500
func (a *API) upstreamError(w http.ResponseWriter, r *http.Request, route string, err error) {
	if a.OnUpstreamError != nil {
		a.OnUpstreamError(route)
	}

	if errors.Is(err, oddsapi.ErrMissingAPIKey) {
		a.Log.Error("odds api key missing", zap.String("route", route))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msgMissingKey})
		return
	}

	apiErr, ok := oddsapi.AsAPIError(err)
	if ok && apiErr.IsUnknownSport() && route == "odds" {
		a.Log.Warn("unknown sport requested", zap.String("sport", chi.URLParam(r, "sport")))
		valid, kerr := a.Odds.SportKeys(r.Context())
		if kerr != nil {
			a.Log.Warn("valid sports lookup failed", zap.Error(kerr))
			valid = []string{}
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":       apiErr.Detail(),
			"validSports": valid,
		})
		return
	}

	a.Log.Error("odds api request failed", zap.String("route", route), zap.Error(err))
	if ok {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": apiErr.Detail()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// getSharkPicks calcula o favorito de cada jogo do sport
func (a *API) getSharkPicks(w http.ResponseWriter, r *http.Request) {
	sport := chi.URLParam(r, "sport")

	body, err := a.Odds.Odds(r.Context(), sport)
	if err != nil {
		if a.OnUpstreamError != nil {
			a.OnUpstreamError("shark-picks")
		}
		a.Log.Error("shark picks: fetch odds failed", zap.String("sport", sport), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msgPicksFailed})
		return
	}

	var games any
	if err := json.Unmarshal(body, &games); err != nil {
		a.Log.Error("shark picks: decode odds failed", zap.String("sport", sport), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msgPicksFailed})
		return
	}

	res := picks.Build(sport, games, func(p picks.Pick) {
		a.Log.Info("shark pick",
			zap.String("sport", sport),
			zap.String("matchup", p.Matchup),
			zap.String("pick", p.RecommendedPick),
			zap.Float64("odds", p.BestOdds),
			zap.String("bookmaker", p.Bookmaker),
		)
	})

	if len(res.Picks) > 0 {
		if a.OnPicks != nil {
			a.OnPicks(sport, len(res.Picks))
		}
		a.publish(r.Context(), sport, res.Picks)
	}

	writeJSON(w, http.StatusOK, res.Payload())
}

// publish emite o evento picks_computed; falha aqui não muda a resposta
func (a *API) publish(ctx context.Context, sport string, ps []picks.Pick) {
	if a.Publisher == nil {
		return
	}
	ev := events.PicksComputed{
		ID:         uuid.NewString(),
		Sport:      sport,
		Picks:      make([]events.Pick, 0, len(ps)),
		ComputedAt: time.Now().UTC(),
		Source:     "odds-service",
	}
	for _, p := range ps {
		ev.Picks = append(ev.Picks, events.Pick{
			Matchup:         p.Matchup,
			RecommendedPick: p.RecommendedPick,
			BestOdds:        p.BestOdds,
			Bookmaker:       p.Bookmaker,
			StartTime:       p.StartTime,
		})
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishDeadline)
	defer cancel()
	if err := a.Publisher.PublishPicks(pctx, ev); err != nil {
		a.Log.Warn("publish picks failed", zap.String("sport", sport), zap.Error(err))
	}
}

// getUsage retorna o último snapshot de cota do provedor
func (a *API) getUsage(w http.ResponseWriter, r *http.Request) {
	if a.Usage == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": msgNoUsage})
		return
	}
	u, ok, err := a.Usage.LastUsage(r.Context())
	if err != nil {
		a.Log.Error("read odds api usage failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": msgNoUsage})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// getHistory lista os picks arquivados de um sport (?limit=N)
func (a *API) getHistory(w http.ResponseWriter, r *http.Request) {
	if a.History == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": msgNoHistory})
		return
	}
	sport := chi.URLParam(r, "sport")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	out, err := a.History.ListHistory(r.Context(), sport, limit)
	if err != nil {
		a.Log.Error("list pick history failed", zap.String("sport", sport), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}
