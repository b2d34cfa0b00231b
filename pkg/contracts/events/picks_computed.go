package events

import "time"

// Pick publicado dentro do evento "picks_computed"
type Pick struct {
	Matchup         string  `json:"matchup"`
	RecommendedPick string  `json:"recommended_pick"`
	BestOdds        float64 `json:"best_odds"`
	Bookmaker       string  `json:"bookmaker"`
	StartTime       string  `json:"start_time"`
}

// Evento publicado no tópico "picks_computed" a cada cálculo de Shark Picks
type PicksComputed struct {
	ID         string    `json:"id"` // uuid, usado para idempotência no archiver
	Sport      string    `json:"sport"`
	Picks      []Pick    `json:"picks"`
	ComputedAt time.Time `json:"computed_at"`
	Source     string    `json:"source"` // "odds-service"
}
