package dto

// HistoryPick representa um Shark Pick já arquivado em pick_history
type HistoryPick struct {
	EventID         string  `json:"event_id"`
	Sport           string  `json:"sport"`
	Matchup         string  `json:"matchup"`
	RecommendedPick string  `json:"recommended_pick"`
	BestOdds        float64 `json:"best_odds"`
	Bookmaker       string  `json:"bookmaker"`
	StartTime       string  `json:"start_time"`
	ComputedAt      string  `json:"computed_at"`
}
