package picks

import "fmt"

// Pick é o melhor outcome (menor odd decimal) de um jogo entre todas as casas
type Pick struct {
	Matchup         string  `json:"matchup"`
	RecommendedPick string  `json:"recommended_pick"`
	BestOdds        float64 `json:"best_odds"`
	Bookmaker       string  `json:"bookmaker"`
	StartTime       string  `json:"start_time"`
}

type outcome struct {
	name  string
	price float64
}

// SelectBest reduz um jogo (JSON decodificado do provedor) ao outcome de menor
// preço entre todas as casas, olhando só o primeiro mercado de cada casa.
// Empates ficam com a primeira ocorrência. Dados malformados viram nil/skip.
func SelectBest(game any) *Pick {
	g, ok := game.(map[string]any)
	if !ok {
		return nil
	}
	bookmakers, ok := g["bookmakers"].([]any)
	if !ok || len(bookmakers) == 0 {
		return nil
	}

	var (
		best          *outcome
		bestBookmaker string
	)
	for _, b := range bookmakers {
		bm, _ := b.(map[string]any)

		local, ok := favorite(validOutcomes(firstMarketOutcomes(bm)))
		if !ok {
			continue
		}
		if best == nil || local.price < best.price {
			best = &local
			bestBookmaker = str(bm["title"])
		}
	}
	if best == nil {
		return nil
	}

	return &Pick{
		Matchup:         fmt.Sprintf("%s vs %s", str(g["home_team"]), str(g["away_team"])),
		RecommendedPick: best.name,
		BestOdds:        best.price,
		Bookmaker:       bestBookmaker,
		StartTime:       str(g["commence_time"]),
	}
}

// firstMarketOutcomes lê bookmaker.markets[0].outcomes; qualquer forma inesperada vira lista vazia
func firstMarketOutcomes(bm map[string]any) []any {
	markets, ok := bm["markets"].([]any)
	if !ok || len(markets) == 0 {
		return nil
	}
	m, ok := markets[0].(map[string]any)
	if !ok {
		return nil
	}
	outcomes, _ := m["outcomes"].([]any)
	return outcomes
}

// validOutcomes mantém só outcomes com price numérico e name string
func validOutcomes(raw []any) []outcome {
	out := make([]outcome, 0, len(raw))
	for _, r := range raw {
		o, ok := r.(map[string]any)
		if !ok {
			continue
		}
		price, ok := o["price"].(float64) // encoding/json decodifica todo número como float64
		if !ok {
			continue
		}
		name, ok := o["name"].(string)
		if !ok {
			continue
		}
		out = append(out, outcome{name: name, price: price})
	}
	return out
}

// favorite é o menor preço da lista; "<" estrito mantém o primeiro em caso de empate
func favorite(outcomes []outcome) (outcome, bool) {
	if len(outcomes) == 0 {
		return outcome{}, false
	}
	fav := outcomes[0]
	for _, o := range outcomes[1:] {
		if o.price < fav.price {
			fav = o
		}
	}
	return fav, true
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
