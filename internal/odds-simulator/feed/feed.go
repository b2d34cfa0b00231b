package feed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/radieske/shark-picks/internal/odds-simulator/dto"
)

type fixture struct {
	Home, Away string
	Draw       bool // mercados 1x2 (futebol) têm empate
}

type league struct {
	Sport    dto.Sport
	Fixtures []fixture
}

// Catálogo fixo de ligas/partidas simuladas para geração de odds
var catalog = []league{
	{
		Sport: dto.Sport{Key: "basketball_nba", Group: "Basketball", Title: "NBA", Description: "US Basketball", Active: true},
		Fixtures: []fixture{
			{Home: "Los Angeles Lakers", Away: "Boston Celtics"},
			{Home: "Miami Heat", Away: "New York Knicks"},
			{Home: "Denver Nuggets", Away: "Phoenix Suns"},
		},
	},
	{
		Sport: dto.Sport{Key: "americanfootball_nfl", Group: "American Football", Title: "NFL", Description: "US Football", Active: true},
		Fixtures: []fixture{
			{Home: "Kansas City Chiefs", Away: "Buffalo Bills"},
			{Home: "Dallas Cowboys", Away: "Philadelphia Eagles"},
		},
	},
	{
		Sport: dto.Sport{Key: "soccer_brazil_campeonato", Group: "Soccer", Title: "Brazil Série A", Description: "Brasileirão", Active: true},
		Fixtures: []fixture{
			{Home: "Flamengo", Away: "Palmeiras", Draw: true},
			{Home: "Grêmio", Away: "Internacional", Draw: true},
			{Home: "Corinthians", Away: "Santos", Draw: true},
		},
	},
}

var bookmakers = []struct{ Key, Title string }{
	{"draftkings", "DraftKings"},
	{"fanduel", "FanDuel"},
	{"betmgm", "BetMGM"},
	{"williamhill_us", "Caesars"},
}

// Sports lista o catálogo no formato de /v4/sports
func Sports() []dto.Sport {
	out := make([]dto.Sport, 0, len(catalog))
	for _, l := range catalog {
		out = append(out, l.Sport)
	}
	return out
}

// Generate gera odds h2h decimais para todas as partidas do sport.
// Retorna false quando o sport não existe no catálogo.
// suspendPct (0-100) é a chance de uma casa vir sem mercados, como o provedor faz
// com linhas suspensas.
func Generate(sport string, rnd *rand.Rand, now time.Time, suspendPct int) ([]dto.Game, bool) {
	var l *league
	for i := range catalog {
		if catalog[i].Sport.Key == sport {
			l = &catalog[i]
			break
		}
	}
	if l == nil {
		return nil, false
	}

	ts := now.UTC().Format(time.RFC3339)
	games := make([]dto.Game, 0, len(l.Fixtures))
	for i, f := range l.Fixtures {
		g := dto.Game{
			ID:           fmt.Sprintf("sim_%s_%03d", sport, i+1),
			SportKey:     sport,
			SportTitle:   l.Sport.Title,
			CommenceTime: now.UTC().Add(time.Duration(i+1) * 3 * time.Hour).Truncate(time.Minute).Format(time.RFC3339),
			HomeTeam:     f.Home,
			AwayTeam:     f.Away,
			Bookmakers:   make([]dto.Bookmaker, 0, len(bookmakers)),
		}
		for _, b := range bookmakers {
			bm := dto.Bookmaker{Key: b.Key, Title: b.Title, LastUpdate: ts, Markets: []dto.Market{}}
			if rnd.Intn(100) >= suspendPct {
				bm.Markets = append(bm.Markets, dto.Market{Key: "h2h", LastUpdate: ts, Outcomes: outcomes(f, rnd)})
			}
			g.Bookmakers = append(g.Bookmakers, bm)
		}
		games = append(games, g)
	}
	return games, true
}

func outcomes(f fixture, rnd *rand.Rand) []dto.Outcome {
	out := []dto.Outcome{
		{Name: f.Home, Price: price(rnd, 1.30, 3.50)},
		{Name: f.Away, Price: price(rnd, 1.60, 5.00)},
	}
	if f.Draw {
		out = append(out, dto.Outcome{Name: "Draw", Price: price(rnd, 2.80, 4.50)})
	}
	return out
}

// gera odd entre min e max com 2 casas decimais
func price(rnd *rand.Rand, min, max float64) float64 {
	return math.Round((rnd.Float64()*(max-min)+min)*100) / 100
}
