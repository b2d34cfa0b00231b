package feed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerate_UnknownSport(t *testing.T) {
	_, ok := Generate("curling", rand.New(rand.NewSource(1)), now, 0)
	assert.False(t, ok)
}

func TestGenerate_ShapeAndRanges(t *testing.T) {
	games, ok := Generate("soccer_brazil_campeonato", rand.New(rand.NewSource(1)), now, 0)
	require.True(t, ok)
	require.Len(t, games, 3)

	g := games[0]
	assert.Equal(t, "sim_soccer_brazil_campeonato_001", g.ID)
	assert.Equal(t, "Flamengo", g.HomeTeam)
	assert.Equal(t, "2024-03-01T15:00:00Z", g.CommenceTime)
	require.Len(t, g.Bookmakers, len(bookmakers))

	for _, b := range g.Bookmakers {
		require.Len(t, b.Markets, 1)
		assert.Equal(t, "h2h", b.Markets[0].Key)
		require.Len(t, b.Markets[0].Outcomes, 3)
		for _, o := range b.Markets[0].Outcomes {
			assert.GreaterOrEqual(t, o.Price, 1.30)
			assert.LessOrEqual(t, o.Price, 5.00)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _ := Generate("basketball_nba", rand.New(rand.NewSource(42)), now, 25)
	b, _ := Generate("basketball_nba", rand.New(rand.NewSource(42)), now, 25)
	assert.Equal(t, a, b)
}

func TestGenerate_AllSuspended(t *testing.T) {
	games, ok := Generate("americanfootball_nfl", rand.New(rand.NewSource(1)), now, 100)
	require.True(t, ok)
	for _, g := range games {
		for _, b := range g.Bookmakers {
			assert.Empty(t, b.Markets)
		}
	}
}

func TestSports(t *testing.T) {
	keys := []string{}
	for _, s := range Sports() {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"basketball_nba", "americanfootball_nfl", "soccer_brazil_campeonato"}, keys)
}
