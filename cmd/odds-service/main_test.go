package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/radieske/shark-picks/internal/odds-service/http"
	"github.com/radieske/shark-picks/internal/odds-service/oddsapi"
	"github.com/radieske/shark-picks/internal/shared/config"
)

func newWiring() (*httpapi.API, *oddsapi.Client, *prometheus.CounterVec) {
	log := zap.NewNop()
	odds := oddsapi.New(oddsapi.Options{BaseURL: "http://127.0.0.1:1", APIKey: "k"}, log)
	api := &httpapi.API{Log: log, Odds: odds}
	delivered := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_ws_sent_total"}, []string{"sport"})
	return api, odds, delivered
}

func TestSetupRedis_UnreachableKeepsServiceUp(t *testing.T) {
	api, odds, delivered := newWiring()

	r := setupRedis(context.Background(), config.Config{RedisAddr: "127.0.0.1:1"}, api, odds, delivered, zap.NewNop())

	assert.Nil(t, r)
	assert.Nil(t, api.Usage)
	assert.Nil(t, api.Hub)
	assert.Nil(t, odds.Usage)

	w := httptest.NewRecorder()
	api.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRedis_EmptyAddrDisables(t *testing.T) {
	api, odds, delivered := newWiring()

	assert.Nil(t, setupRedis(context.Background(), config.Config{}, api, odds, delivered, zap.NewNop()))
	assert.Nil(t, api.Hub)
}

func TestSetupRedis_WiresUsageAndFeed(t *testing.T) {
	mr := miniredis.RunT(t)
	api, odds, delivered := newWiring()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := setupRedis(ctx, config.Config{RedisAddr: mr.Addr(), RedisPubSubChannel: "picks"}, api, odds, delivered, zap.NewNop())
	require.NotNil(t, r)
	t.Cleanup(func() { _ = r.Close() })

	assert.NotNil(t, api.Usage)
	assert.NotNil(t, api.Hub)
	assert.NotNil(t, odds.Usage)
}
