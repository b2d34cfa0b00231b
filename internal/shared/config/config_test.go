package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "odds-service")

	cfg := Load()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "9095", cfg.MetricsPort)
	assert.Equal(t, "picks_computed", cfg.TopicPicksComputed)
	assert.Equal(t, "shark_picks_broadcast", cfg.RedisPubSubChannel)
	assert.Equal(t, "https://api.the-odds-api.com", cfg.OddsAPIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.OddsAPITimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers())
}

func TestLoad_PerServicePorts(t *testing.T) {
	t.Setenv("SERVICE_NAME", "picks-archiver")
	cfg := Load()
	assert.Equal(t, "", cfg.HTTPPort)
	assert.Equal(t, "9097", cfg.MetricsPort)

	t.Setenv("SERVICE_NAME", "odds-simulator")
	cfg = Load()
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, "9094", cfg.MetricsPort)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ODDS_API_KEY", "secret")
	t.Setenv("ODDS_API_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://sharkfunded.example")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()

	assert.Equal(t, "secret", cfg.OddsAPIKey)
	assert.Equal(t, 3*time.Second, cfg.OddsAPITimeout)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers())
	assert.Equal(t, []string{"https://sharkfunded.example"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("ODDS_API_TIMEOUT", "soon")
	assert.Equal(t, 15*time.Second, Load().OddsAPITimeout)
}

func TestLoadService_UsesNameWhenUnset(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	cfg := LoadService("picks-archiver")
	assert.Equal(t, "picks-archiver", cfg.ServiceName)
	assert.Equal(t, "9097", cfg.MetricsPort)

	t.Setenv("SERVICE_NAME", "odds-simulator")
	assert.Equal(t, "odds-simulator", LoadService("picks-archiver").ServiceName)
}
