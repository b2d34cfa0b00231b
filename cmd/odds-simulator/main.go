package main

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	simhttp "github.com/radieske/shark-picks/internal/odds-simulator/http"
	"github.com/radieske/shark-picks/internal/shared/config"
	"github.com/radieske/shark-picks/internal/shared/logger"
	"github.com/radieske/shark-picks/internal/shared/metrics"
)

func main() {
	cfg := config.LoadService("odds-simulator")
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// % de casas sem mercado (linhas suspensas) em cada resposta
	suspendPct, _ := strconv.Atoi(os.Getenv("SIMULATOR_SUSPEND_PCT"))

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odds_simulator_requests_total",
		Help: "Requests servidos por endpoint e status",
	}, []string{"endpoint", "status"})
	prometheus.MustRegister(requests)

	// ODDS_API_KEY vazio aceita qualquer apiKey não-vazio
	s := simhttp.NewServer(log, cfg.OddsAPIKey, suspendPct, time.Now().UnixNano())
	s.OnRequest = func(endpoint string, status int) {
		requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	}

	// ==== MUX DE MÉTRICAS (/healthz, /metrics)
	metrics.StartMetricsServer(cfg.MetricsPort, log, nil)

	// Servidor público (API compatível com /v4/sports)
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("odds simulator running",
		zap.String("addr", srv.Addr),
		zap.String("paths", "/v4/sports,/v4/sports/{sport}/odds"),
		zap.Int("suspend_pct", suspendPct),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("public server error", zap.Error(err))
	}
}
