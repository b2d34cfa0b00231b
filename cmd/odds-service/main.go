package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/radieske/shark-picks/internal/odds-service/http"
	"github.com/radieske/shark-picks/internal/odds-service/oddsapi"
	"github.com/radieske/shark-picks/internal/odds-service/producer"
	"github.com/radieske/shark-picks/internal/odds-service/quota"
	"github.com/radieske/shark-picks/internal/odds-service/repo"
	"github.com/radieske/shark-picks/internal/odds-service/ws"
	"github.com/radieske/shark-picks/internal/shared/cache"
	"github.com/radieske/shark-picks/internal/shared/config"
	"github.com/radieske/shark-picks/internal/shared/db"
	"github.com/radieske/shark-picks/internal/shared/kafka"
	"github.com/radieske/shark-picks/internal/shared/logger"
	"github.com/radieske/shark-picks/internal/shared/metrics"
)

func main() {
	// carrega config
	cfg := config.LoadService("odds-service")

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))
	if cfg.OddsAPIKey == "" {
		// sobe mesmo assim: os endpoints de odds respondem 500 de configuração
		log.Warn("ODDS_API_KEY not set; odds endpoints will fail")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Métricas Prometheus
	upstreamErrors := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "odds_service_upstream_errors_total", Help: "falhas do provedor de odds por rota"}, []string{"route"})
	picksComputed := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "odds_service_picks_computed_total", Help: "picks calculados por sport"}, []string{"sport"})
	wsDelivered := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "odds_service_ws_messages_sent_total", Help: "mensagens WS entregues por sport"}, []string{"sport"})
	prometheus.MustRegister(upstreamErrors, picksComputed, wsDelivered)

	// cliente do provedor de odds
	odds := oddsapi.New(oddsapi.Options{
		BaseURL: cfg.OddsAPIBaseURL,
		APIKey:  cfg.OddsAPIKey,
		Timeout: cfg.OddsAPITimeout,
	}, log)

	api := &httpapi.API{
		Log:             log,
		Odds:            odds,
		CORSOrigins:     cfg.CORSOrigins,
		OnUpstreamError: func(route string) { upstreamErrors.WithLabelValues(route).Inc() },
		OnPicks:         func(sport string, n int) { picksComputed.WithLabelValues(sport).Add(float64(n)) },
	}

	// Redis (opcional): cota do provedor + feed WS de picks
	redisClient := setupRedis(ctx, cfg, api, odds, wsDelivered, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Postgres (opcional): histórico gravado pelo picks-archiver
	if cfg.PostgresDSN != "" {
		pg, err := db.ConnectPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Warn("postgres unavailable; pick history disabled", zap.Error(err))
		} else {
			defer pg.Close()
			api.History = &repo.ReadRepo{DB: pg}
			log.Info("postgres connected")
		}
	}

	// Kafka (opcional): publica picks_computed para o picks-archiver
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		writer := kafka.NewWriter(brokers, cfg.TopicPicksComputed)
		defer writer.Close()
		api.Publisher = producer.NewKafkaPublisher(writer, cfg.TopicPicksComputed)
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicPicksComputed))
	} else {
		log.Warn("KAFKA_BROKERS not set; picks will not be published")
	}

	// sobe servidor de métricas e health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, log, func(ctx context.Context) error {
		if redisClient == nil {
			return nil
		}
		return redisClient.Ping(ctx).Err()
	})

	apiSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("api listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("api graceful shutdown failed", zap.Error(err))
	}
	_ = metricsSrv.Shutdown(shutdownCtx)
	log.Info("odds-service stopped")
}

// setupRedis conecta no Redis e liga a cota do provedor e o feed WS.
// Sem REDIS_ADDR ou com falha de conexão devolve nil e o serviço sobe sem esses recursos.
func setupRedis(ctx context.Context, cfg config.Config, api *httpapi.API, odds *oddsapi.Client, delivered *prometheus.CounterVec, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set; usage tracking and picks feed disabled")
		return nil
	}
	r, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Warn("redis unavailable; usage tracking and picks feed disabled", zap.Error(err))
		return nil
	}
	log.Info("redis connected")

	usage := quota.New(r)
	odds.Usage = usage
	api.Usage = usage

	hub := ws.NewHub(log, allowOrigin(cfg.CORSOrigins))
	hub.OnBroadcast = func(sport string, n int) { delivered.WithLabelValues(sport).Add(float64(n)) }
	ws.StartRedisSubscriber(ctx, r, cfg.RedisPubSubChannel, hub, log)
	api.Hub = hub
	return r
}

// allowOrigin aplica ao WebSocket a mesma lista de origens do CORS
func allowOrigin(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // clientes não-browser
		}
		if _, ok := allowed["*"]; ok {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
