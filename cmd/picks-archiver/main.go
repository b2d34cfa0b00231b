package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/shark-picks/internal/picks-archiver/consumer"
	"github.com/radieske/shark-picks/internal/picks-archiver/pubsub"
	"github.com/radieske/shark-picks/internal/picks-archiver/repository"
	sharedcache "github.com/radieske/shark-picks/internal/shared/cache"
	"github.com/radieske/shark-picks/internal/shared/config"
	"github.com/radieske/shark-picks/internal/shared/db"
	"github.com/radieske/shark-picks/internal/shared/kafka"
	"github.com/radieske/shark-picks/internal/shared/logger"
	"github.com/radieske/shark-picks/internal/shared/metrics"
	"github.com/radieske/shark-picks/pkg/contracts/events"
	"github.com/radieske/shark-picks/pkg/contracts/topics"
)

func main() {
	cfg := config.LoadService("picks-archiver")
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositório do histórico de picks; garante a tabela na subida
	repo := repository.NewPostgresRepo(pg)
	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.EnsureSchema(schemaCtx); err != nil {
		log.Fatal("ensure schema", zap.Error(err))
	}
	schemaCancel()

	// Configura o consumer Kafka (consumer group picks-archiver)
	reader := kafka.NewReader(cfg.Brokers(), cfg.TopicPicksComputed, topics.PicksArchiverGroup)
	defer reader.Close()

	// Métricas Prometheus para monitoramento do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "picks_archiver_messages_consumed_total", Help: "mensagens consumidas"})
	persisted := prometheus.NewCounter(prometheus.CounterOpts{Name: "picks_archiver_picks_persisted_total", Help: "picks gravados em pick_history"})
	broadcasts := prometheus.NewCounter(prometheus.CounterOpts{Name: "picks_archiver_broadcasts_total", Help: "eventos enviados ao Redis Pub/Sub"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "picks_archiver_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, persisted, broadcasts, errorsBy)

	// Broadcaster para o feed WebSocket do odds-service
	broadcaster := pubsub.NewRedisBroadcaster(redisClient, cfg.RedisPubSubChannel)

	proc := &consumer.Processor{
		Log:        log,
		Reader:     reader,
		Repo:       repo,
		OnConsumed: func() { consumed.Inc() },
		OnPersist:  func(n int) { persisted.Add(float64(n)) },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },

		// Após persistir, envia os picks para os clientes WS via Redis Pub/Sub
		OnAfterPersist: func(ev events.PicksComputed) {
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := broadcaster.BroadcastPicks(ctx, ev); err != nil {
				log.Warn("ws broadcast publish failed", zap.Error(err))
				errorsBy.WithLabelValues("broadcast").Inc()
				return
			}
			broadcasts.Inc()
		},
	}

	// Servidor HTTP para métricas e health check
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, log, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("picks-archiver started", zap.String("topic", cfg.TopicPicksComputed))
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = metricsSrv.Shutdown(shutdownCtx)
	log.Info("picks-archiver stopped")
}
