package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/edgeplay-ledger/internal/core/ledger"
	"github.com/radieske/edgeplay-ledger/internal/core/model"
	"github.com/radieske/edgeplay-ledger/internal/core/seed"
	lcache "github.com/radieske/edgeplay-ledger/internal/ledger-service/cache"
	lhttp "github.com/radieske/edgeplay-ledger/internal/ledger-service/http"
	lmetrics "github.com/radieske/edgeplay-ledger/internal/ledger-service/metrics"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/notify"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/producer"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/repo"
	"github.com/radieske/edgeplay-ledger/internal/ledger-service/ws"
	sharedcache "github.com/radieske/edgeplay-ledger/internal/shared/cache"
	"github.com/radieske/edgeplay-ledger/internal/shared/config"
	"github.com/radieske/edgeplay-ledger/internal/shared/db"
	"github.com/radieske/edgeplay-ledger/internal/shared/kafka"
	"github.com/radieske/edgeplay-ledger/internal/shared/logger"
	"github.com/radieske/edgeplay-ledger/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting service", zap.String("seed", cfg.SeedSource))

	// Dados iniciais: estáticos ou lidos do Postgres
	users, matches := seed.CreateInitialUsers(), seed.CreateInitialMatches()
	order := seed.InitialUserOrder()
	if cfg.SeedSource == config.SeedPostgres {
		users, matches = loadSeedFromPostgres(ctx, log, cfg.PostgresDSN)
		order = nil // ordem por e-mail
	}

	store := ledger.New(users, matches,
		ledger.WithLogger(log.Named("ledger")),
		ledger.WithUserOrder(order...),
	)

	// Métricas Prometheus
	collectors := lmetrics.NewCollectors()
	collectors.MustRegister(prometheus.DefaultRegisterer)

	hub := ws.NewHub(log.Named("ws"), func(*http.Request) bool { return true })
	n := &notify.Notifier{Log: log, Metrics: collectors, Local: hub.Broadcast}

	// Redis: snapshot do leaderboard + Pub/Sub para o hub WebSocket
	var redisClient *redis.Client
	var board *lcache.LeaderboardCache
	if cfg.RedisAddr != "" {
		redisClient, err = sharedcache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("redis connect", zap.Error(err))
		}
		defer redisClient.Close()
		board = lcache.NewLeaderboardCache(redisClient, cfg.LeaderboardTTL, cfg.RedisPubSubChannel)
		n.Board = board
		ws.StartRedisSubscriber(ctx, redisClient, cfg.RedisPubSubChannel, hub, log)
		log.Info("redis connected", zap.String("channel", cfg.RedisPubSubChannel))
	}

	// Kafka writers (bet_settled, account_created)
	if len(kafka.Brokers(cfg.KafkaBrokers)) > 0 {
		settledW := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
		defer settledW.Close()
		createdW := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicAccountCreated)
		defer createdW.Close()
		n.Events = producer.NewKafkaPublisher(settledW, createdW)
		log.Info("kafka writers ready",
			zap.String("bet_settled", cfg.TopicBetSettled),
			zap.String("account_created", cfg.TopicAccountCreated),
		)
	}

	n.Attach(store)

	// metrics/health
	var redisPing metrics.HealthFunc
	if redisClient != nil {
		redisPing = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, metrics.Healthy(redisPing), log)

	// HTTP público
	api := lhttp.NewServer(log, store, seed.CreateTeamStats(), hub)
	if board != nil {
		api.WithSnapshots(board)
	}
	apiSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("ledger-service listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
		return apiSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("api", zap.Error(err))
	}
	log.Info("ledger-service stopped")
}

func loadSeedFromPostgres(ctx context.Context, log *zap.Logger, dsn string) (map[string]model.User, map[string]model.Match) {
	pg, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	seedRepo := repo.NewSeedRepo(pg)
	users, err := seedRepo.LoadUsers(ctx)
	if err != nil {
		log.Fatal("load seed users", zap.Error(err))
	}
	matches, err := seedRepo.LoadMatches(ctx)
	if err != nil {
		log.Fatal("load seed matches", zap.Error(err))
	}
	log.Info("seed loaded from postgres", zap.Int("users", len(users)), zap.Int("matches", len(matches)))
	return users, matches
}
