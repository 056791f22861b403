package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/edgeplay-ledger/internal/ledger-audit/consumer"
	"github.com/radieske/edgeplay-ledger/internal/ledger-audit/repository"
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

	// o worker só existe para consumir o Kafka
	if len(kafka.Brokers(cfg.KafkaBrokers)) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}

	// Conexão com Postgres para a trilha de auditoria
	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Kafka consumer (consumer group ledger-audit) e writer da DLQ
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetSettled, cfg.AuditGroupID)
	defer reader.Close()
	dlqWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettledDLQ)
	defer dlqWriter.Close()

	// Métricas Prometheus para monitoramento do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_audit_messages_consumed_total", Help: "mensagens consumidas"})
	persist := prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_audit_db_writes_total", Help: "linhas gravadas em bet_audit"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ledger_audit_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, persist, errorsBy)

	proc := &consumer.Processor{
		Log:  log,
		Repo: repository.NewPostgresRepo(pg),
		Next: func(ctx context.Context) ([]byte, []byte, error) { return kafka.ReadNext(ctx, reader) },
		DLQ: func(ctx context.Context, key, value []byte) error {
			return kafka.WriteJSON(ctx, dlqWriter, string(key), value)
		},
		OnConsumed: func() { consumed.Inc() },
		OnPersist:  func() { persist.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, metrics.Healthy(pg.PingContext), log)
	defer metricsSrv.Close()

	log.Info("ledger-audit-worker started",
		zap.String("consume", cfg.TopicBetSettled),
		zap.String("group", cfg.AuditGroupID),
	)
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("ledger-audit-worker stopped")
}
