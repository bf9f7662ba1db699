// Command server wires the hiring and onboarding services behind one HTTP
// server. Business logic lives in the internal packages; main only selects
// backends from configuration and manages the process lifecycle.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"hireflow/internal/audit"
	"hireflow/internal/candidate"
	candidatehandler "hireflow/internal/candidate/handler"
	"hireflow/internal/docstore"
	"hireflow/internal/eventlog"
	httpapi "hireflow/internal/http"
	"hireflow/internal/onboarding"
	onboardinghandler "hireflow/internal/onboarding/handler"
	"hireflow/internal/platform/config"
	"hireflow/internal/platform/httpserver"
	"hireflow/internal/platform/logger"
	"hireflow/internal/platform/metrics"
	platformredis "hireflow/internal/platform/redis"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	store, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		log.Error("event store init failed", "store", cfg.StoreKind, "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	publisher := audit.NewPublisher(cfg.AuditBuffer, m)
	sink, sinkClose, err := newAuditSink(cfg, log)
	if err != nil {
		log.Error("audit sink init failed", "error", err.Error())
		os.Exit(1)
	}
	defer sinkClose()
	worker := audit.NewWorker(sink, publisher.Inbox(), log)

	candidateOpts := []candidate.Option{
		candidate.WithMetrics(m),
		candidate.WithAudit(publisher, cfg.UploadActor),
	}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		candidateOpts = append(candidateOpts, candidate.WithSequencer(candidate.NewRedisSequencer(redisClient.Client)))
		log.Info("redis sequencer enabled")
	}

	candidates := candidate.NewService(store, log, candidateOpts...)
	onboardingSvc := onboarding.NewService(store, candidates, log,
		onboarding.WithMetrics(m),
		onboarding.WithAudit(publisher, cfg.UploadActor),
	)
	documents := docstore.New(filepath.Join(cfg.StorageDir, "uploads"))

	router := httpapi.NewRouter(
		candidatehandler.New(candidates, onboardingSvc, log, m),
		onboardinghandler.New(onboardingSvc, documents, log, m),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", "addr", cfg.Addr, "store", string(cfg.StoreKind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newStore selects the event log backend. The cleanup function is always safe
// to call.
func newStore(ctx context.Context, cfg config.Config) (eventlog.Store, func(), error) {
	noop := func() {}
	switch cfg.StoreKind {
	case config.StoreMemory:
		return eventlog.NewMemoryStore(), noop, nil
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		store := eventlog.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return store, pool.Close, nil
	default:
		store, err := eventlog.NewCSVStore(cfg.StorageDir)
		return store, noop, err
	}
}

// newAuditSink prefers Kafka when brokers are configured and falls back to
// structured log lines otherwise.
func newAuditSink(cfg config.Config, log *slog.Logger) (audit.Sink, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewLogSink(log), func() {}, nil
	}
	sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, func() {}, err
	}
	log.Info("kafka audit sink enabled", "topic", cfg.KafkaTopic)
	return sink, sink.Close, nil
}
