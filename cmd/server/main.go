// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"vitaran/internal/citizen"
	citizenmetrics "vitaran/internal/citizen/metrics"
	citizensvc "vitaran/internal/citizen/service"
	claimmetrics "vitaran/internal/claims/metrics"
	claimsvc "vitaran/internal/claims/service"
	"vitaran/internal/claims/tracer"
	"vitaran/internal/ledger"
	"vitaran/internal/platform/config"
	"vitaran/internal/platform/database"
	"vitaran/internal/platform/httpserver"
	"vitaran/internal/platform/kafka/producer"
	"vitaran/internal/platform/logger"
	"vitaran/internal/platform/redis"
	"vitaran/internal/system"
	httptransport "vitaran/internal/transport/http"
	"vitaran/internal/txlog"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage. With no DATABASE_URL the server runs on in-memory stores,
	// which is enough for local development and demos.
	pool, err := database.New(database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		if err := applyMigrations(ctx, pool.DB()); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	auditor, kafkaProducer, err := buildAuditPipeline(cfg, log)
	if err != nil {
		log.Error("kafka init failed", "error", err)
		os.Exit(1)
	}
	if kafkaProducer != nil {
		defer kafkaProducer.Close()
	}

	var (
		citizenStore citizen.Store
		ledgerStore  ledger.Store
		txlogStore   txlog.Store
		statusStore  system.Store
		claimOpts    []claimsvc.Option
	)
	if pool != nil {
		pgLedger := ledger.NewPostgres(pool.DB())
		if err := pgLedger.Seed(ctx, cfg.DefaultBudget); err != nil {
			log.Error("ledger seed failed", "error", err)
			os.Exit(1)
		}
		citizenStore = citizen.NewPostgres(pool.DB())
		ledgerStore = pgLedger
		txlogStore = txlog.NewPostgres(pool.DB())
		claimOpts = append(claimOpts, claimsvc.WithTxRunner(newClaimTxRunner(pool.DB())))
	} else {
		citizenStore = citizen.NewInMemoryStore()
		ledgerStore = ledger.NewInMemoryStore(cfg.DefaultBudget)
		txlogStore = txlog.NewInMemoryStore()
	}
	if redisClient != nil {
		statusStore = system.NewRedis(redisClient.Client)
	} else {
		statusStore = system.NewInMemoryStore()
	}

	citizenService := citizensvc.New(citizenStore,
		citizensvc.WithLogger(log),
		citizensvc.WithAuditPublisher(auditor),
		citizensvc.WithMetrics(citizenmetrics.New()),
	)
	claimOpts = append(claimOpts,
		claimsvc.WithLogger(log),
		claimsvc.WithAuditPublisher(auditor),
		claimsvc.WithMetrics(claimmetrics.New()),
		claimsvc.WithTracer(tracer.New()),
		claimsvc.WithLimits(cfg.MaxClaims, cfg.CooldownDays),
	)
	claimService := claimsvc.New(citizenStore, ledgerStore, txlogStore, statusStore, claimOpts...)

	router := httptransport.NewRouter(log,
		httptransport.NewCitizenHandler(citizenService),
		httptransport.NewClaimHandler(claimService),
		httptransport.NewAdminHandler(claimService, httptransport.NewSummarySource(citizenService, claimService)),
	)
	if pool != nil {
		router.WithHealthCheck("postgres", pool)
	}
	if redisClient != nil {
		router.WithHealthCheck("redis", redisClient)
	}
	if kafkaProducer != nil {
		router.WithHealthCheck("kafka", producerHealth{kafkaProducer})
	}

	srv := httpserver.New(cfg.Addr, router.Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// producerHealth adapts the producer's boolean health probe to the router's
// error-returning checker.
type producerHealth struct {
	producer *producer.Producer
}

func (p producerHealth) Health(ctx context.Context) error {
	if !p.producer.Healthy(ctx) {
		return errors.New("kafka brokers unreachable")
	}
	return nil
}
