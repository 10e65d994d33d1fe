package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"propaudit/internal/catalog"
	developerHandler "propaudit/internal/developer/handler"
	developerService "propaudit/internal/developer/service"
	"propaudit/internal/fraud/adapters"
	fraudHandler "propaudit/internal/fraud/handler"
	fraudMetrics "propaudit/internal/fraud/metrics"
	fraudService "propaudit/internal/fraud/service"
	"propaudit/internal/fraud/signals"
	fraudStore "propaudit/internal/fraud/store"
	jwttoken "propaudit/internal/jwt_token"
	ledgerHandler "propaudit/internal/ledger/handler"
	"propaudit/internal/ledger/lock"
	ledgerMetrics "propaudit/internal/ledger/metrics"
	ledgerModels "propaudit/internal/ledger/models"
	ledgerService "propaudit/internal/ledger/service"
	ledgerStore "propaudit/internal/ledger/store"
	nriHandler "propaudit/internal/nri/handler"
	nriService "propaudit/internal/nri/service"
	nriStore "propaudit/internal/nri/store"
	"propaudit/internal/platform/config"
	"propaudit/internal/platform/httpserver"
	"propaudit/internal/platform/logger"
	"propaudit/internal/platform/metrics"
	"propaudit/internal/platform/postgres"
	"propaudit/internal/platform/redis"
	httptransport "propaudit/internal/transport/http"
	"propaudit/pkg/platform/audit"
	"propaudit/pkg/platform/audit/publisher"
	kafkaStore "propaudit/pkg/platform/audit/store/kafka"
	"propaudit/pkg/platform/audit/store/memory"
	auditPostgres "propaudit/pkg/platform/audit/store/postgres"
)

const auditBufferSize = 1024

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal domain packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDevSigningKey() {
		log.Warn("using the development JWT signing key; set JWT_SIGNING_KEY in production")
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				return err
			}
		}
		log.Info("using postgres stores")
	} else {
		log.Info("DATABASE_URL not set, using in-memory stores")
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(registry)

	auditStore, closeAudit, err := newAuditStore(cfg, db, log)
	if err != nil {
		return err
	}
	defer closeAudit()
	auditPublisher := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(registry)),
	)
	defer auditPublisher.Close()

	ledgerSvc, err := newLedgerService(cfg, db, redisClient, auditPublisher, registry, log)
	if err != nil {
		return err
	}

	developerSvc, err := developerService.New(cat, developerService.WithLogger(log))
	if err != nil {
		return fmt.Errorf("developer service: %w", err)
	}

	fraudSvc, err := newFraudService(cfg, cat, db, auditPublisher, registry, log)
	if err != nil {
		return err
	}

	var checklists nriService.Store = nriStore.NewInMemory()
	if db != nil {
		checklists = nriStore.NewPostgres(db)
	}
	nriSvc, err := nriService.New(checklists, cat.NRIChecklist,
		nriService.WithLogger(log),
		nriService.WithAuditPublisher(auditPublisher),
	)
	if err != nil {
		return fmt.Errorf("nri service: %w", err)
	}

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)

	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Metrics:        httpMetrics,
		Validator:      jwttoken.NewJWTServiceAdapter(jwtService),
		RequestTimeout: cfg.Server.RequestTimeout,
		HealthChecks:   healthChecks(db, redisClient),
		Handlers: []httptransport.Registrar{
			ledgerHandler.New(ledgerSvc, log),
			developerHandler.New(developerSvc, log),
			fraudHandler.New(fraudSvc, log),
			nriHandler.New(nriSvc, log),
		},
	})

	srv := httpserver.New(cfg.Server, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting propaudit", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newAuditStore prefers Kafka, then Postgres, then a bounded in-memory ring.
func newAuditStore(cfg config.Config, db *sql.DB, log *slog.Logger) (audit.Store, func(), error) {
	switch {
	case len(cfg.Kafka.Brokers) > 0:
		store, err := kafkaStore.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic,
			kafkaStore.WithProduceTimeout(cfg.Kafka.ProduceTimeout))
		if err != nil {
			return nil, nil, fmt.Errorf("audit kafka store: %w", err)
		}
		log.Info("audit events published to kafka", "topic", cfg.Kafka.AuditTopic)
		return store, store.Close, nil
	case db != nil:
		return auditPostgres.New(db), func() {}, nil
	default:
		return memory.NewBounded(10_000), func() {}, nil
	}
}

func newLedgerService(
	cfg config.Config,
	db *sql.DB,
	redisClient *redis.Client,
	auditPublisher *publisher.Publisher,
	registry prometheus.Registerer,
	log *slog.Logger,
) (*ledgerService.Service, error) {
	var store ledgerService.Store = ledgerStore.NewInMemory()
	if db != nil {
		store = ledgerStore.NewPostgres(db)
	}

	opts := []ledgerService.Option{
		ledgerService.WithLogger(log),
		ledgerService.WithAuditPublisher(auditPublisher),
		ledgerService.WithMetrics(ledgerMetrics.New(registry)),
		ledgerService.WithDefaults(ledgerModels.CreditDefaults{
			StartingCredits:    cfg.Ledger.StartingCredits,
			CreditsPerProperty: cfg.Ledger.CreditsPerProperty,
		}),
		ledgerService.WithAutoProvision(cfg.Ledger.AutoProvision),
		ledgerService.WithRetry(cfg.Ledger.MaxRetries, cfg.Ledger.RetryBackoff),
	}
	if redisClient != nil {
		opts = append(opts, ledgerService.WithLocker(
			lock.NewRedis(redisClient.Client, lock.WithTTL(cfg.Ledger.LockTTL))))
		log.Info("ledger using redis locks")
	}

	svc, err := ledgerService.New(store, opts...)
	if err != nil {
		return nil, fmt.Errorf("ledger service: %w", err)
	}
	return svc, nil
}

func newFraudService(
	cfg config.Config,
	cat *catalog.Catalog,
	db *sql.DB,
	auditPublisher *publisher.Publisher,
	registry prometheus.Registerer,
	log *slog.Logger,
) (*fraudService.Service, error) {
	sources, err := adapters.NewCatalogRegistry(cat.Registry)
	if err != nil {
		return nil, fmt.Errorf("fraud registry: %w", err)
	}
	tolerance, ceiling, err := cat.Fraud.PriceWindow()
	if err != nil {
		return nil, fmt.Errorf("fraud price window: %w", err)
	}

	var store fraudService.Store = fraudStore.NewInMemory()
	if db != nil {
		store = fraudStore.NewPostgres(db)
	}

	svc, err := fraudService.New(store,
		fraudService.Sources{
			Price:     adapters.GuardPriceSource(sources, log),
			Title:     adapters.GuardTitleRegistry(sources, log),
			Documents: adapters.GuardDocumentForensics(sources, log),
			Seller:    adapters.GuardSellerHistory(sources, log),
		},
		fraudService.WithLogger(log),
		fraudService.WithAuditPublisher(auditPublisher),
		fraudService.WithMetrics(fraudMetrics.New(registry)),
		fraudService.WithScoring(cat.Fraud.Weights, cat.Fraud.Bands,
			signals.PriceWindow{Tolerance: tolerance, Ceiling: ceiling}),
		fraudService.WithTimeout(cfg.Fraud.AnalysisTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("fraud service: %w", err)
	}
	return svc, nil
}

func healthChecks(db *sql.DB, redisClient *redis.Client) map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	if redisClient != nil {
		checks["redis"] = redisClient.Health
	}
	return checks
}
