package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/karacoop/credit-service/internal/application/usecase"
	"github.com/karacoop/credit-service/internal/domain/service"
	"github.com/karacoop/credit-service/internal/infrastructure/adapter"
	"github.com/karacoop/credit-service/internal/infrastructure/config"
	"github.com/karacoop/credit-service/internal/infrastructure/messaging"
	pgRepo "github.com/karacoop/credit-service/internal/infrastructure/persistence/postgres"
	"github.com/karacoop/credit-service/internal/presentation/rest"
	"github.com/karacoop/credit-service/pkg/auth"
	pkgkafka "github.com/karacoop/credit-service/pkg/kafka"
	"github.com/karacoop/credit-service/pkg/observability"
	pkgpostgres "github.com/karacoop/credit-service/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration, .env first for local development.
	_ = godotenv.Load() //nolint:errcheck
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting credit-service", "http_port", cfg.HTTPPort)

	// Metrics.
	meterProvider, metrics, metricsHandler, err := observability.InitMetrics(cfg.ServiceName)
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), cfg.MigrationsPath); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	demandRepo := pgRepo.NewDemandRepo(pool)
	contractRepo := pgRepo.NewContractRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	penaltyRepo := pgRepo.NewPenaltyRepo(pool)
	remunerationRepo := pgRepo.NewRemunerationRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, logger)

	members := adapter.NewStubMemberDirectory()
	caisse := adapter.NewStubCaisseClient()
	documents, err := adapter.NewFSDocumentStore(cfg.DocumentDir)
	if err != nil {
		logger.Error("failed to initialize document store", "error", err)
		os.Exit(1)
	}
	receipts := adapter.NewPDFReceiptGenerator("Karacoop")
	notifier := adapter.NewMailNotifier(cfg.SMTP)

	// Domain engines.
	simulation := service.NewSimulationEngine()
	scoring := service.NewScoringEngine()
	penalties := service.NewPenaltyEngine()

	// Wire use cases.
	eligibilityUC := usecase.NewCheckEligibilityUseCase(members, caisse)
	simulateUC := usecase.NewSimulateCreditUseCase(simulation)
	createDemandUC := usecase.NewCreateDemandUseCase(demandRepo, members, eligibilityUC, publisher)
	decideDemandUC := usecase.NewDecideDemandUseCase(demandRepo, publisher)
	getDemandUC := usecase.NewGetDemandUseCase(demandRepo)
	createContractUC := usecase.NewCreateContractUseCase(demandRepo, contractRepo, simulation, publisher)
	getContractUC := usecase.NewGetContractUseCase(contractRepo, paymentRepo, penaltyRepo)
	applyPaymentUC := usecase.NewApplyPaymentUseCase(
		contractRepo, paymentRepo, penaltyRepo, remunerationRepo,
		members, documents, receipts, notifier, publisher,
		scoring, penalties, cfg.GuarantorRemunerationPct, logger,
	)
	dischargeUC := usecase.NewValidateDischargeUseCase(contractRepo, paymentRepo, publisher)
	closeContractUC := usecase.NewCloseContractUseCase(contractRepo, members, notifier, publisher, logger)
	extendContractUC := usecase.NewExtendContractUseCase(contractRepo, simulation, eligibilityUC, publisher)
	markPenaltyUC := usecase.NewMarkPenaltyPaidUseCase(penaltyRepo)
	sweepUC := usecase.NewSweepOverdueUseCase(
		contractRepo, penaltyRepo, members, notifier, publisher, penalties, logger,
	)

	// JWT validation for the back-office API.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Nightly penalty sweep.
	sweeper := cron.New()
	_, err = sweeper.AddFunc(cfg.OverdueSweepSpec, func() {
		res, sweepErr := sweepUC.Execute(context.Background())
		if sweepErr != nil {
			logger.Error("overdue sweep failed", "error", sweepErr)
			return
		}
		if res.PenaltiesCreated > 0 {
			metrics.PenaltiesCreated.Add(context.Background(), int64(res.PenaltiesCreated))
		}
	})
	if err != nil {
		logger.Error("invalid sweep schedule", "spec", cfg.OverdueSweepSpec, "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	rest.NewCreditHandler(
		simulateUC, createDemandUC, decideDemandUC, getDemandUC,
		createContractUC, getContractUC, applyPaymentUC,
		dischargeUC, closeContractUC, extendContractUC,
		markPenaltyUC, eligibilityUC,
		metrics, logger,
	).RegisterRoutes(mux)

	authMiddleware := auth.Middleware(jwtSvc, []string{"/healthz", "/readyz", "/metrics"})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           authMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-service stopped")
}
