package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salestrack/inquiry-api/docs"
	"github.com/salestrack/inquiry-api/internal/auth"
	"github.com/salestrack/inquiry-api/internal/config"
	"github.com/salestrack/inquiry-api/internal/database"
	"github.com/salestrack/inquiry-api/internal/datawarehouse"
	"github.com/salestrack/inquiry-api/internal/http/handler"
	"github.com/salestrack/inquiry-api/internal/http/middleware"
	"github.com/salestrack/inquiry-api/internal/http/router"
	"github.com/salestrack/inquiry-api/internal/jobs"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/logger"
	"github.com/salestrack/inquiry-api/internal/repository"
	"github.com/salestrack/inquiry-api/internal/service"
	"github.com/salestrack/inquiry-api/internal/storage"
	"go.uber.org/zap"
)

// @title Inquiry KPI API
// @version 1.0
// @description Sales inquiry tracking with business-hours KPI grading, weighted manager scores and volume-bracket performance targets.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)
	if basicCfg.App.Environment == "development" || basicCfg.App.Environment == "local" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
		log.Info("SQLite schema migrated", zap.String("path", cfg.Database.SQLitePath))
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// The warehouse is optional; without it new-customer flags default to false
	dwClient, err := datawarehouse.NewClient(&cfg.DataWarehouse, log)
	if err != nil {
		log.Warn("Data warehouse connection failed, continuing without it", zap.Error(err))
		dwClient = nil
	}
	var customers service.CustomerDirectory
	if dwClient != nil {
		customers = dwClient
		log.Info("Data warehouse connected", zap.Int("query_timeout_seconds", cfg.DataWarehouse.QueryTimeout))
	}

	tzOverride, err := cfg.KPI.Location()
	if err != nil {
		return err
	}
	clock := kpi.NewBusinessClock(tzOverride)
	loc := clock.Location()
	engine := kpi.NewEngine(clock, kpi.WithNow(func() time.Time { return time.Now().UTC() }))

	userRepo := repository.NewUserRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	weightsRepo := repository.NewKPIWeightsRepository(db)
	targetRepo := repository.NewPerformanceTargetRepository(db)

	maxUploadBytes := cfg.Storage.MaxUploadSizeMB * 1024 * 1024
	tokens := auth.NewTokenManager(&cfg.Auth)

	authService := service.NewAuthService(userRepo, tokens, log)
	kpiService := service.NewInquiryKPIService(inquiryRepo, engine, log)
	inquiryService := service.NewInquiryService(inquiryRepo, userRepo, engine, fileStorage, customers, maxUploadBytes, log)
	weightsService := service.NewKPIWeightsService(weightsRepo, log)
	targetService := service.NewPerformanceTargetService(targetRepo, log)
	performanceService := service.NewPerformanceService(inquiryRepo, userRepo, targetRepo, weightsService, engine, log)

	authMiddleware := auth.NewMiddleware(&cfg.Auth, tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(cfg, log, db, dwClient, authMiddleware, rateLimiter, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, &cfg.Auth, log),
		Inquiry: handler.NewInquiryHandler(inquiryService, kpiService, maxUploadBytes, log),
		KPI:     handler.NewKPIHandler(weightsService, performanceService, loc, log),
		Target:  handler.NewTargetHandler(targetService, performanceService, loc, log),
	})

	var scheduler *jobs.Scheduler
	if cfg.KPI.RecalculationEnabled {
		scheduler = jobs.NewScheduler(log, loc)
		job := jobs.NewKPIRecalcJob(kpiService, log, cfg.KPI.RecalculationTimeoutDuration(), cfg.KPI.RecalculationBatchSize)
		if err := scheduler.AddJob(jobs.KPIRecalcJobName, cfg.KPI.RecalculationCron, job.Run); err != nil {
			log.Error("Failed to register KPI recalculation job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("KPI recalculation job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := dwClient.Close(); err != nil {
			log.Warn("Error closing data warehouse connection", zap.Error(err))
		}
		log.Info("Server stopped gracefully")
	}
	return nil
}
