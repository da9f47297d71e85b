package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"

	exportapp "github.com/festivo/backend/internal/application/export"
	financeapp "github.com/festivo/backend/internal/application/finance"
	reportapp "github.com/festivo/backend/internal/application/report"
	sponsorapp "github.com/festivo/backend/internal/application/sponsor"
	"github.com/festivo/backend/internal/application/ticketsync"
	"github.com/festivo/backend/internal/infrastructure/auth"
	"github.com/festivo/backend/internal/infrastructure/cache"
	"github.com/festivo/backend/internal/infrastructure/config"
	"github.com/festivo/backend/internal/infrastructure/logger"
	"github.com/festivo/backend/internal/infrastructure/persistence"
	"github.com/festivo/backend/internal/infrastructure/scheduler"
	"github.com/festivo/backend/internal/infrastructure/storage"
	"github.com/festivo/backend/internal/infrastructure/telemetry"
	"github.com/festivo/backend/internal/infrastructure/ticketing"
	"github.com/festivo/backend/internal/interfaces/http/handler"
	"github.com/festivo/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// ===================== Configuration =====================
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// ===================== Logger =====================
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting festivo backend",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// ===================== Telemetry =====================
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// ===================== Database =====================
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log.Named("gorm"), logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	// ===================== Cache =====================
	var cacheStore cache.Store
	if redisStore, err := cache.NewRedisStore(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory report cache",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		cacheStore = cache.NewInMemoryStore()
	} else {
		log.Info("Redis report cache connected", zap.String("addr", cfg.Redis.Addr()))
		cacheStore = redisStore
	}
	defer func() {
		if closer, ok := cacheStore.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	// ===================== Export archive =====================
	var artifacts storage.ArtifactStore
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3ArtifactStore(context.Background(), &cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize export archive", zap.Error(err))
		}
		artifacts = s3Store
		log.Info("Export archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		artifacts = storage.NewNoopArtifactStore()
		log.Info("Export archive disabled, exports are returned inline only")
	}

	// ===================== Repositories =====================
	festivalRepo := persistence.NewGormFestivalRepository(db.DB)
	saleRepo := persistence.NewGormTicketSaleRepository(db.DB)
	syncLogRepo := persistence.NewGormSyncLogRepository(db.DB)
	entryRepo := persistence.NewGormFinanceEntryRepository(db.DB)
	sponsorRepo := persistence.NewGormSponsorRepository(db.DB)

	// ===================== Services =====================
	orderClient := ticketing.NewHTTPOrderClient(cfg.Provider)

	syncService := ticketsync.NewSyncService(
		festivalRepo,
		saleRepo,
		syncLogRepo,
		orderClient,
		cacheStore,
		cfg.Sync,
		cfg.Provider.PageSize,
		log,
	)
	reportService := reportapp.NewReportService(
		saleRepo,
		entryRepo,
		festivalRepo,
		syncLogRepo,
		cacheStore,
		cfg.Sync.CacheTTL,
		log,
	)
	exportService := exportapp.NewExportService(
		saleRepo,
		entryRepo,
		sponsorRepo,
		festivalRepo,
		artifacts,
		log,
	)
	entryService := financeapp.NewEntryService(entryRepo, log)
	sponsorService := sponsorapp.NewSponsorService(sponsorRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// ===================== Background sync =====================
	if cfg.Sync.Enabled {
		syncScheduler := scheduler.NewSyncScheduler(syncService, cfg.Sync.Interval, log)
		syncScheduler.Start()
		defer syncScheduler.Stop()
		log.Info("Ticket sync scheduler started",
			zap.Duration("interval", cfg.Sync.Interval),
			zap.Duration("tenant_timeout", cfg.Sync.TenantTimeout),
		)
	} else {
		log.Info("Ticket sync scheduler disabled, sync runs on manual trigger only")
	}

	// ===================== HTTP server =====================
	engine := router.New(cfg, jwtService, log, router.Handlers{
		System:  handler.NewSystemHandler(db, version),
		Report:  handler.NewReportHandler(reportService),
		Export:  handler.NewExportHandler(exportService),
		Finance: handler.NewFinanceHandler(entryService),
		Sponsor: handler.NewSponsorHandler(sponsorService),
		Sync:    handler.NewSyncHandler(syncService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
