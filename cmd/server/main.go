package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	catalogapp "github.com/campusmarket/backend/internal/application/catalog"
	identityapp "github.com/campusmarket/backend/internal/application/identity"
	tradeapp "github.com/campusmarket/backend/internal/application/trade"
	"github.com/campusmarket/backend/internal/infrastructure/auth"
	"github.com/campusmarket/backend/internal/infrastructure/config"
	"github.com/campusmarket/backend/internal/infrastructure/event"
	"github.com/campusmarket/backend/internal/infrastructure/logger"
	"github.com/campusmarket/backend/internal/infrastructure/migration"
	"github.com/campusmarket/backend/internal/infrastructure/persistence"
	"github.com/campusmarket/backend/internal/infrastructure/storage"
	"github.com/campusmarket/backend/internal/infrastructure/telemetry"
	"github.com/campusmarket/backend/internal/interfaces/http/handler"
	"github.com/campusmarket/backend/internal/interfaces/http/middleware"
	"github.com/campusmarket/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.FromAppConfig(cfg.App, cfg.Log))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting campus market",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := persistence.NewDatabase(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := migrateUp(sqlDB, &cfg.Database, log); err != nil {
			return err
		}
	}

	blacklist, closeBlacklist := newBlacklist(ctx, cfg.Redis, log)
	defer closeBlacklist()

	images, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}

	eventBus := event.NewInMemoryEventBus(log)

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics()
		eventBus.Subscribe(telemetry.NewBusinessMetrics(metrics))
		if _, err := telemetry.RegisterDBMetrics(metrics, db.DB, cfg.Database.Driver, cfg.Database.SlowThreshold, log); err != nil {
			return fmt.Errorf("failed to register database metrics: %w", err)
		}
	}

	if err := eventBus.Start(ctx); err != nil {
		return fmt.Errorf("failed to start event bus: %w", err)
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)

	accountService := identityapp.NewAccountService(accountRepo, jwtService, blacklist, eventBus, log)
	listingService := catalogapp.NewListingService(
		listingRepo, commentRepo, accountRepo, txScope.CatalogScope(), images, eventBus,
		catalogapp.ListingServiceConfig{MaxImageSize: cfg.Storage.MaxImageSize}, log,
	)
	commentService := catalogapp.NewCommentService(listingRepo, commentRepo, accountRepo, eventBus, log)
	cartService := tradeapp.NewCartService(cartRepo, listingRepo, txScope.TradeScope(), images, eventBus, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	var authLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimit > 0 {
		authLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateWindow)
		go authLimiter.Run(ctx)
	}

	engineCfg := router.EngineConfig{
		BasePath:       cfg.HTTP.BasePath,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		AllowOrigins:   cfg.HTTP.AllowOrigins,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		JWTService:     jwtService,
		Blacklist:      blacklist,
		Metrics:        metrics,
		MetricsPath:    cfg.Metrics.Path,
		AuthLimiter:    authLimiter,
		Logger:         log,
	}
	if cfg.Storage.Driver == config.StorageLocal && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		engineCfg.StaticPrefix = cfg.Storage.PublicBaseURL
		engineCfg.StaticDir = cfg.Storage.LocalDir
	}

	engine, err := router.NewEngine(engineCfg, router.Handlers{
		Auth:    handler.NewAuthHandler(accountService),
		Listing: handler.NewListingHandler(listingService),
		Comment: handler.NewCommentHandler(commentService),
		Cart:    handler.NewCartHandler(cartService),
		System:  handler.NewSystemHandler(cfg.App.Name, version, sqlDB),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}

// migrateUp applies the embedded migrations. SQLite reuses the server's pool so
// in-memory databases see the schema; Postgres gets its own connection.
func migrateUp(sqlDB *sql.DB, cfg *config.DatabaseConfig, log *zap.Logger) error {
	var (
		m   *migration.Migrator
		err error
	)
	if cfg.IsSQLite() {
		m, err = migration.New(sqlDB, cfg.Driver, log)
	} else {
		m, err = migration.NewFromConfig(cfg, log)
	}
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

// newBlacklist uses Redis when configured and falls back to process memory otherwise
func newBlacklist(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (auth.TokenBlacklist, func()) {
	if !cfg.Enabled() {
		log.Info("Token blacklist kept in memory")
		return auth.NewInMemoryTokenBlacklist(), func() {}
	}

	redisBlacklist, err := auth.NewRedisTokenBlacklist(ctx, cfg)
	if err != nil {
		log.Warn("Redis unavailable, token blacklist kept in memory",
			zap.String("addr", cfg.Addr()), zap.Error(err))
		return auth.NewInMemoryTokenBlacklist(), func() {}
	}

	log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Addr()))
	return redisBlacklist, func() {
		if err := redisBlacklist.Close(); err != nil {
			log.Warn("Error closing Redis", zap.Error(err))
		}
	}
}
