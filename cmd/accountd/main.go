package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredislib "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/yangsb/account-ledger/internal/core/services"
	"github.com/yangsb/account-ledger/internal/handlers"
	"github.com/yangsb/account-ledger/internal/locking"
	"github.com/yangsb/account-ledger/internal/middleware"
	"github.com/yangsb/account-ledger/internal/repositories/database/pgsql"
	"github.com/yangsb/account-ledger/pkg/config"
	"github.com/yangsb/account-ledger/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if cfg.RateLimitPerMinute > 0 {
		rate := limiter.Rate{Period: time.Minute, Limit: cfg.RateLimitPerMinute}
		limiterInstance := limiter.New(memory.NewStore(), rate)
		r.Use(middleware.RateLimit(limiterInstance))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	locks := newLockManager(logger, cfg)

	repos := pgsql.NewRepositoryProvider(dbPool)
	svcs := services.NewServicesContainer(repos, locks, services.TransactionConfig{
		MinAmount:    cfg.MinTxnAmount,
		MaxAmount:    cfg.MaxTxnAmount,
		CancelWindow: cfg.CancelWindow,
		UseDelay:     cfg.UseBalanceDelay,
	})

	handlers.RegisterRoutes(r, svcs)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLockManager selects the per-account lock backend. The local manager is
// enough for a single instance; redis serializes across replicas.
func newLockManager(logger *slog.Logger, cfg *config.Config) locking.Manager {
	opts := locking.Options{
		WaitTimeout:   cfg.LockWaitTimeout,
		RetryInterval: cfg.LockRetryInterval,
		Expiry:        cfg.LockExpiry,
	}

	if cfg.LockBackend == "redis" {
		client := goredislib.NewClient(&goredislib.Options{Addr: cfg.RedisAddr})
		logger.Info("Using redis lock manager", slog.String("addr", cfg.RedisAddr))
		return locking.NewRedisManager(client, opts)
	}

	logger.Info("Using local lock manager")
	return locking.NewLocalManager(opts)
}

func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations, using the
	// pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
