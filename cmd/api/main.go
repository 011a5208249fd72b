// Package main is the entry point for the analytics API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finlit-cms/backend/config"
	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/application/usecase/admin"
	"github.com/finlit-cms/backend/internal/application/usecase/analytics"
	"github.com/finlit-cms/backend/internal/application/usecase/transaction"
	"github.com/finlit-cms/backend/internal/infra/db"
	"github.com/finlit-cms/backend/internal/infra/scheduler"
	"github.com/finlit-cms/backend/internal/infra/server/router"
	"github.com/finlit-cms/backend/internal/integration/adapters"
	"github.com/finlit-cms/backend/internal/integration/cache"
	"github.com/finlit-cms/backend/internal/integration/entrypoint/controller"
	"github.com/finlit-cms/backend/internal/integration/entrypoint/middleware"
	"github.com/finlit-cms/backend/internal/integration/persistence"
	"github.com/finlit-cms/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting analytics API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.TransactionModel{},
		&model.PeriodSummaryModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(database.DB())
	userRepo := persistence.NewUserRepository(database.DB())

	// Wrap the rollup store with the redis read-through cache when
	// redis is reachable; fall back to the bare store otherwise.
	var rollupStore adapter.RollupStore = persistence.NewRollupRepository(database.DB())
	if redisClient := newRedisClient(&cfg.Redis); redisClient != nil {
		rollupStore = cache.NewCachedRollupStore(rollupStore, redisClient, cfg.Analytics.RollupCacheTTL)
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create analytics use cases
	computeSummaryUseCase := analytics.NewComputeSummaryUseCase(transactionRepo, cfg.Analytics.TopCategories)
	getMonthlySeriesUseCase := analytics.NewGetMonthlySeriesUseCase(transactionRepo)
	getCompositionUseCase := analytics.NewGetCompositionUseCase(transactionRepo, cfg.Analytics.TopCategories)
	getStreakUseCase := analytics.NewGetStreakUseCase(transactionRepo)
	getDTIUseCase := analytics.NewGetDTIUseCase(transactionRepo)
	getMonthlyVariationUseCase := analytics.NewGetMonthlyVariationUseCase(transactionRepo)
	recomputeRollupUseCase := analytics.NewRecomputeRollupUseCase(transactionRepo, rollupStore, cfg.Analytics.TopCategories)
	getRollupUseCase := analytics.NewGetRollupUseCase(rollupStore)

	// Create admin use cases
	getCohortsUseCase := admin.NewGetCohortsUseCase(userRepo, transactionRepo, cfg.Analytics.ScanTimeout, cfg.Analytics.ScanWorkers)
	getSegmentationUseCase := admin.NewGetSegmentationUseCase(
		userRepo,
		transactionRepo,
		decimal.NewFromFloat(cfg.Analytics.LowIncomeThreshold),
		decimal.NewFromFloat(cfg.Analytics.HighIncomeThreshold),
		cfg.Analytics.ScanTimeout,
		cfg.Analytics.ScanWorkers,
	)

	// Create ledger use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)

	// Create controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck)
	analyticsController := controller.NewAnalyticsController(
		computeSummaryUseCase,
		getMonthlySeriesUseCase,
		getCompositionUseCase,
		getStreakUseCase,
		getDTIUseCase,
		getMonthlyVariationUseCase,
		recomputeRollupUseCase,
		getRollupUseCase,
	)
	adminAnalyticsController := controller.NewAdminAnalyticsController(getCohortsUseCase, getSegmentationUseCase)
	transactionController := controller.NewTransactionController(createTransactionUseCase, listTransactionsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Start the background rollup sweep
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.Analytics.SchedulerEnabled {
		worker := scheduler.NewRollupWorker(userRepo, recomputeRollupUseCase, scheduler.WorkerConfig{
			PollInterval: cfg.Analytics.SchedulerPollInterval,
			Workers:      cfg.Analytics.SchedulerWorkers,
		})
		go worker.Start(workerCtx)
	}

	// Setup router
	r := router.NewRouter(healthController, analyticsController, adminAnalyticsController, transactionController, authMiddleware)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// newRedisClient builds a redis client from config, returning nil when
// redis is unreachable so the rollup store can run uncached.
func newRedisClient(cfg *config.RedisConfig) *redis.Client {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("Invalid redis URL, rollup cache disabled", "error", err)
		return nil
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, rollup cache disabled", "error", err)
		return nil
	}

	slog.Info("Rollup cache enabled")
	return client
}
