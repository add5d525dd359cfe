package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/config"
	"github.com/learnpath/backend/internal/logger"
	"github.com/learnpath/backend/internal/progress"
	"github.com/learnpath/backend/internal/repositories"
	"github.com/learnpath/backend/internal/tasks"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Progress Worker")

	// The worker acts on behalf of many learners and always reads their records directly
	if err := cfg.RequireDatabase(); err != nil {
		logger.Logger.Fatal("Worker needs the progress database", zap.Error(err))
	}

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Test Redis connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		os.Exit(1)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Asynq client for tasks rescheduled by the worker itself
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	// Initialize repositories
	var catalog progress.ContentCatalog = repositories.NewCatalogRepository(db)
	if cfg.CatalogCacheTTL > 0 {
		catalog = cache.NewCatalogCache(catalog, rdb, cfg.CatalogCacheTTL, logger.Logger)
	}
	stores := func(userID int) progress.ProgressStore {
		return repositories.NewProgressRepository(db, userID)
	}
	sweepRepo := repositories.NewSweepRepository(db)

	// Create Asynq server
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				tasks.QueueReconcile: 5,
				tasks.QueueDefault:   1,
			},
		},
	)

	// Create worker instance
	worker := NewWorker(
		logger.Logger,
		catalog,
		stores,
		sweepRepo,
		rdb,
		tasks.NewClient(asynqClient),
		cfg.Reconcile.BatchSize,
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeFinalizeUnit, worker.HandleFinalizeUnit)
	mux.HandleFunc(tasks.TypeFinalizeModule, worker.HandleFinalizeModule)
	mux.HandleFunc(tasks.TypeSweep, worker.HandleSweep)

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	logger.Logger.Info("Worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
