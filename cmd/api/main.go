package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	_ "github.com/learnpath/backend/docs"
	authMiddleware "github.com/learnpath/backend/internal/auth/middleware"
	authService "github.com/learnpath/backend/internal/auth/service"
	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/clients/lmsapi"
	"github.com/learnpath/backend/internal/config"
	"github.com/learnpath/backend/internal/handlers"
	"github.com/learnpath/backend/internal/logger"
	loggerMiddleware "github.com/learnpath/backend/internal/logger/middleware"
	"github.com/learnpath/backend/internal/middlewares"
	"github.com/learnpath/backend/internal/progress"
	"github.com/learnpath/backend/internal/repositories"
	"github.com/learnpath/backend/internal/services"
	"github.com/learnpath/backend/internal/tasks"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title LearnPath Progress API
// @version 1.0
// @description API tracking learner navigation and completion through modules, units and content items
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for service-to-service authentication
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
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

	logger.Logger.Info("Starting Progress API", zap.String("backend", cfg.Backend))

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

	// Create Asynq client for background reconciliation
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()
	taskClient := tasks.NewClient(asynqClient)

	// Initialize JWT token validation
	tokenGenerator := authService.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Catalog cache decorating whichever catalog the backend reads
	var catalogCache *cache.CatalogCache
	decorate := func(c progress.ContentCatalog) progress.ContentCatalog {
		if cfg.CatalogCacheTTL <= 0 {
			return c
		}
		return cache.NewCatalogCache(c, rdb, cfg.CatalogCacheTTL, logger.Logger)
	}

	// Initialize the record backend
	var backend services.Backend
	var modules handlers.ModuleReader
	switch cfg.Backend {
	case config.BackendHTTP:
		backend = services.NewHTTPBackend(lmsapi.New(cfg.LMSAPI.BaseURL, cfg.LMSAPI.Timeout), decorate)
	default:
		db, err := connectDB(cfg.DSN())
		if err != nil {
			logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
			os.Exit(1)
		}
		defer db.Close()

		// Run migrations
		if err := runMigrations(db); err != nil {
			logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		catalogRepo := repositories.NewCatalogRepository(db)
		modules = catalogRepo
		var catalog progress.ContentCatalog = catalogRepo
		if cfg.CatalogCacheTTL > 0 {
			catalogCache = cache.NewCatalogCache(catalogRepo, rdb, cfg.CatalogCacheTTL, logger.Logger)
			catalog = catalogCache
		}
		backend = services.NewMySQLBackend(db, catalog)
	}

	// Initialize services
	sessionService := services.NewSessionService(
		backend,
		func(userID int) progress.Reconciler { return taskClient.ForUser(userID) },
		logger.Logger,
	)

	// Eviction only touches Redis keys; the HTTP backend wraps its catalog per request
	var invalidator handlers.CatalogInvalidator
	if catalogCache != nil {
		invalidator = catalogCache
	} else if cfg.CatalogCacheTTL > 0 {
		invalidator = cache.NewCatalogCache(nil, rdb, cfg.CatalogCacheTTL, logger.Logger)
	}

	// Initialize handlers
	progressHandler := handlers.NewProgressHandler(sessionService, logger.Logger)
	recordHandler := handlers.NewRecordHandler(sessionService, modules, logger.Logger)
	internalHandler := handlers.NewInternalHandler(taskClient, invalidator, logger.Logger)

	// Initialize auth middleware
	authenticate := authMiddleware.AuthMiddleware(tokenGenerator)
	apiKeyMiddleware := authMiddleware.APIKeyMiddleware(cfg.APIKey)
	adminMiddleware := authMiddleware.RoleMiddleware(authService.RoleAdmin)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(middlewares.DefaultMaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		progressHandler.RegisterRoutes(r, authenticate)
		recordHandler.RegisterRoutes(r, authenticate)
		internalHandler.RegisterRoutes(r, apiKeyMiddleware, authenticate, adminMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
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

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	// Service specific migration table so the schema can share a database
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "progress_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
