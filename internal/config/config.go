// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// BackendMySQL keeps catalog and progress records in the service's own database
	BackendMySQL = "mysql"
	// BackendHTTP delegates catalog and progress records to a remote LMS API
	BackendHTTP = "http"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	JWT       JWTConfig
	LMSAPI    LMSAPIConfig
	Reconcile ReconcileConfig
	APIKey    string
	// Backend is the source of catalog and progress records: "mysql" or "http"
	Backend         string
	CatalogCacheTTL time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// LMSAPIConfig holds settings of the remote LMS API used by the "http" backend
type LMSAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ReconcileConfig holds settings of the background reconciliation sweep
type ReconcileConfig struct {
	Cron      string
	BatchSize int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	backend := strings.ToLower(os.Getenv("PROGRESS_BACKEND"))
	if backend == "" {
		backend = BackendMySQL // default backend
	}
	if backend != BackendMySQL && backend != BackendHTTP {
		return nil, fmt.Errorf("invalid PROGRESS_BACKEND: %q", backend)
	}
	cfg.Backend = backend

	if err := loadDatabase(cfg); err != nil {
		return nil, err
	}

	// LMS API configuration (required for the http backend)
	cfg.LMSAPI.BaseURL = strings.TrimRight(os.Getenv("LMS_API_BASE_URL"), "/")
	if cfg.Backend == BackendHTTP && cfg.LMSAPI.BaseURL == "" {
		return nil, fmt.Errorf("LMS_API_BASE_URL is required")
	}
	timeout, err := durationEnv("LMS_API_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.LMSAPI.Timeout = timeout

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", "8080")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	// Access token expiry (default: 1 hour)
	accessExpiry, err := durationEnv("JWT_ACCESS_TOKEN_EXPIRY", "1h")
	if err != nil {
		return nil, err
	}
	cfg.JWT.AccessTokenExpiry = accessExpiry

	// API Key configuration (optional, for service-to-service authentication)
	cfg.APIKey = os.Getenv("API_KEY")

	// Redis configuration
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost" // default
	}
	cfg.Redis.Host = redisHost

	redisPort, err := intEnv("REDIS_PORT", "6379")
	if err != nil {
		return nil, err
	}
	cfg.Redis.Port = redisPort

	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional

	redisDB, err := intEnv("REDIS_DB", "0")
	if err != nil {
		return nil, err
	}
	cfg.Redis.DB = redisDB

	// Catalog cache TTL, 0 disables the cache
	cacheTTL, err := durationEnv("CATALOG_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	if cacheTTL < 0 {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: must not be negative")
	}
	cfg.CatalogCacheTTL = cacheTTL

	// Reconciliation sweep configuration
	cronExpr := os.Getenv("RECONCILE_CRON")
	if cronExpr == "" {
		cronExpr = "*/15 * * * *" // every 15 minutes
	}
	cfg.Reconcile.Cron = cronExpr

	batchSize, err := intEnv("RECONCILE_BATCH_SIZE", "500")
	if err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("invalid RECONCILE_BATCH_SIZE: must be positive")
	}
	cfg.Reconcile.BatchSize = batchSize

	return cfg, nil
}

// loadDatabase reads the database settings, required only for the mysql backend
func loadDatabase(cfg *Config) error {
	cfg.Database.Host = os.Getenv("DB_HOST")
	cfg.Database.User = os.Getenv("DB_USER")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.DBName = os.Getenv("DB_NAME")

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr != "" {
		dbPort, err := strconv.Atoi(dbPortStr)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT: %w", err)
		}
		cfg.Database.Port = dbPort
	}

	if cfg.Backend == BackendMySQL {
		return cfg.RequireDatabase()
	}
	return nil
}

// RequireDatabase reports an error naming the first missing database setting
func (c *Config) RequireDatabase() error {
	switch {
	case c.Database.Host == "":
		return fmt.Errorf("DB_HOST is required")
	case c.Database.Port == 0:
		return fmt.Errorf("DB_PORT is required")
	case c.Database.User == "":
		return fmt.Errorf("DB_USER is required")
	case c.Database.Password == "":
		return fmt.Errorf("DB_PASSWORD is required")
	case c.Database.DBName == "":
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the host:port address of Redis
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func intEnv(key, def string) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key, def string) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// parseOrigins splits comma-separated origins, allowing all origins when none are valid
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		// Default to allow all origins (for development)
		return []string{"*"}
	}
	return origins
}
