package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreNone     = "none"
	StorePostgres = "postgres"
	StoreBolt     = "bolt"
)

// Config holds all application configuration
type Config struct {
	API       APIConfig
	Database  DatabaseConfig
	Queue     QueueConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
	Worker    WorkerConfig
	Log       LogConfig
}

// APIConfig holds HTTP server configuration
type APIConfig struct {
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	AllowedOrigin string
	PublicDir     string
	SiteURL       string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// QueueConfig holds queue configuration (Redis). An empty RedisURL disables
// the notification queue and the rate limiter.
type QueueConfig struct {
	RedisURL  string
	QueueName string
}

// StoreConfig selects where accepted submissions are persisted
type StoreConfig struct {
	Driver   string
	BoltPath string
}

// RateLimitConfig holds per-client submission limits
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	Concurrency   int
	MaxRetryCount int
	NotifyTo      string
	// Empty templates use the worker's defaults
	SubjectTemplate string
	BodyTemplate    string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level slog.Level
}

// NotifyEnabled reports whether accepted submissions go to the worker queue
func (c *Config) NotifyEnabled() bool {
	return c.Queue.RedisURL != ""
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables
func FromEnv() (*Config, error) {
	var errs []error

	intVar := func(key, def string) int {
		v, err := strconv.Atoi(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}
	durationVar := func(key, def string) time.Duration {
		v, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}
	boolVar := func(key, def string) bool {
		v, err := strconv.ParseBool(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
		}
		return v
	}

	cfg := &Config{
		API: APIConfig{
			Port:          intVar("API_PORT", "8080"),
			ReadTimeout:   durationVar("API_READ_TIMEOUT", "15s"),
			WriteTimeout:  durationVar("API_WRITE_TIMEOUT", "15s"),
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
			PublicDir:     getEnv("PUBLIC_DIR", "public"),
			SiteURL:       getEnv("SITE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     intVar("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "driving_school"),
			Password: getEnv("DB_PASSWORD", "driving_school"),
			DBName:   getEnv("DB_NAME", "driving_school"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Queue: QueueConfig{
			RedisURL:  os.Getenv("REDIS_URL"),
			QueueName: getEnv("QUEUE_NAME", "contact_notifications"),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", StoreNone)),
			BoltPath: getEnv("BOLT_PATH", "submissions.db"),
		},
		RateLimit: RateLimitConfig{
			Enabled: boolVar("RATE_LIMIT_ENABLED", "false"),
			Limit:   intVar("RATE_LIMIT", "5"),
			Window:  durationVar("RATE_LIMIT_WINDOW", "10m"),
		},
		Worker: WorkerConfig{
			Concurrency:     intVar("WORKER_CONCURRENCY", "3"),
			MaxRetryCount:   intVar("MAX_RETRY_COUNT", "3"),
			NotifyTo:        getEnv("NOTIFY_EMAIL", "office@localhost"),
			SubjectTemplate: os.Getenv("NOTIFY_SUBJECT_TEMPLATE"),
			BodyTemplate:    os.Getenv("NOTIFY_BODY_TEMPLATE"),
		},
	}

	if err := cfg.Log.Level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
	}

	switch cfg.Store.Driver {
	case StoreNone, StorePostgres, StoreBolt:
	default:
		errs = append(errs, fmt.Errorf("invalid STORE_DRIVER: %q", cfg.Store.Driver))
	}

	if cfg.RateLimit.Enabled && cfg.Queue.RedisURL == "" {
		errs = append(errs, errors.New("RATE_LIMIT_ENABLED requires REDIS_URL"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
