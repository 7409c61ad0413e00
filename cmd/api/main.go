package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/steadydrive/driving-school-web/internal/catalog"
	"github.com/steadydrive/driving-school-web/internal/config"
	"github.com/steadydrive/driving-school-web/internal/db"
	"github.com/steadydrive/driving-school-web/internal/handler"
	"github.com/steadydrive/driving-school-web/internal/queue"
	"github.com/steadydrive/driving-school-web/internal/ratelimit"
	"github.com/steadydrive/driving-school-web/internal/repository"
	"github.com/steadydrive/driving-school-web/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.Level}))
	slog.SetDefault(logger)

	logger.Info("starting driving school web server")

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()
	checks := make(map[string]handler.HealthCheck)
	var contactOpts []service.ContactOption

	// Submission store
	switch cfg.Store.Driver {
	case config.StorePostgres:
		database, err := db.New(db.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("connected to database")

		contactOpts = append(contactOpts, service.WithStore(repository.NewSubmissionRepository(database.DB)))
		checks["database"] = database.Health

	case config.StoreBolt:
		store, err := repository.NewBoltSubmissionStore(cfg.Store.BoltPath)
		if err != nil {
			return err
		}
		defer store.Close()

		logger.Info("opened bolt store", slog.String("path", cfg.Store.BoltPath))

		contactOpts = append(contactOpts, service.WithStore(store))
		checks["store"] = func(ctx context.Context) error {
			_, err := store.Count(ctx)
			return err
		}
	}

	// Notification queue and rate limiter share one Redis connection
	var rdb *redis.Client
	if cfg.NotifyEnabled() {
		var err error
		rdb, err = queue.Dial(ctx, cfg.Queue.RedisURL, logger)
		if err != nil {
			return err
		}

		queueClient := queue.NewRedisClient(rdb, cfg.Queue.QueueName, logger)
		defer queueClient.Close()

		contactOpts = append(contactOpts, service.WithNotifier(service.NewQueueNotifier(queueClient, logger)))
		checks["queue"] = queueClient.Health

		if cfg.RateLimit.Enabled {
			limiter := ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
			contactOpts = append(contactOpts, service.WithRateLimiter(limiter))
			logger.Info("rate limiting enabled",
				slog.Int("limit", cfg.RateLimit.Limit),
				slog.Duration("window", cfg.RateLimit.Window),
			)
		}
	}

	packages, err := catalog.Default()
	if err != nil {
		return err
	}

	contactSvc := service.NewContactService(
		service.NewContactValidator(),
		service.NewLogRecorder(logger),
		logger,
		contactOpts...,
	)
	packageSvc := service.NewPackageService(packages)

	router := handler.NewRouter(handler.RouterConfig{
		Contact:       handler.NewContactHandler(contactSvc, logger),
		Packages:      handler.NewPackageHandler(packageSvc, logger),
		Health:        handler.NewHealthHandler(checks, logger),
		Static:        handler.NewStaticHandler(cfg.API.PublicDir),
		AllowedOrigin: cfg.API.AllowedOrigin,
		SiteURL:       cfg.API.SiteURL,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info("server stopped gracefully")
		return nil
	}
}
