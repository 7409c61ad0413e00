package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/steadydrive/driving-school-web/internal/config"
	"github.com/steadydrive/driving-school-web/internal/models"
	"github.com/steadydrive/driving-school-web/internal/queue"
	"github.com/steadydrive/driving-school-web/internal/worker"
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

	logger.Info("starting notification worker")

	if !cfg.NotifyEnabled() {
		logger.Error("REDIS_URL is required by the worker")
		os.Exit(1)
	}

	// Stop consuming on interrupt; Consume waits for in-flight jobs
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := queue.Dial(ctx, cfg.Queue.RedisURL, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}

	queueClient := queue.NewRedisClient(rdb, cfg.Queue.QueueName, logger)
	defer queueClient.Close()

	template, err := worker.NewEmailTemplate(cfg.Worker.SubjectTemplate, cfg.Worker.BodyTemplate)
	if err != nil {
		logger.Error("invalid notification template", slog.String("error", err.Error()))
		os.Exit(1)
	}

	processor := worker.NewNotificationProcessor(
		worker.NewLogSender(logger),
		queueClient,
		template,
		cfg.Worker.NotifyTo,
		cfg.Worker.MaxRetryCount,
		logger,
	)

	pending, err := queueClient.QueueLength(ctx)
	if err != nil {
		logger.Warn("failed to read queue length", slog.String("error", err.Error()))
	}

	logger.Info("starting notification consumer",
		slog.Int("concurrency", cfg.Worker.Concurrency),
		slog.Int("max_retry_count", cfg.Worker.MaxRetryCount),
		slog.Int64("pending_jobs", pending),
	)

	handler := func(ctx context.Context, job *models.NotificationJob) error {
		return processor.Process(ctx, job)
	}

	err = queueClient.Consume(ctx, handler, cfg.Worker.Concurrency)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("worker stopped gracefully")
}
