package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// MaxConcurrency caps the number of jobs processed at once
const MaxConcurrency = 5

// redisClient implements Client using a Redis list
type redisClient struct {
	client      *redis.Client
	queueName   string
	pollTimeout time.Duration
	logger      *slog.Logger
}

// Dial parses a Redis URL and verifies the connection
func Dial(ctx context.Context, url string, logger *slog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis", slog.String("addr", opts.Addr))

	return client, nil
}

// NewRedisClient creates a queue client on top of an existing Redis connection
func NewRedisClient(client *redis.Client, queueName string, logger *slog.Logger) Client {
	return &redisClient{
		client:      client,
		queueName:   queueName,
		pollTimeout: time.Second,
		logger:      logger,
	}
}

// Publish sends a notification job to the queue
func (c *redisClient) Publish(ctx context.Context, job *models.NotificationJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	// LPUSH + BRPOP gives FIFO order
	if err := c.client.LPush(ctx, c.queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to push job to queue: %w", err)
	}

	c.logger.Debug("job published to queue",
		slog.String("submission_id", job.SubmissionID),
		slog.Int("attempt", job.Attempt),
	)

	return nil
}

// Consume receives jobs from the queue and processes them with the handler.
// It blocks until ctx is done and then waits for in-flight jobs.
func (c *redisClient) Consume(ctx context.Context, handler JobHandler, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}

	c.logger.Info("starting queue consumer",
		slog.String("queue", c.queueName),
		slog.Int("concurrency", concurrency),
	)

	semaphore := make(chan struct{}, concurrency)
	var inFlight sync.WaitGroup
	defer func() {
		inFlight.Wait()
		c.logger.Info("all in-flight jobs completed")
	}()

	for {
		if err := ctx.Err(); err != nil {
			c.logger.Info("consumer stopped by context, waiting for in-flight jobs to complete")
			return err
		}

		result, err := c.client.BRPop(ctx, c.pollTimeout, c.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopped by context")
				return err
			}
			c.logger.Error("failed to pop from queue", slog.String("error", err.Error()))
			// Back off to avoid a tight loop on persistent errors
			select {
			case <-time.After(c.pollTimeout):
			case <-ctx.Done():
			}
			continue
		}

		// BRPOP returns [queueName, value]
		if len(result) < 2 {
			c.logger.Error("unexpected BRPOP result format")
			continue
		}

		var job models.NotificationJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			c.logger.Error("failed to unmarshal job",
				slog.String("error", err.Error()),
				slog.String("data", result[1]),
			)
			continue
		}

		c.logger.Debug("job received from queue",
			slog.String("submission_id", job.SubmissionID),
		)

		semaphore <- struct{}{}
		inFlight.Add(1)

		go func(job models.NotificationJob) {
			defer func() {
				<-semaphore
				inFlight.Done()
			}()

			// The job is already popped; retries are the handler's concern
			if err := handler(ctx, &job); err != nil {
				c.logger.Error("handler failed to process job",
					slog.String("submission_id", job.SubmissionID),
					slog.String("error", err.Error()),
				)
			}
		}(job)
	}
}

// Close closes the Redis connection
func (c *redisClient) Close() error {
	c.logger.Info("closing Redis connection")
	return c.client.Close()
}

// Health checks if Redis is healthy
func (c *redisClient) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis health check failed: %w", err)
	}
	return nil
}

// QueueLength returns the number of jobs waiting in the queue
func (c *redisClient) QueueLength(ctx context.Context) (int64, error) {
	length, err := c.client.LLen(ctx, c.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}
	return length, nil
}
