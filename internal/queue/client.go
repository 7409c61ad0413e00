package queue

import (
	"context"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// Client defines the interface for queue operations
type Client interface {
	// Publish sends a notification job to the queue
	Publish(ctx context.Context, job *models.NotificationJob) error

	// Consume receives jobs from the queue and processes them with the handler
	// concurrency controls how many jobs can be processed simultaneously
	Consume(ctx context.Context, handler JobHandler, concurrency int) error

	// QueueLength returns the number of jobs waiting to be consumed
	QueueLength(ctx context.Context) (int64, error)

	// Close closes the queue connection
	Close() error

	// Health checks if the queue is healthy
	Health(ctx context.Context) error
}

// JobHandler is a function that processes a notification job
type JobHandler func(ctx context.Context, job *models.NotificationJob) error
