package service

import (
	"context"
	"log/slog"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// SubmissionRecorder receives every accepted submission for observability
type SubmissionRecorder interface {
	Record(ctx context.Context, event models.SubmissionEvent) error
}

// Store persists accepted submissions
type Store interface {
	Persist(ctx context.Context, submission *models.ContactSubmission) error
}

// Notifier tells staff about accepted submissions
type Notifier interface {
	SendEmail(ctx context.Context, submission *models.ContactSubmission) error
}

// RateLimiter decides whether a client may submit again
type RateLimiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}

type logRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder creates a recorder that writes submissions to the structured log
func NewLogRecorder(logger *slog.Logger) SubmissionRecorder {
	return &logRecorder{logger: logger}
}

// Record logs the submission event
func (r *logRecorder) Record(ctx context.Context, event models.SubmissionEvent) error {
	r.logger.LogAttrs(ctx, slog.LevelInfo, "contact submission received",
		slog.String("name", event.Name),
		slog.String("email", event.Email),
		slog.String("phone", event.Phone),
		slog.String("message", event.Message),
		slog.Any("topics", event.Topics),
		slog.Time("timestamp", event.Timestamp),
	)
	return nil
}
