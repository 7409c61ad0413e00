package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/steadydrive/driving-school-web/internal/models"
	"github.com/steadydrive/driving-school-web/internal/queue"
)

type queueNotifier struct {
	queueClient queue.Client
	now         func() time.Time
	logger      *slog.Logger
}

// NewQueueNotifier creates a notifier that hands submissions to the worker queue
func NewQueueNotifier(queueClient queue.Client, logger *slog.Logger) Notifier {
	return &queueNotifier{
		queueClient: queueClient,
		now:         time.Now,
		logger:      logger,
	}
}

// SendEmail enqueues a notification job for the submission
func (n *queueNotifier) SendEmail(ctx context.Context, submission *models.ContactSubmission) error {
	job := &models.NotificationJob{
		SubmissionID: submission.ID,
		Submission:   submission,
		EnqueuedAt:   n.now().UTC(),
	}

	if err := n.queueClient.Publish(ctx, job); err != nil {
		return fmt.Errorf("failed to queue notification: %w", err)
	}

	n.logger.Debug("notification queued",
		slog.String("submission_id", submission.ID),
	)

	return nil
}
