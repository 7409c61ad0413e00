package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// Publisher re-queues jobs that should be retried
type Publisher interface {
	Publish(ctx context.Context, job *models.NotificationJob) error
}

// NotificationProcessor turns queued submissions into staff emails
type NotificationProcessor struct {
	sender     EmailSender
	requeue    Publisher
	template   *EmailTemplate
	notifyTo   string
	maxRetries int
	logger     *slog.Logger
}

// NewNotificationProcessor creates a new notification processor
func NewNotificationProcessor(
	sender EmailSender,
	requeue Publisher,
	template *EmailTemplate,
	notifyTo string,
	maxRetries int,
	logger *slog.Logger,
) *NotificationProcessor {
	return &NotificationProcessor{
		sender:     sender,
		requeue:    requeue,
		template:   template,
		notifyTo:   notifyTo,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Process handles a single notification job
func (p *NotificationProcessor) Process(ctx context.Context, job *models.NotificationJob) error {
	if job.Submission == nil {
		// Nothing to deliver; retrying cannot fix it
		p.logger.Error("notification job has no submission",
			slog.String("submission_id", job.SubmissionID),
		)
		return nil
	}

	p.logger.Info("processing notification",
		slog.String("submission_id", job.SubmissionID),
		slog.Int("attempt", job.Attempt),
	)

	err := p.sender.Send(ctx, p.template.Render(p.notifyTo, job.Submission))
	if err != nil {
		p.logger.Warn("notification send failed",
			slog.String("submission_id", job.SubmissionID),
			slog.Int("attempt", job.Attempt),
			slog.String("error", err.Error()),
		)
		return p.handleFailure(ctx, job, err)
	}

	p.logger.Info("notification sent",
		slog.String("submission_id", job.SubmissionID),
	)

	return nil
}

// handleFailure re-queues the job until maxRetries attempts have been made
func (p *NotificationProcessor) handleFailure(ctx context.Context, job *models.NotificationJob, sendErr error) error {
	if errors.Is(sendErr, context.Canceled) {
		return sendErr
	}

	if !job.CanRetry(p.maxRetries) {
		p.logger.Error("notification permanently failed after max retries",
			slog.String("submission_id", job.SubmissionID),
			slog.Int("attempts", job.Attempt+1),
			slog.Int("max_retries", p.maxRetries),
		)
		return nil // Job processed (albeit failed)
	}

	retry := *job
	retry.Attempt++
	if err := p.requeue.Publish(ctx, &retry); err != nil {
		p.logger.Error("failed to re-queue notification",
			slog.String("submission_id", job.SubmissionID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to re-queue notification: %w", err)
	}

	p.logger.Info("notification will be retried",
		slog.String("submission_id", job.SubmissionID),
		slog.Int("attempt", retry.Attempt),
		slog.Int("max_retries", p.maxRetries),
	)

	return fmt.Errorf("send failed, retry %d/%d: %w", retry.Attempt, p.maxRetries, sendErr)
}
