package worker

import (
	"context"
	"log/slog"
)

// Email is a rendered staff notification
type Email struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// EmailSender defines the interface for delivering notifications
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

// logSender writes emails to the log instead of delivering them
type logSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs the email it would deliver
func NewLogSender(logger *slog.Logger) EmailSender {
	return &logSender{logger: logger}
}

// Send logs the email
func (s *logSender) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "notification email",
		slog.String("to", email.To),
		slog.String("reply_to", email.ReplyTo),
		slog.String("subject", email.Subject),
		slog.Int("body_bytes", len(email.Body)),
	)

	return nil
}
