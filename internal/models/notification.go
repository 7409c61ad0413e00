package models

import "time"

// NotificationJob represents an email notification queued for the worker
type NotificationJob struct {
	SubmissionID string             `json:"submission_id"`
	Submission   *ContactSubmission `json:"submission"`
	Attempt      int                `json:"attempt"`
	EnqueuedAt   time.Time          `json:"enqueued_at"`
}

// CanRetry checks if a failed job may be re-queued
func (j *NotificationJob) CanRetry(maxRetries int) bool {
	return j.Attempt+1 < maxRetries
}
