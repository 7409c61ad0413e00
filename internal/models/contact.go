package models

import (
	"fmt"
	"strings"
	"time"
)

// Field constraints for a contact submission
const (
	NameMinLength    = 1
	NameMaxLength    = 30
	PhoneMaxLength   = 64
	MessageMinLength = 10
	MessageMaxLength = 2000
	MaxTopics        = 6
)

// Issue codes reported to the contact form
const (
	IssueInvalidType   = "invalid_type"
	IssueTooSmall      = "too_small"
	IssueTooBig        = "too_big"
	IssueInvalidString = "invalid_string"
	IssueCustom        = "custom"
)

// ContactRequest is a decoded contact form body that has not been validated yet
type ContactRequest struct {
	FirstName string   `json:"firstName" validate:"required,min=1,max=30"`
	LastName  string   `json:"lastName" validate:"required,min=1,max=30"`
	Phone     string   `json:"phone" validate:"required,phone,max=64"`
	Email     string   `json:"email" validate:"required,email"`
	Message   string   `json:"message" validate:"required,min=10,max=2000"`
	Topics    []string `json:"topics,omitempty" validate:"omitempty,max=6"`
	Company   string   `json:"company,omitempty"`
}

// ContactSubmission is the normalized form of an accepted contact request.
// It is built once and never mutated.
type ContactSubmission struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	Topics     []string  `json:"topics"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// FullName joins first and last name
func (s *ContactSubmission) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// ValidationIssue is a single field-level failure.
// Path elements are field names (string) or array indexes (int).
type ValidationIssue struct {
	Path    []any  `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// PathString renders the path as a dotted string, e.g. "topics.2"
func (i ValidationIssue) PathString() string {
	if len(i.Path) == 0 {
		return "(root)"
	}
	parts := make([]string, len(i.Path))
	for n, p := range i.Path {
		parts[n] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".")
}

// ContactOutcome describes how an inbound submission was resolved
type ContactOutcome string

// Contact outcomes
const (
	OutcomeAccepted    ContactOutcome = "accepted"
	OutcomeBotRejected ContactOutcome = "bot_rejected"
)

// ContactResult is returned by the contact service for requests that did not fail
type ContactResult struct {
	Outcome    ContactOutcome
	Submission *ContactSubmission
}

// SubmissionEvent is the record handed to the observability sink
type SubmissionEvent struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Topics    []string  `json:"topics"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSubmissionEvent builds the sink record for a submission
func NewSubmissionEvent(s *ContactSubmission) SubmissionEvent {
	return SubmissionEvent{
		Name:      s.FullName(),
		Email:     s.Email,
		Phone:     s.Phone,
		Message:   s.Message,
		Topics:    s.Topics,
		Timestamp: s.ReceivedAt,
	}
}
