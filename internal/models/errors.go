package models

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types
var (
	ErrNotFound         = errors.New("resource not found")
	ErrMalformedRequest = errors.New("malformed request body")
	ErrRateLimited      = errors.New("rate limit exceeded")
)

// Error codes carried by AppError
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeMalformedRequest = "MALFORMED_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeRateLimited      = "RATE_LIMITED"
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// ErrMalformed wraps a decode failure so callers can match ErrMalformedRequest
func ErrMalformed(err error) error {
	return &AppError{
		Code:    CodeMalformedRequest,
		Message: "Malformed request body",
		Err:     fmt.Errorf("%w: %v", ErrMalformedRequest, err),
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrTooManyRequests creates a rate limit error
func ErrTooManyRequests() error {
	return &AppError{
		Code:    CodeRateLimited,
		Message: "Too many requests",
		Err:     ErrRateLimited,
	}
}

// ValidationError carries every field-level issue found in one submission
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.PathString(), issue.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
