package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/steadydrive/driving-school-web/internal/models"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusUnprocessableEntity, APIResponse{
			OK:      false,
			Message: MessageValidationFailed,
			Errors:  validationErr.Issues,
		})
		return
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusForCode(appErr.Code); ok {
			respondError(w, status, appErr.Message)
			return
		}
	}

	// Log internal errors but don't expose details to client
	logger.Error("internal server error",
		slog.String("error", err.Error()),
	)
	respondError(w, http.StatusInternalServerError, MessageInternalError)
}

// statusForCode maps client error codes to HTTP status codes
func statusForCode(code string) (int, bool) {
	switch code {
	case models.CodeInvalidInput, models.CodeMalformedRequest:
		return http.StatusBadRequest, true
	case models.CodeNotFound:
		return http.StatusNotFound, true
	case models.CodeRateLimited:
		return http.StatusTooManyRequests, true
	default:
		return 0, false
	}
}
