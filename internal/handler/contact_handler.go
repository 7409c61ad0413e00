package handler

import (
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/steadydrive/driving-school-web/internal/models"
	"github.com/steadydrive/driving-school-web/internal/service"
)

// MaxContactBodyBytes caps the size of a contact form body
const MaxContactBodyBytes = 64 << 10

// ContactHandler handles contact form HTTP requests
type ContactHandler struct {
	contactService service.ContactService
	logger         *slog.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxContactBodyBytes))
	if err != nil {
		handleError(w, models.ErrMalformed(err), h.logger)
		return
	}

	result, err := h.contactService.Submit(r.Context(), raw, clientID(r))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	// A honeypot rejection must look like success to the caller
	if result.Outcome == models.OutcomeBotRejected {
		respondSuccess(w, APIResponse{OK: true})
		return
	}

	respondSuccess(w, APIResponse{OK: true, Message: MessageReceived})
}

// clientID identifies the caller for rate limiting. RemoteAddr has already
// been rewritten from X-Forwarded-For by the RealIP middleware.
func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
