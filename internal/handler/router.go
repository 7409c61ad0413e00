package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig collects the handlers and settings served by the site
type RouterConfig struct {
	Contact       *ContactHandler
	Packages      *PackageHandler
	Health        *HealthHandler
	Static        http.Handler
	AllowedOrigin string
	SiteURL       string
}

// NewRouter wires every route of the site
func NewRouter(cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Health)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(CORSMiddleware(cfg.AllowedOrigin))
		r.NotFound(NotFound)
		r.MethodNotAllowed(MethodNotAllowed)

		r.Post("/contact", cfg.Contact.Submit)
		if cfg.Packages != nil {
			r.Get("/packages", cfg.Packages.List)
		}
	})

	if cfg.Static != nil {
		r.With(SecurityHeadersMiddleware(cfg.SiteURL, logger)).Handle("/*", cfg.Static)
	}

	return r
}
