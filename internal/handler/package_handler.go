package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/steadydrive/driving-school-web/internal/models"
	"github.com/steadydrive/driving-school-web/internal/service"
)

// PackageHandler serves the pricing page data
type PackageHandler struct {
	packageService service.PackageService
	logger         *slog.Logger
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packageService service.PackageService, logger *slog.Logger) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
		logger:         logger,
	}
}

// PackageListResponse wraps a package listing
type PackageListResponse struct {
	OK       bool             `json:"ok"`
	Packages []models.Package `json:"packages"`
}

// List handles GET /api/packages
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := service.PackageFilter{
		Category: query.Get("category"),
		SortBy:   service.SortKey(query.Get("sort")),
	}

	if popular := query.Get("popular"); popular != "" {
		v, err := strconv.ParseBool(popular)
		if err != nil {
			handleError(w, models.ErrInvalidInput("popular must be true or false"), h.logger)
			return
		}
		filter.PopularOnly = v
	}

	packages, err := h.packageService.List(filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, PackageListResponse{OK: true, Packages: packages})
}
