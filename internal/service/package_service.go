package service

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/steadydrive/driving-school-web/internal/catalog"
	"github.com/steadydrive/driving-school-web/internal/models"
)

// SortKey orders package listings
type SortKey string

// Sort keys
const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortHours     SortKey = "hours"
	SortPopular   SortKey = "popular"
)

// PackageFilter holds filtering options for listing packages
type PackageFilter struct {
	Category    string
	PopularOnly bool
	SortBy      SortKey
}

// PackageService lists lesson packages
type PackageService interface {
	List(filter PackageFilter) ([]models.Package, error)
}

type packageService struct {
	catalog *catalog.Catalog
}

// NewPackageService creates a new package service
func NewPackageService(packages *catalog.Catalog) PackageService {
	return &packageService{catalog: packages}
}

// List returns the packages matching filter, sorted by filter.SortBy.
// Ties keep catalog order.
func (s *packageService) List(filter PackageFilter) ([]models.Package, error) {
	if filter.Category != "" && !models.IsValidCategory(filter.Category) {
		return nil, models.ErrInvalidInput(fmt.Sprintf("invalid category: %s", filter.Category))
	}

	compare, err := comparatorFor(filter.SortBy)
	if err != nil {
		return nil, err
	}

	packages := slices.DeleteFunc(s.catalog.All(), func(p models.Package) bool {
		if filter.Category != "" && p.Category != filter.Category {
			return true
		}
		return filter.PopularOnly && !p.Popular
	})

	if compare != nil {
		slices.SortStableFunc(packages, compare)
	}

	return packages, nil
}

func comparatorFor(key SortKey) (func(a, b models.Package) int, error) {
	switch key {
	case SortNone:
		return nil, nil
	case SortPriceAsc:
		return func(a, b models.Package) int { return cmp.Compare(a.PriceCents, b.PriceCents) }, nil
	case SortPriceDesc:
		return func(a, b models.Package) int { return cmp.Compare(b.PriceCents, a.PriceCents) }, nil
	case SortHours:
		return func(a, b models.Package) int { return cmp.Compare(a.Hours, b.Hours) }, nil
	case SortPopular:
		return func(a, b models.Package) int {
			if a.Popular != b.Popular {
				if a.Popular {
					return -1
				}
				return 1
			}
			return cmp.Compare(a.PriceCents, b.PriceCents)
		}, nil
	default:
		return nil, models.ErrInvalidInput(fmt.Sprintf("invalid sort: %s", key))
	}
}
