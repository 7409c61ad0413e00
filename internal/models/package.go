package models

// Package category constants
const (
	CategoryLessons   = "lessons"
	CategoryTestPrep  = "test-prep"
	CategoryBundle    = "bundle"
	CategoryRefresher = "refresher"
)

// Package is a driving lesson package offered on the pricing page
type Package struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Lessons     int    `json:"lessons" yaml:"lessons"`
	Hours       int    `json:"hours" yaml:"hours"`
	PriceCents  int64  `json:"price_cents" yaml:"price_cents"`
	Popular     bool   `json:"popular" yaml:"popular"`
	Description string `json:"description" yaml:"description"`
}

// IsValidCategory checks if the category is known
func IsValidCategory(category string) bool {
	switch category {
	case CategoryLessons, CategoryTestPrep, CategoryBundle, CategoryRefresher:
		return true
	default:
		return false
	}
}
