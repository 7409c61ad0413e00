// Package catalog holds the lesson packages listed on the pricing page.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/steadydrive/driving-school-web/internal/models"
)

//go:embed packages.yaml
var packagesYAML []byte

// Catalog is an immutable list of packages
type Catalog struct {
	packages []models.Package
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(packagesYAML)
}

// Parse builds a catalog from YAML, rejecting unknown categories and duplicate IDs
func Parse(data []byte) (*Catalog, error) {
	var packages []models.Package
	if err := yaml.Unmarshal(data, &packages); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(packages))
	for _, p := range packages {
		if p.ID == "" {
			return nil, fmt.Errorf("package %q has no id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate package id %q", p.ID)
		}
		if !models.IsValidCategory(p.Category) {
			return nil, fmt.Errorf("package %q has invalid category %q", p.ID, p.Category)
		}
		seen[p.ID] = true
	}

	return &Catalog{packages: packages}, nil
}

// All returns a copy of every package in catalog order
func (c *Catalog) All() []models.Package {
	return slices.Clone(c.packages)
}
