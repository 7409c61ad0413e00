package service

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/steadydrive/driving-school-web/internal/catalog"
	"github.com/steadydrive/driving-school-web/internal/models"
)

func packageIDs(packages []models.Package) []string {
	ids := make([]string, len(packages))
	for i, p := range packages {
		ids[i] = p.ID
	}
	return ids
}

func TestPackageService_List(t *testing.T) {
	packages, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	svc := NewPackageService(packages)

	tests := []struct {
		name    string
		filter  PackageFilter
		want    []string
		wantErr bool
	}{
		{
			name:   "bundles by hours",
			filter: PackageFilter{Category: models.CategoryBundle, SortBy: SortHours},
			want:   []string{"adult-bundle", "teen-bundle", "complete-bundle"},
		},
		{
			name:   "test prep by price descending",
			filter: PackageFilter{Category: models.CategoryTestPrep, SortBy: SortPriceDesc},
			want:   []string{"road-test-prep", "road-test-car", "permit-course"},
		},
		{
			name:   "popular only keeps catalog order",
			filter: PackageFilter{PopularOnly: true},
			want:   []string{"starter-5", "starter-10", "road-test-prep", "teen-bundle"},
		},
		{
			name:   "popular only by price",
			filter: PackageFilter{PopularOnly: true, SortBy: SortPriceAsc},
			want:   []string{"road-test-prep", "starter-5", "starter-10", "teen-bundle"},
		},
		{
			name:   "refreshers",
			filter: PackageFilter{Category: models.CategoryRefresher},
			want:   []string{"refresher-2", "senior-refresher"},
		},
		{
			name:   "popular first then cheapest",
			filter: PackageFilter{SortBy: SortPopular},
			want: []string{
				"road-test-prep", "starter-5", "starter-10", "teen-bundle",
				"starter-1", "permit-course", "refresher-2", "road-test-car",
				"senior-refresher", "adult-bundle", "extended-20", "complete-bundle",
			},
		},
		{
			name:   "equal hours keep catalog order",
			filter: PackageFilter{SortBy: SortHours},
			want: []string{
				"starter-1", "road-test-car", "refresher-2", "road-test-prep",
				"senior-refresher", "starter-5", "permit-course", "starter-10",
				"adult-bundle", "teen-bundle", "extended-20", "complete-bundle",
			},
		},
		{
			name:    "unknown category",
			filter:  PackageFilter{Category: "motorcycle"},
			wantErr: true,
		},
		{
			name:    "unknown sort",
			filter:  PackageFilter{SortBy: "name"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(tt.filter)
			if tt.wantErr {
				var appErr *models.AppError
				if !errors.As(err, &appErr) || appErr.Code != models.CodeInvalidInput {
					t.Fatalf("List() error = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("List() unexpected error = %v", err)
			}
			if diff := cmp.Diff(tt.want, packageIDs(got)); diff != "" {
				t.Errorf("List() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPackageService_ListDoesNotMutateCatalog(t *testing.T) {
	packages, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	before := packages.All()

	svc := NewPackageService(packages)
	if _, err := svc.List(PackageFilter{SortBy: SortPriceDesc}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, err := svc.List(PackageFilter{Category: models.CategoryLessons}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if diff := cmp.Diff(before, packages.All()); diff != "" {
		t.Errorf("catalog changed after List (-before +after):\n%s", diff)
	}
}
