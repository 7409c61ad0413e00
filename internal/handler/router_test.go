package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadydrive/driving-school-web/internal/catalog"
	"github.com/steadydrive/driving-school-web/internal/service"
)

func newSiteRouter(t *testing.T, checks map[string]HealthCheck) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Home</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.html"), []byte("<h1>Pricing</h1>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "site.css"), []byte("body{}"), 0o644))

	packages, err := catalog.Default()
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Contact:       NewContactHandler(&mockContactService{}, testLogger()),
		Packages:      NewPackageHandler(service.NewPackageService(packages), testLogger()),
		Health:        NewHealthHandler(checks, testLogger()),
		Static:        NewStaticHandler(dir),
		AllowedOrigin: "*",
		SiteURL:       "https://www.steadydrive.example",
	}, testLogger())
	return router, dir
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouter_StaticPages(t *testing.T) {
	router, _ := newSiteRouter(t, nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "home", target: "/", wantStatus: http.StatusOK, wantBody: "<h1>Home</h1>"},
		{name: "extensionless page", target: "/pricing", wantStatus: http.StatusOK, wantBody: "<h1>Pricing</h1>"},
		{name: "asset", target: "/assets/site.css", wantStatus: http.StatusOK, wantBody: "body{}"},
		{name: "missing page", target: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			csp := rec.Header().Get("Content-Security-Policy")
			assert.Contains(t, csp, "default-src")
			assert.Contains(t, csp, "'self'")
			assert.Contains(t, csp, "www.steadydrive.example")
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestRouter_AssetsAreCached(t *testing.T) {
	router, _ := newSiteRouter(t, nil)

	rec := get(router, "/assets/site.css")
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("Expires"))

	rec = get(router, "/pricing")
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestRouter_StaticRejectsWrites(t *testing.T) {
	router, _ := newSiteRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pricing", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestRouter_UnknownAPIRoute(t *testing.T) {
	router, _ := newSiteRouter(t, nil)

	rec := get(router, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Not found"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestRouter_Packages(t *testing.T) {
	router, _ := newSiteRouter(t, nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantIDs    []string
	}{
		{
			name:       "bundles by price",
			target:     "/api/packages?category=bundle&sort=price-asc",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"adult-bundle", "teen-bundle", "complete-bundle"},
		},
		{
			name:       "popular refreshers",
			target:     "/api/packages?category=refresher&popular=true",
			wantStatus: http.StatusOK,
			wantIDs:    []string{},
		},
		{name: "bad popular flag", target: "/api/packages?popular=maybe", wantStatus: http.StatusBadRequest},
		{name: "bad sort", target: "/api/packages?sort=alphabetical", wantStatus: http.StatusBadRequest},
		{name: "bad category", target: "/api/packages?category=trucks", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantIDs == nil {
				assert.Contains(t, rec.Body.String(), `"ok":false`)
				return
			}

			var resp PackageListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, resp.OK)
			ids := make([]string, 0, len(resp.Packages))
			for _, p := range resp.Packages {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no dependencies",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"healthy","services":{}}`,
		},
		{
			name: "all healthy",
			checks: map[string]HealthCheck{
				"database": func(ctx context.Context) error { return nil },
				"queue":    func(ctx context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"healthy","services":{"database":"healthy","queue":"healthy"}}`,
		},
		{
			name: "queue down",
			checks: map[string]HealthCheck{
				"database": func(ctx context.Context) error { return nil },
				"queue":    func(ctx context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unhealthy","services":{"database":"healthy","queue":"unhealthy"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newSiteRouter(t, tt.checks)
			rec := get(router, "/health")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := get(h, "/api/contact")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Internal server error"}`, rec.Body.String())
}
