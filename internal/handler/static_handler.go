package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// StaticHandler serves the marketing pages from a directory. Extensionless
// paths map to "<path>.html" so /pricing serves pricing.html.
type StaticHandler struct {
	root  string
	files http.Handler
}

// NewStaticHandler creates a handler rooted at dir
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{
		root:  dir,
		files: http.FileServer(http.Dir(dir)),
	}
}

// ServeHTTP handles GET and HEAD for site pages and assets
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, MessageMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" && path.Ext(clean) == "" {
		page := filepath.Join(h.root, filepath.FromSlash(clean)+".html")
		if info, err := os.Stat(page); err == nil && !info.IsDir() {
			http.ServeFile(w, r, page)
			return
		}
	}

	if strings.HasPrefix(clean, "/assets/") {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("Expires", time.Now().Add(24*time.Hour).UTC().Format(http.TimeFormat))
	}

	h.files.ServeHTTP(w, r)
}
