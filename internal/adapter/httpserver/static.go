package httpserver

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves the single-page application shell. Unmatched /api/*
// paths get the structured 404; any other path falls back to index.html so
// client-side routing works.
func (s *Server) SPAHandler() http.HandlerFunc {
	fs := http.FileServer(http.Dir(s.Cfg.StaticDir))
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeAPINotFound(w, r.URL.Path)
			return
		}
		p := filepath.Join(s.Cfg.StaticDir, filepath.Clean("/"+r.URL.Path))
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(s.Cfg.StaticDir, "index.html"))
	}
}
