// Package app wires configuration, middleware and routes into the HTTP
// handler and provides readiness checks.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/balajircs83/AI-Interview-Platform/internal/adapter/httpserver"
	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/observability"
	"github.com/balajircs83/AI-Interview-Platform/internal/config"
)

// ParseOrigins splits a comma-separated origin list, trimming spaces. Empty
// input means allow all.
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(90 * time.Second))
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limit mutating endpoints
	r.Group(func(wr chi.Router) {
		wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		wr.Post("/api/interview/start", srv.StartHandler())
		wr.Post("/api/evaluate", srv.EvaluateHandler())
		wr.Post("/api/interview/complete", srv.CompleteHandler())
		wr.Post("/api/analytics/metric", srv.MetricHandler())
	})

	// Read-only endpoints
	r.Get("/api/session/{sessionID}", srv.SessionHandler())
	r.Get("/api/user/{userID}/performance", srv.PerformanceHandler())
	r.Get("/api/user/{userID}/history", srv.HistoryHandler())
	r.Get("/api/analytics/questions", srv.QuestionAnalyticsHandler())

	// Health and metrics
	r.Get("/health", srv.HealthHandler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })

	// Everything else: structured 404 for /api/*, SPA shell otherwise
	r.NotFound(srv.SPAHandler())

	return httpserver.SecurityHeaders(r)
}
