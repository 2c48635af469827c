package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/viniciusgdoliveira/portfolio-api/internal/content"
	mw "github.com/viniciusgdoliveira/portfolio-api/internal/middleware"
	"github.com/viniciusgdoliveira/portfolio-api/internal/ratelimit"
)

// HandlerSet holds handler functions injected from main.go to avoid import cycles.
type HandlerSet struct {
	// Chat handlers
	ChatComplete http.HandlerFunc
	ChatStatus   http.HandlerFunc

	// Contact handler
	ContactSubmit http.HandlerFunc
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	CORSAllowedOrigins []string
	ContactBurstLimit  func(http.Handler) http.Handler
	RateLimitStore     ratelimit.Store
}

func NewRouter(cfg RouterConfig, h HandlerSet) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(mw.Logging)
	r.Use(mw.Recovery)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(mw.CORS(cfg.CORSAllowedOrigins)))

	// Liveness probe: always 200, no dependency checks
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})

	// Readiness probe: checks the rate-limit store backend
	readinessHandler := func(w http.ResponseWriter, r *http.Request) {
		health := map[string]string{
			"status": "healthy",
			"store":  "healthy",
		}
		status := http.StatusOK

		if cfg.RateLimitStore != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.RateLimitStore.Ping(ctx); err != nil {
				health["store"] = "unhealthy"
				health["status"] = "degraded"
				status = http.StatusServiceUnavailable
			}
		} else {
			health["store"] = "not configured"
		}

		JSON(w, status, health)
	}

	r.Get("/health/ready", readinessHandler)
	r.Get("/health", readinessHandler)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.ChatComplete)
		r.Get("/chat", h.ChatStatus)

		r.Group(func(r chi.Router) {
			if cfg.ContactBurstLimit != nil {
				r.Use(cfg.ContactBurstLimit)
			}
			r.Post("/contact", h.ContactSubmit)
		})

		r.Route("/data", func(r chi.Router) {
			r.Get("/projects", content.HandleProjects())
			r.Get("/about-sections", content.HandleAboutSections())
		})
	})

	return r
}
