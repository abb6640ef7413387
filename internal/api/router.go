// Package api exposes the catalog and the decision engine over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"procurement-workers/internal/catalog"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/procurement"
)

// RouterConfig holds the HTTP middleware settings.
type RouterConfig struct {
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		AllowedOrigins:    []string{"*"},
		RateLimitRequests: 120,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    15 * time.Second,
	}
}

// NewRouter builds the /api routes. A zero RateLimitRequests disables rate limiting.
func NewRouter(cfg RouterConfig, svc *procurement.Service, src catalog.Source, log logger.Logger) http.Handler {
	h := NewHandler(svc, src, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			if cfg.RateLimitRequests > 0 {
				r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
			}
			r.Get("/products", h.Products)
			r.Get("/tariffs", h.Tariffs)
			r.Post("/analyze", h.Analyze)
			r.Post("/substitute", h.Substitute)
		})
	})

	return r
}
