package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/waha-alert-relay/internal/infra/http/handlers"
	"github.com/xavierca1/waha-alert-relay/internal/infra/http/middleware"
)

type Options struct {
	AllowedOrigins []string
	MetricsEnabled bool
	// Quiet desliga o log de acesso (usado nos testes).
	Quiet bool
}

func New(health *handlers.HealthHandler, send *handlers.SendHandler, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if !opts.Quiet {
		r.Use(middleware.AccessLogger)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "X-Api-Key", "X-Waha-Api-Key", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	r.Get("/health", health.Handle)
	r.Get("/send", send.Handle)
	r.Post("/send", send.Handle)
	if opts.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	return r
}
