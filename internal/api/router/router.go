package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cleanvent/leadrelay/internal/http/handlers"
	httpmiddleware "github.com/cleanvent/leadrelay/internal/http/middleware"
	"github.com/cleanvent/leadrelay/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	ContactHandler *handlers.ContactHandler
	MetricsHandler http.Handler

	CORSAllowedOrigins []string

	// Geo allowlist (ISO country codes); empty disables geo blocking.
	GeoAllowedCountries []string
	GeoBlockedPath      string

	// Staging basic-auth protection; empty host disables it.
	StagingHost     string
	StagingUser     string
	StagingPassword string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpmiddleware.StagingAuth(cfg.StagingHost, cfg.StagingUser, cfg.StagingPassword))
	r.Use(httpmiddleware.GeoBlock(cfg.GeoAllowedCountries, cfg.GeoBlockedPath, cfg.Logger))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// The form endpoint accepts POST only; everything else gets an explicit
	// method-not-allowed before any processing.
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method not allowed"}`))
	})

	r.Get("/health", handlers.Health)
	if cfg.ContactHandler != nil {
		r.Post("/api/contact", cfg.ContactHandler.Submit)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
