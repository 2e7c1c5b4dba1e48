package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"givegraph/internal/http/handlers"
	"givegraph/internal/middleware"
)

// Options carries the router knobs that come from configuration.
type Options struct {
	CORSOrigins     []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
}

// NewRouter builds the chi router with the shared middleware chain and the
// API routes.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.Locale(opts.CountryLookup),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "X-Locale"},
		MaxAge:         300,
	}))

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		limit := middleware.RateLimit(opts.RateLimitPerMin, time.Minute)
		r.With(limit).Post("/auth/login", app.Login)
		r.With(limit).Post("/donations", app.DonationsCreate)
		r.Get("/users/summary/{username}", app.UsersSummary)
	})

	return r
}
