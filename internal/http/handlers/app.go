package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"givegraph/internal/cache"
	"givegraph/internal/domain"
	"givegraph/internal/events"
	"givegraph/internal/referral"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Store     domain.Store
	Summaries *referral.Service
	Cache     *cache.SummaryCache
	Events    *events.Publisher
	Logger    zerolog.Logger
}

// NewApp wires the handler container around an injected store.
func NewApp(store domain.Store, summaries *referral.Service, summaryCache *cache.SummaryCache, publisher *events.Publisher, logger zerolog.Logger) *App {
	return &App{
		Store:     store,
		Summaries: summaries,
		Cache:     summaryCache,
		Events:    publisher,
		Logger:    logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": slug, "message": msg},
	})
}
