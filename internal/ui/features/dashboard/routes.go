// Package dashboard serves the filterable HR dashboard page, its live
// updates, chart images and JSON.
package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/ui/metrics"
	"github.com/leapstack-labs/hrdash/internal/ui/notifier"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(
	router chi.Router,
	live *pipeline.Live,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(live, sessionStore, notify, m, logger)

	router.Get("/", handlers.DashboardPage)
	router.Get("/updates", handlers.DashboardUpdates)
	router.Post("/api/filters", handlers.ApplyFilters)
	router.Get("/api/dashboard", handlers.DashboardJSON)
	router.Get("/charts/{name}.svg", handlers.ChartSVG)

	return nil
}
