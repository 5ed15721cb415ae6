// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/hrdash/internal/pipeline"
	dashboardFeature "github.com/leapstack-labs/hrdash/internal/ui/features/dashboard"
	"github.com/leapstack-labs/hrdash/internal/ui/metrics"
	"github.com/leapstack-labs/hrdash/internal/ui/notifier"
	"github.com/leapstack-labs/hrdash/internal/ui/resources"
)

// Deps are the shared services feature routes are built from.
type Deps struct {
	Live         *pipeline.Live
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	router.Handle("/metrics", deps.Metrics.Handler())

	// Feature routes, instrumented
	var err error
	router.Group(func(r chi.Router) {
		r.Use(deps.Metrics.Middleware)
		err = dashboardFeature.SetupRoutes(r, deps.Live, deps.SessionStore, deps.Notifier, deps.Metrics, deps.Logger)
	})
	return err
}
