package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/render"
	"github.com/leapstack-labs/hrdash/internal/ui/features/common"
	"github.com/leapstack-labs/hrdash/internal/ui/metrics"
	"github.com/leapstack-labs/hrdash/internal/ui/notifier"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	live         *pipeline.Live
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	metrics      *metrics.Metrics
	logger       *slog.Logger

	// selections mirrors each visitor's latest filters so a live-update
	// stream opened before a filter change re-renders the new selection.
	selections sync.Map // visitor id -> core.Selection
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	live *pipeline.Live,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		live:         live,
		sessionStore: sessionStore,
		notifier:     notify,
		metrics:      m,
		logger:       logger,
	}
}

// DashboardPage renders the full page for the visitor's saved selection.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	v := h.loadVisitor(r)
	v.Selection = withQuery(v.Selection, r.URL.Query())

	view, err := h.build(v.Selection)
	if err != nil {
		h.logger.Error("dashboard build failed", "session", v.ID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = common.Layout("Error", "", common.ErrorBox(dashboardID, err.Error())).Render(r.Context(), w)
		return
	}

	if err := v.save(w, r); err != nil {
		h.logger.Warn("session save failed", "session", v.ID, "error", err)
	}
	h.selections.Store(v.ID, v.Selection)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Page(view).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ApplyFilters reads the filter signals, stores them in the session and
// patches the dashboard element.
func (h *Handlers) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(Flash("Failed to read filters: " + err.Error()))
		return
	}

	v := h.loadVisitor(r)
	sel := signals.Selection()
	if err := validateSelection(sel, h.live.Runner().Options()); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(Flash(err.Error()))
		return
	}

	v.Selection = sel
	if err := v.save(w, r); err != nil {
		h.logger.Warn("session save failed", "session", v.ID, "error", err)
	}
	h.selections.Store(v.ID, sel)

	h.logger.Info("filters applied",
		"session", v.ID,
		"year", sel.YearOfHire,
		"status", sel.EmploymentStatus,
		"source", sel.RecruitmentSource)

	sse := datastar.NewSSE(w, r)
	view, err := h.build(sel)
	if err != nil {
		_ = sse.PatchElementTempl(Flash(err.Error()))
		return
	}
	if err := sse.PatchElementTempl(DashboardView(view)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// DashboardUpdates is the long-lived SSE endpoint. It re-patches the
// dashboard whenever a reloaded dataset is swapped in.
func (h *Handlers) DashboardUpdates(w http.ResponseWriter, r *http.Request) {
	v := h.loadVisitor(r)
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)
	h.metrics.ClientConnected()
	defer h.metrics.ClientDisconnected()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-updates:
			sel := v.Selection
			if cur, ok := h.selections.Load(v.ID); ok {
				sel = cur.(core.Selection)
			}
			h.logger.Debug("pushing reload", "session", v.ID, "version", ev.Version)

			view, err := h.build(sel)
			if err != nil {
				_ = sse.PatchElementTempl(Flash(err.Error()))
				continue
			}
			if err := sse.PatchElementTempl(DashboardView(view)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// DashboardJSON writes the dashboard for the session selection, overridden
// by year, status and source query parameters.
func (h *Handlers) DashboardJSON(w http.ResponseWriter, r *http.Request) {
	v := h.loadVisitor(r)
	sel := withQuery(v.Selection, r.URL.Query())

	view, err := h.build(sel)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view.Dashboard)
}

// ChartSVG renders one catalogue chart as SVG. Optional width and height
// query parameters size the canvas.
func (h *Handlers) ChartSVG(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v := h.loadVisitor(r)
	sel := withQuery(v.Selection, r.URL.Query())

	tbl, err := h.live.Runner().Chart(name, sel)
	if err != nil {
		var unknown *pipeline.UnknownChartError
		if errors.As(err, &unknown) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var opts []render.ChartOption
	if width, height, ok := chartSize(r); ok {
		opts = append(opts, render.WithSize(width, height))
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, tbl, opts...); err != nil {
		h.logger.Error("chart render failed", "chart", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handlers) build(sel core.Selection) (View, error) {
	version := h.live.Version()
	runner := h.live.Runner()

	start := time.Now()
	d, err := runner.Build(sel)
	if err != nil {
		return View{}, err
	}
	h.metrics.ObserveBuild(time.Since(start))
	return View{Dashboard: d, Version: version}, nil
}

// validateSelection rejects values that are not among the offered options.
func validateSelection(sel core.Selection, opts core.FilterOptions) error {
	checks := []struct {
		dim     core.Dimension
		value   string
		options []string
	}{
		{core.DimYearOfHire, sel.YearOfHire, opts.Years},
		{core.DimEmploymentStatus, sel.EmploymentStatus, opts.Statuses},
		{core.DimRecruitmentSource, sel.RecruitmentSource, opts.Sources},
	}
	for _, c := range checks {
		if c.value != core.All && !slices.Contains(c.options, c.value) {
			return fmt.Errorf("unknown %s %q", c.dim.Label(), c.value)
		}
	}
	return nil
}

const (
	minChartSide = 200
	maxChartSide = 2000
)

func chartSize(r *http.Request) (int, int, bool) {
	q := r.URL.Query()
	width, err1 := strconv.Atoi(q.Get("width"))
	height, err2 := strconv.Atoi(q.Get("height"))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return clamp(width), clamp(height), true
}

func clamp(n int) int {
	return max(minChartSide, min(n, maxChartSide))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
