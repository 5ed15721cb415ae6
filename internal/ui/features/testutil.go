// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hrdash/internal/dataset"
	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/testutil"
	"github.com/leapstack-labs/hrdash/internal/ui/metrics"
	"github.com/leapstack-labs/hrdash/internal/ui/notifier"
)

// FixedNow is the clock test runners derive ages against.
var FixedNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Live         *pipeline.Live
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Metrics      *metrics.Metrics
	DatasetPath  string
}

// SetupTestFixture loads testutil.SampleCSV into a live runner.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	path := testutil.WriteSampleCSV(t)
	runner := LoadRunner(t, path)

	return &TestFixture{
		Live:         pipeline.NewLive(runner),
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		Metrics:      metrics.New(),
		DatasetPath:  path,
	}
}

// LoadRunner loads a CSV dataset and wraps it in a runner on FixedNow.
func LoadRunner(t *testing.T, path string) *pipeline.Runner {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	raw, err := dataset.NewCSV(path, logger).Load(context.Background())
	require.NoError(t, err)

	runner, err := pipeline.NewRunner(raw,
		pipeline.WithClock(func() time.Time { return FixedNow }),
		pipeline.WithLogger(logger))
	require.NoError(t, err)
	return runner
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithCookies copies the cookies a previous response set onto r.
func RequestWithCookies(r *http.Request, from *http.Response) *http.Request {
	for _, c := range from.Cookies() {
		r.AddCookie(c)
	}
	return r
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
