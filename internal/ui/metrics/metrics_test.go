package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/charts/{name}.svg", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/charts/a.svg", "/charts/b.svg", "/"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/charts/{name}.svg", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/", "GET", "200")))
}

func TestReloadAndDatasetGauges(t *testing.T) {
	m := New()

	m.Loaded(3, 311)
	m.Reloaded(nil)
	m.Reloaded(errors.New("boom"))
	m.Reloaded(errors.New("boom"))

	assert.Equal(t, 311.0, testutil.ToFloat64(m.datasetRows))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.datasetVersion))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.reloads.WithLabelValues("error")))

	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sseClients))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.ObserveBuild(2 * time.Millisecond)
	m.Loaded(1, 6)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hrdash_dataset_rows 6")
	assert.Contains(t, string(body), "hrdash_dashboard_build_duration_seconds_count 1")
	assert.Contains(t, string(body), "go_goroutines")
}
