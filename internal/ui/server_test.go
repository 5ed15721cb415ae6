package ui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hrdash/internal/dataset"
	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/testutil"
	"github.com/leapstack-labs/hrdash/internal/ui/features"
)

func csvReload(t *testing.T, path string) ReloadFunc {
	logger := testutil.NewTestLogger(t)
	return func(ctx context.Context) (*pipeline.Runner, error) {
		raw, err := dataset.NewCSV(path, logger).Load(ctx)
		if err != nil {
			return nil, err
		}
		return pipeline.NewRunner(raw,
			pipeline.WithClock(func() time.Time { return features.FixedNow }),
			pipeline.WithLogger(logger))
	}
}

// firstRows returns the sample header plus the first n employees.
func firstRows(n int) string {
	lines := strings.Split(testutil.SampleCSV, "\n")
	return strings.Join(lines[:n+1], "\n") + "\n"
}

func newTestServer(t *testing.T, reload ReloadFunc, path string) *Server {
	t.Helper()
	fixture := features.SetupTestFixture(t)
	return NewServer(Config{
		Live:          fixture.Live,
		Reload:        reload,
		Watch:         true,
		WatchPath:     path,
		SessionSecret: "test-secret-key-32-bytes-long!!",
		Logger:        testutil.NewTestLogger(t),
	})
}

func TestServer_Handler(t *testing.T) {
	s := newTestServer(t, nil, "")
	h, err := s.Handler()
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestServer_Reload(t *testing.T) {
	path := testutil.WriteFile(t, "hr.csv", firstRows(2))
	s := newTestServer(t, csvReload(t, path), path)

	updates := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(updates)

	require.NoError(t, s.Reload(context.Background()))

	assert.Equal(t, uint64(2), s.live.Version())
	assert.Equal(t, 2, s.live.Runner().Rows())

	select {
	case ev := <-updates:
		assert.Equal(t, uint64(2), ev.Version)
		assert.Equal(t, 2, ev.Rows)
	case <-time.After(time.Second):
		t.Fatal("reload was not broadcast")
	}
}

func TestServer_ReloadFailureKeepsData(t *testing.T) {
	boom := errors.New("dataset unreadable")
	s := newTestServer(t, func(context.Context) (*pipeline.Runner, error) { return nil, boom }, "")
	before := s.live.Runner()

	updates := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(updates)

	err := s.Reload(context.Background())
	require.ErrorIs(t, err, boom)

	assert.Same(t, before, s.live.Runner())
	assert.Equal(t, uint64(1), s.live.Version())
	select {
	case ev := <-updates:
		t.Errorf("failed reload broadcast %+v", ev)
	default:
	}
}

func TestServer_ReloadNotConfigured(t *testing.T) {
	s := newTestServer(t, nil, "")
	assert.Error(t, s.Reload(context.Background()))
}

func TestServer_WatchDataset(t *testing.T) {
	path := testutil.WriteFile(t, "hr.csv", testutil.SampleCSV)
	s := newTestServer(t, csvReload(t, path), path)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchDataset(ctx) }()

	// Rewrite until the watcher has picked the change up.
	require.Eventually(t, func() bool {
		if s.live.Version() > 1 {
			return true
		}
		_ = os.WriteFile(path, []byte(firstRows(3)), 0o600)
		return false
	}, 5*time.Second, 200*time.Millisecond)

	assert.Equal(t, 3, s.live.Runner().Rows())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestIsDatasetChange(t *testing.T) {
	path := testutil.WriteFile(t, "hr.csv", testutil.SampleCSV)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: path, Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"sibling file", fsnotify.Event{Name: path + ".swp", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDatasetChange(tt.event, path))
		})
	}
}
