// Package ui provides the web dashboard for hrdash.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/ui/metrics"
	"github.com/leapstack-labs/hrdash/internal/ui/notifier"
	"github.com/leapstack-labs/hrdash/internal/ui/router"
)

// ReloadFunc loads the dataset again and prepares a runner over it.
type ReloadFunc func(ctx context.Context) (*pipeline.Runner, error)

// Server is the main UI server.
type Server struct {
	live         *pipeline.Live
	reload       ReloadFunc
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	watchPath    string
	logger       *slog.Logger
	notifier     *notifier.Notifier
	metrics      *metrics.Metrics

	reloadMu sync.Mutex
}

// Config holds configuration for the UI server.
type Config struct {
	Live          *pipeline.Live
	Reload        ReloadFunc
	Port          int
	Watch         bool
	WatchPath     string // dataset file to watch; empty disables watching
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		live:         cfg.Live,
		reload:       cfg.Reload,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		watchPath:    cfg.WatchPath,
		logger:       logger,
		notifier:     notifier.New(),
		metrics:      metrics.New(),
	}
	s.metrics.Loaded(s.live.Version(), s.live.Runner().Rows())
	return s
}

// Handler builds the routed, instrumented HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	err := router.SetupRoutes(r, router.Deps{
		Live:         s.live,
		SessionStore: s.sessionStore,
		Notifier:     s.notifier,
		Metrics:      s.metrics,
		Logger:       s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.watchPath != "" && s.reload != nil {
		eg.Go(func() error {
			return s.watchDataset(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Reload loads the dataset again and, on success, swaps the new runner in
// and notifies connected clients. On failure the current runner keeps
// serving and the error is returned.
func (s *Server) Reload(ctx context.Context) error {
	if s.reload == nil {
		return errors.New("reload not configured")
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	runner, err := s.reload(ctx)
	s.metrics.Reloaded(err)
	if err != nil {
		s.logger.Error("dataset reload failed, keeping previous data",
			"error", err,
			"version", s.live.Version())
		return err
	}

	version := s.live.Swap(runner)
	s.metrics.Loaded(version, runner.Rows())
	s.logger.Info("dataset reloaded",
		"version", version,
		"rows", runner.Rows(),
		"duration", time.Since(start))

	s.notifier.Broadcast(notifier.Event{Version: version, Rows: runner.Rows(), At: runner.LoadedAt()})
	return nil
}

// watchDataset reloads whenever the dataset file is written or replaced.
// The parent directory is watched so editors that save by rename are seen.
func (s *Server) watchDataset(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	target, err := filepath.Abs(s.watchPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Error("failed to watch dataset directory", "path", target, "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}
	s.logger.Debug("watching dataset", "path", target)

	// Debounce: reload once writes have been quiet for 100ms. The reload
	// runs on this goroutine so none is in flight after return.
	var debounce <-chan time.Time
	var changed string

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDatasetChange(event, target) {
				continue
			}
			changed = event.Name
			debounce = time.After(100 * time.Millisecond)

		case <-debounce:
			debounce = nil
			s.logger.Debug("dataset changed, reloading", "file", changed)
			_ = s.Reload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isDatasetChange(event fsnotify.Event, target string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == target
}
