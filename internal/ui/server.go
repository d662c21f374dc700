// Package ui provides the JSON API server for boolstep.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/boolstep/internal/presets"
	"github.com/leapstack-labs/boolstep/internal/ui/notifier"
	"github.com/leapstack-labs/boolstep/internal/ui/router"
)

// debounce is how long the watcher waits for writes to settle.
const debounce = 100 * time.Millisecond

// Server is the API server.
type Server struct {
	source       *presets.Source
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	variables    int
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the API server.
type Config struct {
	Presets       *presets.Source
	Port          int
	Watch         bool
	Variables     int // mode used when a request omits vars
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		source:       cfg.Presets,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		variables:    cfg.Variables,
		logger:       cfg.Logger,
		notifier:     notifier.New(),
	}
}

// Handler builds the router with middleware and all API routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.source, s.sessionStore, s.notifier, s.variables, s.logger); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.source.Path() != "" {
		eg.Go(func() error {
			return s.watchPresets(egctx)
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

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchPresets reloads the catalogue when its file changes. The parent
// directory is watched so that editors replacing the file are seen.
func (s *Server) watchPresets(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	path, err := filepath.Abs(s.source.Path())
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		s.logger.Error("failed to watch presets file", "path", path, "error", err)
		// Keep serving without reloads.
		<-ctx.Done()
		return nil
	}
	s.logger.Debug("watching presets file", "path", path)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, s.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reload re-reads the catalogue and notifies SSE clients. A broken file
// leaves the previous catalogue in place.
func (s *Server) reload() {
	if err := s.source.Reload(); err != nil {
		s.logger.Error("failed to reload presets", "error", err)
		return
	}
	rev := s.notifier.Broadcast()
	s.logger.Info("presets reloaded",
		"presets", len(s.source.Catalog().Presets),
		"revision", rev)
}
