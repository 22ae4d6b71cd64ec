// Package ui provides the web server for the tattoo preview studio.
package ui

import (
	"context"
	"fmt"
	"io/fs"
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

	"github.com/inkworks-labs/inkstudio/internal/generation"
	"github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
	"github.com/inkworks-labs/inkstudio/internal/ui/notifier"
	"github.com/inkworks-labs/inkstudio/internal/ui/resources"
	"github.com/inkworks-labs/inkstudio/internal/ui/router"
)

// Server is the studio web server.
type Server struct {
	port      int
	watch     bool
	cookies   *sessions.CookieStore
	sessions  *studio.Store
	client    *tattoo.Client
	generator *generation.Handlers
	logger    *slog.Logger
	notifier  *notifier.Notifier
}

// Config holds configuration for the studio server.
type Config struct {
	Port          int
	Watch         bool
	SessionSecret string
	SessionTTL    time.Duration
	Client        *tattoo.Client
	Generator     *generation.Handlers
	Logger        *slog.Logger
}

// NewServer creates a new studio server instance.
func NewServer(cfg Config) *Server {
	cookies := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookies.MaxAge(86400 * 30) // 30 days
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.SameSite = http.SameSiteLaxMode

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = studio.DefaultSessionTTL
	}

	return &Server{
		port:      cfg.Port,
		watch:     cfg.Watch,
		cookies:   cookies,
		sessions:  studio.NewStore(ttl),
		client:    cfg.Client,
		generator: cfg.Generator,
		logger:    cfg.Logger,
		notifier:  notifier.New(),
	}
}

// Serve starts the studio server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting studio server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	router.SetupRoutes(r, s.sessions, s.cookies, s.client, s.generator, s.notifier, s.logger, resources.IsDev)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Idle session eviction
	eg.Go(func() error {
		s.sessions.Janitor(egctx)
		return nil
	})

	// Asset watcher, dev builds only
	if s.watch && resources.IsDev {
		eg.Go(func() error {
			return s.watchAssets(egctx)
		})
	}

	// HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down studio server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchAssets watches the static asset directory and re-renders
// connected clients on changes.
func (s *Server) watchAssets(ctx context.Context) error {
	dir := resources.StaticDir()
	if dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, dir); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
		return nil
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("asset changed", "file", event.Name)
				s.notifier.BroadcastAll()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the
// watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
