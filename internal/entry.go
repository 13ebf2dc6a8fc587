// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/harmoni/internal/api"
	"github.com/starford/harmoni/internal/backup"
	"github.com/starford/harmoni/internal/eventfiles"
	"github.com/starford/harmoni/internal/metrics"
	"github.com/starford/harmoni/internal/siteservice"
	"github.com/starford/harmoni/internal/sse"
	"github.com/starford/harmoni/internal/store"
)

var errConfigRequired = errors.New("config is required")

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// openStore opens the database and seeds the built-in sites when configured.
func openStore(ctx context.Context, cfg *Config, logger *slog.Logger) (*store.DB, error) {
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	if cfg.SQLite.Seed {
		n, err := db.Seed(ctx, store.SeedSites)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
		if n > 0 {
			logger.Info("Seeded sites", slog.Int("count", n))
		}
	}
	return db, nil
}

// openCalendarDir ensures the calendar directory exists and imports it.
func openCalendarDir(ctx context.Context, cfg *Config, db *store.DB, logger *slog.Logger) (*eventfiles.Dir, error) {
	if err := os.MkdirAll(cfg.Calendar.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create calendar dir: %w", err)
	}
	dir, err := eventfiles.NewDir(cfg.Calendar.DataDir)
	if err != nil {
		return nil, fmt.Errorf("init calendar dir: %w", err)
	}
	if _, err := eventfiles.Sync(ctx, db, dir, logger); err != nil {
		logger.Warn("initial calendar sync failed", slog.String("error", err.Error()))
	}
	return dir, nil
}

func newService(app *application, db store.Store, pub siteservice.Publisher, logger *slog.Logger) *siteservice.Service {
	cfg := app.config
	return siteservice.New(db,
		siteservice.WithPublisher(pub),
		siteservice.WithClock(app.now),
		siteservice.WithLocation(cfg.Calendar.Location()),
		siteservice.WithPageSizes(cfg.Directory.PageSize, cfg.Calendar.UpcomingPageSize),
		siteservice.WithLogger(logger),
	)
}

// changePublisher fans site changes out to the SSE broker and the metrics.
type changePublisher struct {
	broker  *sse.Broker
	metrics *metrics.Metrics
}

func (p changePublisher) PublishSiteEvent(kind, id string) {
	p.broker.PublishSiteEvent(kind, id)
	p.metrics.SiteChanged(kind)
}

func (p changePublisher) PublishCalendarEvent(kind, path string) {
	p.broker.PublishCalendarEvent(kind, path)
	p.metrics.CalendarChanged(kind)
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"status":%q}`, status)
}

// newHTTPHandler builds the top-level router: middleware, health checks,
// metrics and the API under /api.
func newHTTPHandler(cfg *Config, svc *siteservice.Service, db *store.DB, broker *sse.Broker, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ok")
	})

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, m.Handler())
	}

	r.Mount("/api", api.NewRouter(svc, cfg.Auth.API(), broker))
	return r
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(os.Stdout, cfg.App.LogLevel)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("calendar_dir", cfg.Calendar.DataDir),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	m := metrics.New()

	if cfg.Backup.OnStart {
		_, err := backup.Run(ctx, db, cfg.Backup.Dir, cfg.Backup.Keep, app.now(), logger)
		m.BackupDone(err)
		if err != nil {
			logger.Warn("startup backup failed", slog.String("error", err.Error()))
		}
	}

	dir, err := openCalendarDir(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	broker := sse.NewBroker(cfg.SSE.StatsThrottle)
	defer broker.Close()
	m.ObserveSSEClients(broker.ClientCount)

	pub := changePublisher{broker: broker, metrics: m}
	svc := newService(app, db, pub, logger)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newHTTPHandler(cfg, svc, db, broker, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the calendar directory and announce changes over SSE.
	g.Go(func() error {
		if err := eventfiles.Watch(gCtx, db, dir, logger, pub.PublishCalendarEvent); err != nil {
			logger.Error("calendar watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group context so the watcher stops with the server.
var errShutdown = errors.New("shutdown")
