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

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/inbox"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/pages"
	"github.com/starford/folio/internal/portfolio"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/storage"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(os.Stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_path", contentLabel(cfg.Content.Path)),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("contact_mode", cfg.Contact.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := openContent(cfg.Content)
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	logger.Info("Content loaded",
		slog.Int("experience", len(snap.Experience)),
		slog.Int("projects", len(snap.Projects)),
		slog.String("version", snap.Version()))

	facade := content.NewFacade(store, cfg.Content.Latency)

	// Initialize SQLite search index and inbox.
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	ib, err := inbox.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init inbox: %w", err)
	}
	defer ib.Close()

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	site := portfolio.NewService(store, facade, db, broker, logger)

	// Run initial sync.
	if err := site.SyncIndex(ctx); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	sender := app.sender
	if sender == nil {
		sender = newSender(cfg.Contact, logger)
	}
	contactSvc := contact.NewService(sender, cfg.Contact.To, cfg.Contact.From,
		contact.WithRecorder(ib),
		contact.WithEvents(broker.PublishMessageEvent),
		contact.WithSubjectPrefix(cfg.Contact.SubjectPrefix),
		contact.WithLogger(logger),
	)

	pb := pages.NewBuilder(facade, cfg.Pages.FeaturedCount, logger)

	// Build API handler and router.
	h := api.NewHandler(site, pb, contactSvc, ib, cfg.Contact.ResetAfter)
	apiRouter := api.NewRouter(h, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", h.Ready)

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Cover images and other static assets.
	r.Get("/assets/{filename}", api.NewAssetHandler(store.Provider()).ServeFile)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start content watcher with index sync and SSE callback.
	if cfg.Content.Watch {
		g.Go(func() error {
			if err := content.Watch(gCtx, store, logger, site.OnReload(gCtx)); err != nil {
				return fmt.Errorf("content watcher: %w", err)
			}
			return nil
		})
	}

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

		// Ends open event streams so Shutdown does not wait on them.
		broker.Close()

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

// RunMCP serves the content over MCP on stdin/stdout. Logs go to stderr
// because stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(os.Stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)

	store, err := openContent(cfg.Content)
	if err != nil {
		return err
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	site := portfolio.NewService(store, content.NewFacade(store, 0), db, nil, logger)
	if err := site.SyncIndex(ctx); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Content.Watch {
		go func() {
			if err := content.Watch(ctx, store, logger, site.OnReload(ctx)); err != nil {
				logger.Warn("content watcher stopped", slog.String("error", err.Error()))
			}
		}()
	}

	logger.Info("MCP server starting on stdio", slog.String("version", app.version))
	return mcpserver.New(site, app.version).ServeStdio()
}

var errShutdown = errors.New("shutdown")

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// openContent loads the content store from the configured directory, or
// from the bundled seed content when no path is set.
func openContent(cfg ContentConfig) (*content.Store, error) {
	var provider storage.Provider = storage.Seed()
	if cfg.Path != "" {
		fsProvider, err := storage.NewFS(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		provider = fsProvider
	}
	store, err := content.NewStore(provider)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return store, nil
}

func newSender(cfg ContactConfig, logger *slog.Logger) contact.Sender {
	if cfg.Mode == ContactModeSMTP {
		return contact.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	}
	return contact.LogSender{Logger: logger}
}

func contentLabel(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}
