// Package server provides HTTP server setup and handlers
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"offsite/internal/config"
	"offsite/internal/content"
	"offsite/internal/domain/notifications"
	"offsite/internal/lib/sl"
	"offsite/internal/modal"
	"offsite/internal/repository"
	"offsite/internal/templates"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Catalog   *content.Catalog
	Repos     *repository.Repositories
	Notifier  notifications.Notifier
	Templates *templates.Manager
	Static    fs.FS
}

// Server represents the HTTP server
type Server struct {
	config    *config.Config
	log       *slog.Logger
	catalog   *content.Catalog
	repos     *repository.Repositories
	notifier  notifications.Notifier
	templates *templates.Manager
	static    fs.FS
	validate  *validator.Validate
	leadLimit *RateLimiter
	router    *chi.Mux
	http      *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps, log *slog.Logger) *Server {
	if log == nil {
		log = sl.Discard()
	}

	s := &Server{
		config:    cfg,
		log:       log,
		catalog:   deps.Catalog,
		repos:     deps.Repos,
		notifier:  deps.Notifier,
		templates: deps.Templates,
		static:    deps.Static,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		leadLimit: NewRateLimiter(cfg.Leads.RatePerMinute, cfg.Leads.Burst),
		router:    chi.NewRouter(),
	}

	s.validate.RegisterTagNameFunc(jsonFieldName)

	s.setupMiddleware()
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	const op = "server.Run"

	serverErrors := make(chan error, 1)

	go func() {
		s.log.Info("server starting",
			slog.String("address", s.config.Address()),
			slog.Bool("debug", s.config.Debug),
			slog.String("backend", s.config.Backend.Driver),
		)
		serverErrors <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)

	case <-ctx.Done():
		s.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.log.Error("graceful shutdown failed", sl.Err(err))
			if err := s.http.Close(); err != nil {
				return fmt.Errorf("%s: close: %w", op, err)
			}
		}

		s.log.Info("server stopped")
	}

	return nil
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	// Real IP detection (important for logging and rate limiting behind proxies)
	s.router.Use(middleware.RealIP)

	// Request ID for tracing
	s.router.Use(middleware.RequestID)

	s.router.Use(requestLogger(s.log))

	// Panic recovery
	s.router.Use(middleware.Recoverer)

	s.router.Use(securityHeaders)

	// Response compression (level 5 is a good balance)
	s.router.Use(middleware.Compress(5))

	// Bounded above the render wait so slow backends still get the loading view.
	s.router.Use(middleware.Timeout(s.config.Content.RenderWait + 10*time.Second))

	s.router.Use(modal.Middleware)
}

// Router returns the chi router (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
