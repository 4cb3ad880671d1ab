// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkwell-press/inkwell/internal/content/category"
	"github.com/inkwell-press/inkwell/internal/content/draft"
	"github.com/inkwell-press/inkwell/internal/content/work"
	"github.com/inkwell-press/inkwell/internal/platform/config"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/social/comment"
	"github.com/inkwell-press/inkwell/internal/social/like"
	"github.com/inkwell-press/inkwell/internal/users/account"
	"github.com/inkwell-press/inkwell/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (register, login, profile).
	Auth *auth.Handler

	// Work handles the work catalogue and its lifecycle transitions.
	Work *work.Handler

	// Comment handles per-work comment threads and moderation.
	Comment *comment.Handler

	// Like handles per-work like toggling and counts.
	Like *like.Handler

	// Draft handles per-work draft snapshots.
	Draft *draft.Handler

	// Category handles the category taxonomy.
	Category *category.Handler

	// Account handles the admin user-management surface.
	Account *account.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Work routes plus its sub-resources. All sub-routers resolve the
		// parent work through the shared {id} URL parameter.
		api.Route("/works", func(works chi.Router) {
			h.Work.Register(works)
			works.Mount("/{id}/comments", h.Comment.WorkRoutes())
			works.Mount("/{id}/like", h.Like.WorkRoutes())
			works.Mount("/{id}/drafts", h.Draft.WorkRoutes())
		})

		// Entity-addressed routes for comments and drafts already created.
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/drafts", h.Draft.Routes())

		api.Mount("/categories", h.Category.Routes())

		// Admin surface: role gate applied at the mount, service re-checks.
		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAuth)
			admin.Use(middleware.RequireRole(sec.RoleAdmin))
			admin.Mount("/admin/users", h.Account.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
