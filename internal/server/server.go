// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the
// whole dependency chain is assembled:
//
//	config → store (sqlite or demo) → services → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handlers knows
// HTTP exists.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Neetko/SCHEDULE-APP/internal/auth"
	"github.com/Neetko/SCHEDULE-APP/internal/clock"
	"github.com/Neetko/SCHEDULE-APP/internal/config"
	"github.com/Neetko/SCHEDULE-APP/internal/handler"
	"github.com/Neetko/SCHEDULE-APP/internal/middleware"
	"github.com/Neetko/SCHEDULE-APP/internal/repository"
	"github.com/Neetko/SCHEDULE-APP/internal/repository/demo"
	sqliteRepo "github.com/Neetko/SCHEDULE-APP/internal/repository/sqlite"
	"github.com/Neetko/SCHEDULE-APP/internal/service"
)

// Server owns the router, the store handle, and the HTTP lifecycle.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	closer io.Closer // the sqlite pool; nil in demo mode
}

// New wires the full dependency graph for the given configuration.
//
// Two optional collaborators shape the wiring:
//   - No database path → the deterministic demo store serves all reads and
//     every write fails as unavailable.
//   - Incomplete auth settings → the OAuth routes and all write routes are
//     not registered at all; the server is read-only.
func New(cfg config.Config, logger *slog.Logger, clk clock.Clock) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	var (
		scheduleRepo repository.ScheduleRepository
		todoRepo     repository.TodoRepository
		userRepo     repository.UserRepository
	)

	if cfg.DemoMode() {
		logger.Warn("no database path configured — serving deterministic demo data, writes disabled")
		store := demo.New()
		scheduleRepo, todoRepo, userRepo = store, store, store
	} else {
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		s.closer = db
		scheduleRepo, todoRepo, userRepo = db, db, db
	}

	scheduleService := service.NewScheduleService(scheduleRepo, clk, logger)
	todoService := service.NewTodoService(todoRepo, logger)

	var (
		tokens  *auth.TokenService
		authSvc *service.AuthService
		discord *auth.DiscordProvider
	)
	if cfg.AuthEnabled() {
		var err error
		tokens, err = auth.NewTokenService(cfg.JWTSecret)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("creating token service: %w", err)
		}
		discord = auth.NewDiscordProvider(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordCallbackURL)
		authSvc = service.NewAuthService(userRepo, tokens, cfg.AdminDiscordID, logger)
	} else {
		logger.Warn("auth not fully configured — owner console disabled, server is read-only")
	}

	s.setupRoutes(scheduleService, todoService, discord, authSvc, tokens, clk)

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
// Public surface (guest console):
//
//	GET  /                          → entry point
//	GET  /api/schedule/today        → today's 24 slots + current-hour marker
//	GET  /api/schedule/stats        → 30-day activity stats (top 10)
//	GET  /api/schedule/dates        → dates with data
//	GET  /api/schedule/{date}       → one day's 24 slots
//	GET  /api/todos                 → todo list (read-only)
//	GET  /api/i18n/{locale}         → display strings
//	GET  /auth/error                → auth error code → message
//
// Owner surface (registered only with auth configured):
//
//	GET    /auth/discord/login      → redirect to Discord
//	GET    /auth/discord/callback   → identity gate + session cookie
//	POST   /auth/logout             → clear session
//	GET    /admin                   → owner entry (redirects to / without a session)
//	GET    /api/me                  → owner profile
//	PUT    /api/schedule/{date}/slots/{hour} → save one slot
//	PUT    /api/schedule/{date}     → commit the full day
//	POST   /api/todos, PATCH/DELETE /api/todos/{id}
func (s *Server) setupRoutes(
	scheduleService *service.ScheduleService,
	todoService *service.TodoService,
	discord *auth.DiscordProvider,
	authSvc *service.AuthService,
	tokens *auth.TokenService,
	clk clock.Clock,
) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	scheduleHandler := handler.NewScheduleHandler(scheduleService, clk, s.logger)
	todoHandler := handler.NewTodoHandler(todoService, s.logger)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/schedule/today", http.StatusSeeOther)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/schedule/today", scheduleHandler.HandleToday)
		r.Get("/schedule/stats", scheduleHandler.HandleStats)
		r.Get("/schedule/dates", scheduleHandler.HandleDates)
		r.Get("/schedule/{date}", scheduleHandler.HandleGetDay)
		r.Get("/todos", todoHandler.HandleList)
		r.Get("/i18n/{locale}", handler.HandleStrings)
	})

	if authSvc == nil {
		// Without the identity gate there is no owner console; the error
		// page still exists so bookmarked error links resolve.
		s.router.Get("/auth/error", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
		})
		return
	}

	authHandler := handler.NewAuthHandler(discord, authSvc, s.logger)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/discord/login", authHandler.HandleDiscordLogin)
		r.Get("/discord/callback", authHandler.HandleDiscordCallback)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/error", authHandler.HandleAuthError)
	})

	// Browser entry to the owner console: without a valid session, bounce
	// to the public entry point instead of showing an error.
	s.router.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookie)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if _, err := tokens.Validate(cookie.Value); err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/api/me", http.StatusSeeOther)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/api/me", authHandler.HandleMe)
		r.Put("/api/schedule/{date}/slots/{hour}", scheduleHandler.HandleSaveSlot)
		r.Put("/api/schedule/{date}", scheduleHandler.HandleCommitDay)
		r.Post("/api/todos", todoHandler.HandleAdd)
		r.Patch("/api/todos/{id}", todoHandler.HandleUpdate)
		r.Delete("/api/todos/{id}", todoHandler.HandleDelete)
	})
}

// Router exposes the assembled handler, mainly for httptest in handler
// integration tests.
func (s *Server) Router() http.Handler { return s.router }

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30s and closes the database so the WAL is flushed and
// the file lock released.
func (s *Server) Start() error {
	defer s.close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.Bool("demoMode", s.config.DemoMode()),
			slog.Bool("authEnabled", s.config.AuthEnabled()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

func (s *Server) close() {
	if s.closer != nil {
		s.closer.Close()
	}
}
