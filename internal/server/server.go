// Package server wires the router, middleware, and all route definitions.
// It is the composition root: every handler, service, and repository is
// assembled here, so main.go stays minimal and tests can build a full
// in-process server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lvsiyuan/personal-site/internal/auth"
	"github.com/lvsiyuan/personal-site/internal/handler"
	"github.com/lvsiyuan/personal-site/internal/middleware"
	"github.com/lvsiyuan/personal-site/internal/model"
	sqliteRepo "github.com/lvsiyuan/personal-site/internal/repository/sqlite"
	"github.com/lvsiyuan/personal-site/internal/service"
)

// Config holds server configuration. TemplateDir and StaticDir may be empty,
// in which case the page and static routes are not mounted and the server is
// API-only (the mode handler and client tests run in).
type Config struct {
	Port           int
	TemplateDir    string
	StaticDir      string
	DBPath         string
	JWTSecret      string
	AllowedOrigins []string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, services, handlers,
// routes. It also seeds the default admin account so a fresh database is
// immediately usable.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	passwords := auth.NewPasswordService()
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	projectService := service.NewProjectService(s.db, s.logger)
	workService := service.NewWorkService(s.db, s.logger)
	communityService := service.NewCommunityService(s.db, s.logger)
	authService := service.NewAuthService(s.db, passwords, tokens, s.logger)

	if err := s.seedAdmin(passwords); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	projectHandler := handler.NewProjectHandler(projectService, s.logger)
	workHandler := handler.NewWorkHandler(workService, s.logger)
	communityHandler := handler.NewCommunityHandler(communityService, authService, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	adminOnly := auth.RequireRole(tokens, model.RoleAdmin)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/admin/login", authHandler.HandleAdminLogin)

		r.Get("/projects", projectHandler.HandleList)
		r.Get("/projects/{id}", projectHandler.HandleGet)
		r.With(adminOnly).Post("/projects", projectHandler.HandleCreate)
		r.With(adminOnly).Put("/projects/{id}", projectHandler.HandleUpdate)
		r.With(adminOnly).Delete("/projects/{id}", projectHandler.HandleDelete)

		r.Get("/works", workHandler.HandleList)
		r.Get("/works/{id}", workHandler.HandleGet)
		r.With(adminOnly).Post("/works", workHandler.HandleCreate)
		r.With(adminOnly).Put("/works/{id}", workHandler.HandleUpdate)
		r.With(adminOnly).Delete("/works/{id}", workHandler.HandleDelete)

		r.Post("/community/login", communityHandler.HandleLogin)
		r.Get("/community/posts", communityHandler.HandleListPosts)
		r.Get("/community/posts/{id}", communityHandler.HandleGetPost)
		r.Post("/community/posts", communityHandler.HandleCreatePost)
		r.Post("/community/posts/{id}/like", communityHandler.HandleLike)
		r.Post("/community/posts/{id}/comments", communityHandler.HandleAddComment)
		r.With(adminOnly).Delete("/community/posts/{id}", communityHandler.HandleDeletePost)
	})

	if s.config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	if s.config.TemplateDir != "" {
		pageHandler, err := handler.NewPageHandler(
			s.config.TemplateDir, projectService, workService, communityService, tokens, s.logger)
		if err != nil {
			return fmt.Errorf("creating page handler: %w", err)
		}
		s.router.Get("/", pageHandler.HandleProjectsPage)
		s.router.Get("/projects", pageHandler.HandleProjectsPage)
		s.router.Get("/works", pageHandler.HandleWorksPage)
		s.router.Get("/community", pageHandler.HandleCommunityPage)
		s.router.Get("/community/posts/{id}", pageHandler.HandlePostPage)
		s.router.Get("/admin", pageHandler.HandleAdminPage)
	}

	return nil
}

// seedAdmin ensures the default admin account exists. The insert is a no-op
// when the username is already present, so restarts never reset a changed
// password.
func (s *Server) seedAdmin(passwords *auth.PasswordService) error {
	hash, err := passwords.Hash("123456")
	if err != nil {
		return err
	}
	return s.db.SeedUser(context.Background(), "test", hash, "images/user1.jpg", model.RoleAdmin)
}

// Handler returns the assembled router. Tests drive it through httptest
// without opening a listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's database connection. Start does this on
// shutdown; callers that only use Handler must close explicitly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

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
			slog.String("database", s.config.DBPath),
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
