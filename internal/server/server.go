// Package server wires the content API: chi router, middleware chain and
// the HTTP server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/weightkeeper/internal/server/handlers"
	"github.com/iudanet/weightkeeper/internal/server/middleware"
	"github.com/iudanet/weightkeeper/internal/server/storage"
)

// HealthPath путь health check
const HealthPath = "/api/v1/health"

const shutdownTimeout = 10 * time.Second

// Storage хранилище файлов с проверкой доступности
type Storage interface {
	storage.FileStorage
	handlers.Pinger
}

// Config содержит параметры HTTP сервера
type Config struct {
	JWT            handlers.JWTConfig
	Version        string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server HTTP сервер content API
type Server struct {
	logger  *slog.Logger
	router  *chi.Mux
	limiter *middleware.RateLimiter
	server  *http.Server
}

// New создает сервер и настраивает маршруты
func New(cfg Config, store Storage, logger *slog.Logger) *Server {
	s := &Server{
		logger: logger,
		router: chi.NewRouter(),
	}

	s.router.Use(middleware.RequestIDMiddleware)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.LoggingWithSkip(logger, []string{HealthPath}))
	s.router.Use(middleware.RecoveryMiddleware(logger))
	if cfg.RateLimitRPS > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
		s.router.Use(s.limiter.Middleware)
	}

	health := handlers.NewHealthHandler(logger, store, cfg.Version)
	contents := handlers.NewContentsHandler(logger, store)

	s.router.Get(HealthPath, health.Health)

	s.router.Route("/repos/{owner}/{repo}", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(logger, cfg.JWT))

		r.Get("/contents/*", contents.GetContents)
		r.Put("/contents/*", contents.PutContents)
		r.Get("/commits", contents.ListCommits)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(w, logger, "Not Found", http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(w, logger, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	return s
}

// Handler returns the router, used by tests and embedding servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run слушает addr до отмены ctx, затем останавливается gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает ln до отмены ctx
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", ln.Addr().String())
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Close останавливает фоновые задачи middleware
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
