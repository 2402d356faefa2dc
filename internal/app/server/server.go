package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"travelbook/checkout-relay/internal/app/server/handlers"
	"travelbook/checkout-relay/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	cfg      *config.Config
	router   *chi.Mux
	handlers *handlers.Handlers
	logger   *slog.Logger
}

func NewServer(cfg *config.Config, logger *slog.Logger, handlers *handlers.Handlers) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		handlers: handlers,
		logger:   logger.With(slog.String("component", "http")),
	}

	srv.registerMiddleware()
	srv.registerRoutes()
	return srv
}

func (s *Server) registerMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(exposeRequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(recoverer(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handlers.Health)
	s.router.Post("/create-checkout-session", s.handlers.CreateCheckoutSession)
	s.router.Get("/create-checkout-session", s.handlers.CheckoutMethodNotAllowed)
	s.router.Post("/verify-payment", s.handlers.VerifyPayment)
	s.router.Post("/handle-cancellation", s.handlers.HandleCancellation)

	s.router.NotFound(s.handlers.NotFound)
	s.router.MethodNotAllowed(s.handlers.NotFound)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	return s.Serve(ctx, l)
}

// Serve serves on l until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server started", slog.String("addr", l.Addr().String()))

		if err := httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		s.logger.Info("http server stopped")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down http server")
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
