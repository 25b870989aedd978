package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/pantry-chef/config"
	"github.com/pageza/pantry-chef/internal/api"
	"github.com/pageza/pantry-chef/internal/logger"
	"github.com/pageza/pantry-chef/internal/middleware"
	"github.com/pageza/pantry-chef/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New creates a server backed by the configured provider. The provider
// client is built once here and shared by every request.
func New(ctx context.Context, cfg *config.Config) *Server {
	provider := service.NewProvider(ctx, cfg.Provider)
	return NewWithProvider(cfg, provider)
}

// NewWithProvider creates a server backed by the given provider
func NewWithProvider(cfg *config.Config, provider service.Provider) *Server {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middleware.Trace(cfg.Tracing.ServiceName),
		middleware.TraceHeader(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(),
	)

	router.GET("/health", api.HealthCheck(provider.Name()))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	generateHandler := api.NewGenerateHandler(service.NewGenerationService(provider))
	generateHandler.RegisterRoutes(router)

	router.NoMethod(api.MethodNotAllowed)

	return &Server{
		cfg:    cfg,
		router: router,
		http: &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: router,
		},
	}
}

// Handler exposes the router, mainly for tests and in-process use
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	logger.L().Info("starting server", "addr", s.http.Addr, "provider", s.cfg.Provider.Name)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()

	return s.http.Shutdown(ctx)
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down server")
	if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.L().Info("server stopped")
	return nil
}
