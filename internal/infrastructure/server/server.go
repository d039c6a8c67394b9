package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/aurora/internal/api/http"
	"github.com/GriffinCanCode/aurora/internal/api/middleware"
	"github.com/GriffinCanCode/aurora/internal/api/ws"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/config"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/tracing"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	*Core
	router *gin.Engine
	tracer *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger.Info("Initializing Aurora server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("storage", cfg.Storage.Backend),
	)

	core, err := NewCore(cfg, logger)
	if err != nil {
		return nil, err
	}

	tracer := tracing.New("aurora", logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(core.Metrics))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(middleware.CORSForOrigins(cfg.Server.CORSOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := api.NewHandlers(api.Deps{
		Store:    core.Store,
		Sessions: core.Sessions,
		Shell:    core.Shell,
		Apps:     core.Apps,
		Volume:   core.Volume,
		Tracer:   tracer,
		Logger:   logger,
	})
	handlers.Register(router)

	wsHandler := ws.NewHandler(core.Sessions, core.Shell, logger, ws.WithMetrics(core.Metrics))
	router.GET("/sessions/:id/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(core.Metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{Core: core, router: router, tracer: tracer}, nil
}

// Router exposes the configured engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.Logger.Info("Shutting down server...")

	s.tracer.Close()
	if err := s.Core.Close(); err != nil {
		s.Logger.Error("Failed to close storage", zap.Error(err))
		return err
	}

	_ = s.Logger.Sync()
	return nil
}
