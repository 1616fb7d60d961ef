package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskboard/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/transport/httpdto"
	"taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	httpServer      *http.Server
	engine          *gin.Engine
	config          *config.Config
	logger          *logger.Logger
	shutdownTimeout time.Duration
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Tasks *handler.TaskHandler
	Users *handler.UserHandler
}

// HealthFunc reports whether the backing store is reachable.
type HealthFunc func(ctx context.Context) error

func New(cfg *config.Config, l *logger.Logger) *Server {
	if l == nil {
		l = logger.NewNop()
	}
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(l))

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine:          engine,
		config:          cfg,
		logger:          l,
		shutdownTimeout: timeout,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, health HealthFunc) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), httpdto.CodeUnhealthy))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	api := s.engine.Group("/api")

	tasks := api.Group("/tasks")
	{
		tasks.GET("", handlers.Tasks.List)
		tasks.POST("", handlers.Tasks.Create)
		tasks.DELETE("", handlers.Tasks.Clear)
		tasks.GET("/:id", handlers.Tasks.Get)
		tasks.PUT("/:id", handlers.Tasks.Update)
		tasks.DELETE("/:id", handlers.Tasks.Delete)
	}

	users := api.Group("/users")
	{
		users.GET("", handlers.Users.List)
		users.POST("", handlers.Users.Create)
		users.DELETE("", handlers.Users.Clear)
		users.GET("/:id", handlers.Users.Get)
		users.PUT("/:id", handlers.Users.Update)
		users.DELETE("/:id", handlers.Users.Delete)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("route not found", httpdto.CodeNotFound))
	})
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Infof("Shutting down, waiting up to %s for in-flight requests", s.shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		s.logger.Infof("Server stopped gracefully")
		return nil
	})

	return g.Wait()
}
