// Package server provides the HTTP server for the lexctl console.
//
// The console serves:
//   - GET  /                 - The console page
//   - POST /actions/health   - Run the health check
//   - POST /actions/version  - Run the version check
//   - POST /actions/search   - Run a case search (form field "q")
//   - GET  /api/state        - Current view state as JSON
//   - ANY  {base}/*          - Rewrite proxy to the backend
//   - GET  /healthz          - Console liveness
//   - GET  /metrics          - Prometheus metrics
//
// Example usage:
//
//	srv, err := server.NewServer(cfg, controller)
//	if err != nil {
//	    return err
//	}
//	go srv.Start()
//	defer srv.Stop(context.Background())
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lexchain/lexctl/internal/config"
	"github.com/lexchain/lexctl/internal/logger"
	"github.com/lexchain/lexctl/internal/metrics"
	"github.com/lexchain/lexctl/internal/server/handlers"
	"github.com/lexchain/lexctl/internal/view"
)

// Server is the console HTTP server.
type Server struct {
	// config holds the resolved configuration.
	config *config.Config

	// echo is the router and underlying HTTP server.
	echo *echo.Echo
}

// NewServer creates the console server and registers all routes.
//
// The server is ready to start after creation but is not yet listening.
//
// Parameters:
//   - cfg: The resolved configuration
//   - ctrl: The view controller backing the page and action endpoints
//
// Returns:
//   - A configured Server
//   - An error if the proxy cannot be set up from cfg
func NewServer(cfg *config.Config, ctrl *view.Controller) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/healthz" || path == "/metrics"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Slog().InfoContext(c.Request().Context(), "http request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"error", v.Error)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	h := handlers.NewHandler(ctrl, cfg.API.Base, cfg.Backend.URL)

	e.GET("/", h.Page)
	e.GET("/healthz", h.Healthz)
	e.GET("/api/state", h.State)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	actions := e.Group("/actions")
	actions.POST("/health", h.CheckHealth)
	actions.POST("/version", h.CheckVersion)
	actions.POST("/search", h.Search)

	prefix := ProxyPrefix(cfg.API.Base)
	proxy, err := handlers.NewBackendProxy(prefix, cfg.Backend.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to set up backend proxy: %w", err)
	}
	e.Any(prefix, echo.NotFoundHandler, proxy)
	e.Any(prefix+"/*", echo.NotFoundHandler, proxy)

	return &Server{config: cfg, echo: e}, nil
}

// ProxyPrefix returns the path the rewrite proxy is mounted under.
//
// A relative base path is used as-is. When the base is an absolute URL the
// console calls the backend directly, and the proxy stays available under
// the default prefix.
func ProxyPrefix(base string) string {
	u, err := url.Parse(config.ResolveBasePath(base))
	if err != nil || u.IsAbs() || u.Path == "" || u.Path == "/" {
		return config.DefaultBasePath
	}
	return "/" + strings.Trim(u.Path, "/")
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts listening on the configured address.
//
// The method blocks until the server is shut down via Stop() or fails.
//
// Returns:
//   - nil after a graceful shutdown
//   - error if the server fails to start or encounters a fatal error
func (s *Server) Start() error {
	addr := s.config.GetServerAddress()
	logger.Info("Starting lexctl console on http://%s", addr)
	logger.Info("Proxying %s/* to %s", ProxyPrefix(s.config.API.Base), s.config.Backend.URL)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server, waiting for active requests
// until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("Shutting down console...")
	return s.echo.Shutdown(ctx)
}
