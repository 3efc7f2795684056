// Package web exposes the observability surface: engine health, the remote
// scorer's last-known availability, and prometheus metrics. The match
// operation itself is not served here; it belongs to the surrounding API
// layer.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/remote"
)

// RemoteStatus is the server's read-only view of the remote scorer client.
type RemoteStatus interface {
	Healthy() bool
	LastStatus() *remote.HealthStatus
}

// Config holds the listen address.
type Config struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Server is the observability HTTP server.
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
	cfg    Config
	remote RemoteStatus
}

// NewServer builds the server and registers its routes. The prometheus
// gatherer may be nil, in which case the default registry is served.
func NewServer(logger *zap.Logger, cfg Config, remoteStatus RemoteStatus, gatherer prometheus.Gatherer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
			)

			return err
		}
	})

	s := &Server{echo: e, logger: logger, cfg: cfg, remote: remoteStatus}

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return s
}

// RemoteHealth describes the remote scorer's last-known state.
type RemoteHealth struct {
	Configured   bool   `json:"configured"`
	Healthy      bool   `json:"healthy"`
	Status       string `json:"status,omitempty"`
	ModelVersion string `json:"model_version,omitempty"`
	LastUpdate   string `json:"last_update,omitempty"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status       string       `json:"status"`
	RemoteScorer RemoteHealth `json:"remote_scorer"`
}

func (s *Server) handleHealth(c echo.Context) error {
	resp := HealthResponse{Status: "ok"}

	if s.remote != nil {
		resp.RemoteScorer.Configured = true
		resp.RemoteScorer.Healthy = s.remote.Healthy()
		if last := s.remote.LastStatus(); last != nil {
			resp.RemoteScorer.Status = last.Status
			resp.RemoteScorer.ModelVersion = last.ModelVersion
			resp.RemoteScorer.LastUpdate = last.LastUpdate
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	addr := s.cfg.Host + ":" + s.cfg.Port
	s.logger.Info("starting observability server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
