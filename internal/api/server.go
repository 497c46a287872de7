// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/newthinker/marketbrief/internal/api/middleware"
	"github.com/newthinker/marketbrief/internal/api/response"
	"github.com/newthinker/marketbrief/internal/core"
	"github.com/newthinker/marketbrief/internal/metrics"
	"github.com/newthinker/marketbrief/internal/pipeline"
)

// Server represents the HTTP server for marketbrief
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	pipeline   *pipeline.Pipeline
	registry   *metrics.Registry

	defaultTicker string
	defaultQuery  string
}

// Config holds server configuration
type Config struct {
	Host   string
	Port   int
	APIKey string

	DefaultTicker string
	DefaultQuery  string
	MetricsPath   string
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, p *pipeline.Pipeline, registry *metrics.Registry, logger *zap.Logger) (*Server, error) {
	if p == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:           mux,
		logger:        logger,
		pipeline:      p,
		registry:      registry,
		defaultTicker: cfg.DefaultTicker,
		defaultQuery:  cfg.DefaultQuery,
	}

	s.setupRoutes(cfg)

	handler := metrics.HTTPMiddleware(registry)(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes. Health and metrics stay open
// so probes and scrapers work without a key.
func (s *Server) setupRoutes(cfg Config) {
	auth := middleware.APIKeyAuth(cfg.APIKey)

	s.mux.Handle("/api/brief", auth(http.HandlerFunc(s.handleBrief)))
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.registry != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle(path, promhttp.HandlerFor(s.registry.Registry, promhttp.HandlerOpts{}))
	}
}

// Handler returns the root handler, middleware included. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		response.Error(w, http.StatusMethodNotAllowed, core.ErrConfigInvalid)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		ticker = s.defaultTicker
	}
	if ticker == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigMissing, fmt.Errorf("ticker parameter is required")))
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		query = s.defaultQuery
	}
	if query == "" {
		query = ticker
	}

	brief := s.pipeline.Run(r.Context(), ticker, query)
	response.JSON(w, http.StatusOK, brief)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
