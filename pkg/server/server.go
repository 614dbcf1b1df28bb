package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vellum-ui/vellum/pkg/component"
	"github.com/vellum-ui/vellum/pkg/vellum"
)

// Server serves a Vellum application over HTTP: the root page, the
// Prometheus metrics endpoint and the patch WebSocket.
type Server struct {
	app    *vellum.App
	config Config
	logger *slog.Logger
	router chi.Router
	http   *http.Server
}

// Config configures the HTTP server.
type Config struct {
	// Host is the host to bind to. Default: "localhost".
	Host string

	// Port is the port to listen on. Default: 8090.
	Port int

	// ShutdownTimeout is the graceful shutdown budget. Default: 10s.
	ShutdownTimeout time.Duration

	// Page describes the document rendered at "/".
	Page vellum.Page

	// MetricsEnabled controls the /metrics endpoint. Default: true when
	// built through DefaultConfig.
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            8090,
		ShutdownTimeout: 10 * time.Second,
		MetricsEnabled:  true,
	}
}

// New creates a server around an application runtime and a root component.
func New(app *vellum.App, root *component.Component, config Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Host == "" {
		config.Host = DefaultConfig().Host
	}
	if config.Port == 0 {
		config.Port = DefaultConfig().Port
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}
	config.Page.Root = root

	s := &Server{
		app:    app,
		config: config,
		logger: logger.With("component", "server"),
	}
	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler: s.router,
	}
	return s
}

// Handler returns the server's HTTP handler, for mounting into an existing
// router or driving from httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/patches", s.handlePatches)
	if s.config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	html, err := s.app.RenderPage(r.Context(), s.config.Page)
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully within the configured budget.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.config.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
