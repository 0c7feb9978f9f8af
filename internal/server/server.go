// Package server exposes the label layout pipeline over HTTP.
//
// Routes:
//
//	POST /v1/render?format=svg|png|json|pdf  chart document → artifact
//	POST /v1/hit                             chart + pointer → click event
//	GET  /healthz                            liveness
//
// Both POST bodies may carry "config" and "style" objects. Their fields
// override the server defaults one by one; absent fields keep the default.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pielabel/pkg/chart"
	"github.com/matzehuels/pielabel/pkg/pielabel"
	"github.com/matzehuels/pielabel/pkg/pipeline"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 30 * time.Second

// Server serves the HTTP API over a shared pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	layout  pielabel.Config
	style   chart.Style
	router  chi.Router
	healthy atomic.Bool
}

// Option configures a Server.
type Option func(*Server)

// WithLayout sets the layout config requests start from.
func WithLayout(cfg pielabel.Config) Option { return func(s *Server) { s.layout = cfg } }

// WithStyle sets the label style requests start from.
func WithStyle(st chart.Style) Option { return func(s *Server) { s.style = st } }

// New creates a server. The runner is shared by all requests.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
		layout: pielabel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthy.Store(true)

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/hit", s.handleHit)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		s.healthy.Store(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting server", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !s.healthy.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("shutting down"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}
