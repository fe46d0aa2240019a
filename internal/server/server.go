// Package server exposes assessments over HTTP.
//
// Routes:
//
//	POST /v1/assessments        one scenario (JSON Spec) -> Assessment
//	POST /v1/assessments/batch  scenario document -> BatchResult
//	GET  /v1/materials          reference catalog
//	GET  /healthz               liveness
//	GET  /metrics               Prometheus exposition
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rshade/metalca/internal/engine"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	assessor *engine.Assessor
	logger   zerolog.Logger
	version  string
	metrics  *metrics
	router   chi.Router
}

// New builds a Server around assessor.
func New(assessor *engine.Assessor, logger zerolog.Logger, version string) *Server {
	s := &Server{
		assessor: assessor,
		logger:   logger.With().Str("component", "server").Logger(),
		version:  version,
		metrics:  newMetrics(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/materials", s.handleMaterials)
		r.Post("/assessments", s.handleAssess)
		r.Post("/assessments/batch", s.handleAssessBatch)
	})
	return r
}

// Options tune ListenAndServe.
type Options struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// Ready, if set, receives the bound address once the listener is open.
	Ready func(addr net.Addr)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, opts Options) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", opts.Addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return s.logger.WithContext(context.Background()) },
	}

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
	if opts.Ready != nil {
		opts.Ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
