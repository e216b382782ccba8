// Package api exposes the planning engine as a JSON HTTP API. Handlers stay
// thin: they parse parameters, answer 404 for unknown route keys and map
// planner sentinels to client errors while the planner does the work.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"healthforce/internal/dataset"
	"healthforce/internal/metrics"
	"healthforce/internal/planner"
)

// Server serves the workforce planning API over HTTP.
type Server struct {
	service *planner.Service
	store   dataset.Reader
	version string

	http *http.Server
}

// NewServer wires the routes and builds the HTTP server. A nil metrics set
// disables instrumentation but keeps the /metrics endpoint alive.
func NewServer(addr string, service *planner.Service, store dataset.Reader, m *metrics.Metrics, version string) *Server {
	s := &Server{service: service, store: store, version: version}

	r := chi.NewRouter()
	r.Use(recoverer)
	r.Use(requestLogger(m))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleInfo)
		r.Get("/regions", s.handleRegions)
		r.Get("/categories", s.handleCategories)
		r.Get("/regions/{code}/population", s.handlePopulation)

		r.Route("/workforce", func(r chi.Router) {
			r.Get("/projections/{region}/{category}", s.handleProjections)
			r.Get("/gap-analysis/{region}/{category}", s.handleGapAnalysis)
			r.Post("/sensitivity/{region}/{category}", s.handleSensitivity)
		})

		r.Post("/scenarios/analysis", s.handleScenarios)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
