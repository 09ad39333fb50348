// Package server exposes the predictor over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/netoph/f1-2026-predictor/internal/backtest"
	"github.com/netoph/f1-2026-predictor/internal/logger"
	"github.com/netoph/f1-2026-predictor/internal/metrics"
	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
	"github.com/netoph/f1-2026-predictor/internal/simulation"
)

// Predictor is the set of operations the API serves.
type Predictor interface {
	Season() *refdata.Season
	Circuits() []models.Circuit
	Ratings(ctx context.Context) models.RatingSnapshot
	SimulateRace(ctx context.Context, round, iterations int) (*simulation.SimulationResult, error)
	SimulateChampionship(ctx context.Context, iterations int) (*simulation.ChampionshipResult, error)
	BacktestSeason(ctx context.Context, year, iterations int) (backtest.Metrics, error)
	BacktestSeasonYear() int
}

// Config holds the configuration for the API server.
type Config struct {
	Version        string
	Addr           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	// MetricsPath mounts the Prometheus handler. Empty disables it.
	MetricsPath string
	// DataSources is reported by the health endpoint.
	DataSources []string
	Logger      *logrus.Logger
}

// Server is the HTTP API server.
type Server struct {
	predictor Predictor
	cfg       Config
	handler   http.Handler
	server    *http.Server
	logger    *logger.ServerLogger

	mu    sync.RWMutex
	ready bool
}

// NewServer creates a new API server.
func NewServer(predictor Predictor, cfg Config) (*Server, error) {
	if predictor == nil {
		return nil, errors.New("server: predictor is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}

	s := &Server{
		predictor: predictor,
		cfg:       cfg,
		logger:    logger.NewServerLogger(cfg.Logger),
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "GET /api/health", s.handleHealth)
	s.handle(mux, "GET /api/ready", s.handleReady)
	s.handle(mux, "GET /api/ratings", s.handleRatings)
	s.handle(mux, "GET /api/race/{round}", s.handleRace)
	s.handle(mux, "GET /api/championship", s.handleChampionship)
	s.handle(mux, "GET /api/backtest", s.handleBacktest)
	s.handle(mux, "GET /api/circuits", s.handleCircuits)
	if s.cfg.MetricsPath != "" {
		mux.Handle("GET "+s.cfg.MetricsPath, metrics.Handler())
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(mux)
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start serves in the background until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("API server starting")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("API server error")
			errCh <- err
		}
		close(errCh)
	}()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown()
	}()

	// surface immediate bind failures
	select {
	case err := <-errCh:
		return err
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.SetReady(false)
	s.logger.Info("API server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
