package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/netoph/f1-2026-predictor/internal/metrics"
	"github.com/netoph/f1-2026-predictor/internal/models"
)

// HealthResponse represents the JSON response for the health endpoint.
type HealthResponse struct {
	Status      string   `json:"status"`
	Version     string   `json:"version"`
	Season      int      `json:"season"`
	DataSources []string `json:"data_sources"`
	Drivers     int      `json:"drivers"`
	Circuits    int      `json:"circuits"`
}

// ReadyResponse represents the JSON response for the readiness endpoint.
type ReadyResponse struct {
	Status string `json:"status"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// handle registers h under pattern, recording latency and status per route.
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	route := pattern[strings.Index(pattern, " ")+1:]
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		elapsed := time.Since(start)
		metrics.RecordHTTPRequest(route, rec.status, elapsed.Seconds())
		s.logger.LogRequest(r.Method, route, rec.status, elapsed)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	season := s.predictor.Season()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Version:     s.cfg.Version,
		Season:      season.Year,
		DataSources: s.cfg.DataSources,
		Drivers:     season.GridSize(),
		Circuits:    season.Rounds(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.IsReady() {
		writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, ReadyResponse{Status: "ok"})
}

func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request) {
	snapshot := s.predictor.Ratings(r.Context())
	writeJSON(w, http.StatusOK, newRatingsView(snapshot, s.predictor.Season()))
}

func (s *Server) handleRace(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil {
		writeError(w, fmt.Errorf("round must be an integer: %w", models.ErrInvalidArgument))
		return
	}
	iters, err := queryInt(r, "iters")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.predictor.SimulateRace(r.Context(), round, iters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRaceView(result))
}

func (s *Server) handleChampionship(w http.ResponseWriter, r *http.Request) {
	iters, err := queryInt(r, "iters")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.predictor.SimulateChampionship(r.Context(), iters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newChampionshipView(result))
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	iters, err := queryInt(r, "iters")
	if err != nil {
		writeError(w, err)
		return
	}
	year, err := queryInt(r, "season")
	if err != nil {
		writeError(w, err)
		return
	}
	if year == 0 {
		year = s.predictor.BacktestSeasonYear()
	}

	m, err := s.predictor.BacktestSeason(r.Context(), year, iters)
	if errors.Is(err, models.ErrNoHistoricalData) {
		writeJSON(w, http.StatusOK, backtestView{Error: "Could not fetch historical results", Metrics: struct{}{}})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backtestView{
		Metrics: newMetricsView(m),
		Note:    fmt.Sprintf("Backtested against %d actuals (out-of-sample)", year),
	})
}

func (s *Server) handleCircuits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, circuitsView{Circuits: s.predictor.Circuits()})
}

// queryInt reads an optional integer query parameter. Absent parameters read as 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, models.ErrInvalidArgument)
	}
	return v, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrCircuitNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
