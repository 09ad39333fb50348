// Package metrics provides centralized Prometheus metrics registry for the predictor.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "f1_predictor"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Simulation metrics
var (
	SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_total",
		Help:      "Total number of simulation runs by kind",
	}, []string{"kind"})
	SimulatedTrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulated_trials_total",
		Help:      "Total number of Monte Carlo race trials executed",
	})
	SimulationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Duration of simulation runs in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"kind"})
)

// HTTP metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of API requests by route and status code",
	}, []string{"route", "code"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// Data source metrics
var (
	DataSourceRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "datasource_requests_total",
		Help:      "Total number of historical data requests by resource and outcome",
	}, []string{"resource", "outcome"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of data source circuit breaker trips",
	})
)

// Simulation kinds
const (
	KindRace         = "race"
	KindChampionship = "championship"
	KindBacktest     = "backtest"
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(SimulationsTotal)
		registry.MustRegister(SimulatedTrialsTotal)
		registry.MustRegister(SimulationDuration)

		registry.MustRegister(HTTPRequestsTotal)
		registry.MustRegister(HTTPRequestDuration)

		registry.MustRegister(DataSourceRequestsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)

		// Register backtest metrics
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestBrierScore)
		registry.MustRegister(BacktestSpearman)
		registry.MustRegister(BacktestHitRate)

		// Register ratings metrics
		registry.MustRegister(RatingsRefreshTotal)
		registry.MustRegister(RatingsCacheLookupsTotal)
		registry.MustRegister(RatingsAge)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSimulation records a completed simulation run and the trials it executed.
func RecordSimulation(kind string, trials int, durationSeconds float64) {
	SimulationsTotal.WithLabelValues(kind).Inc()
	SimulatedTrialsTotal.Add(float64(trials))
	SimulationDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordHTTPRequest records an API request.
func RecordHTTPRequest(route string, code int, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordDataSourceRequest records a historical data fetch.
// outcome should be one of: "success", "failure"
func RecordDataSourceRequest(resource, outcome string) {
	DataSourceRequestsTotal.WithLabelValues(resource, outcome).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}
