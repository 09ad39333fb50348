package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordSimulation(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(SimulationsTotal.WithLabelValues(KindRace))
	trialsBefore := testutil.ToFloat64(SimulatedTrialsTotal)

	RecordSimulation(KindRace, 8000, 0.2)

	assert.Equal(t, before+1, testutil.ToFloat64(SimulationsTotal.WithLabelValues(KindRace)))
	assert.Equal(t, trialsBefore+8000, testutil.ToFloat64(SimulatedTrialsTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/api/race/{round}", "400"))

	RecordHTTPRequest("/api/race/{round}", http.StatusBadRequest, 0.001)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/api/race/{round}", "400")))
}

func TestBacktestMetrics(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		status string
	}{
		{name: "with data", status: "ok"},
		{name: "no data", status: "no_data"},
		{name: "failure", status: "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(BacktestRunsTotal.WithLabelValues(tt.status))
			RecordBacktestRun(tt.status)
			assert.Equal(t, before+1, testutil.ToFloat64(BacktestRunsTotal.WithLabelValues(tt.status)))
		})
	}

	UpdateBacktestScores(35, 0.08, 0.61)
	assert.Equal(t, 35.0, testutil.ToFloat64(BacktestHitRate))
	assert.Equal(t, 0.08, testutil.ToFloat64(BacktestBrierScore))
	assert.Equal(t, 0.61, testutil.ToFloat64(BacktestSpearman))
}

func TestRatingsMetrics(t *testing.T) {
	InitRegistry()
	hits := testutil.ToFloat64(RatingsCacheLookupsTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(RatingsCacheLookupsTotal.WithLabelValues("miss"))

	RecordRatingsCacheLookup(true)
	RecordRatingsCacheLookup(false)
	RecordRatingsRefresh("fallback", 1700000000)

	assert.Equal(t, hits+1, testutil.ToFloat64(RatingsCacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(RatingsCacheLookupsTotal.WithLabelValues("miss")))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(RatingsAge))
}

func TestRecordDataSourceRequest(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordDataSourceRequest("results", "success")
		RecordCircuitBreakerTrip()
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()
	RecordSimulation(KindChampionship, 500, 1.5)

	handler := Handler()
	require.NotNil(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "f1_predictor_simulations_total")
}

func BenchmarkRecordSimulation(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordSimulation(KindRace, 100, 0.01)
	}
}
