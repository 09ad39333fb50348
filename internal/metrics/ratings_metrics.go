package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ratings metrics
var (
	RatingsRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_refresh_total",
		Help:      "Total number of ratings refreshes by source",
	}, []string{"source"})

	RatingsCacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_cache_lookups_total",
		Help:      "Ratings cache lookups by result",
	}, []string{"result"})

	RatingsAge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ratings_computed_timestamp_seconds",
		Help:      "Unix time the current ratings snapshot was computed",
	})
)

// RecordRatingsRefresh records a ratings refresh.
// source should be one of: "computed", "fallback"
func RecordRatingsRefresh(source string, computedAtUnix float64) {
	RatingsRefreshTotal.WithLabelValues(source).Inc()
	RatingsAge.Set(computedAtUnix)
}

// RecordRatingsCacheLookup records a cache hit or miss.
func RecordRatingsCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	RatingsCacheLookupsTotal.WithLabelValues(result).Inc()
}
