package ratings

import (
	"context"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/netoph/f1-2026-predictor/internal/logger"
	"github.com/netoph/f1-2026-predictor/internal/metrics"
	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
)

// DefaultTTL is how long a ratings snapshot stays fresh.
const DefaultTTL = time.Hour

const snapshotKey = "ratings"

// HistoryFetcher loads the raw history ratings are computed from.
type HistoryFetcher interface {
	FetchAll(ctx context.Context, previousSeason, currentSeason int) (*models.SeasonHistory, error)
}

// ServiceConfig configures the ratings service
type ServiceConfig struct {
	TTL            time.Duration
	PreviousSeason int
	CurrentSeason  int
	Weights        Weights
}

// cachedSnapshot is the value held in the store.
type cachedSnapshot struct {
	snapshot  models.RatingSnapshot
	expiresAt time.Time
}

// Service serves ratings snapshots from a TTL cache and recomputes them on expiry.
type Service struct {
	season  *refdata.Season
	fetcher HistoryFetcher
	config  ServiceConfig
	store   *cache.Cache
	now     func() time.Time
	logger  *logger.RatingsLogger

	// refreshMu serialises recomputation so concurrent misses fetch once.
	refreshMu sync.Mutex
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithClock injects the time source used for expiry.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *logrus.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger.NewRatingsLogger(l)
	}
}

// NewService creates a ratings service. A nil fetcher always serves the fallback tables.
func NewService(season *refdata.Season, fetcher HistoryFetcher, cfg ServiceConfig, opts ...ServiceOption) (*Service, error) {
	if season == nil {
		return nil, fmt.Errorf("season is required: %w", models.ErrInvalidArgument)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights
	}
	if cfg.CurrentSeason == 0 {
		cfg.CurrentSeason = season.Year - 1
	}
	if cfg.PreviousSeason == 0 {
		cfg.PreviousSeason = cfg.CurrentSeason - 1
	}

	s := &Service{
		season:  season,
		fetcher: fetcher,
		config:  cfg,
		// the store evicts on wall time; fresh() also checks the injected clock
		store:  cache.New(cfg.TTL, cfg.TTL*2),
		now:    time.Now,
		logger: logger.NewRatingsLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns the cached snapshot, refreshing it when missing or stale.
func (s *Service) Get(ctx context.Context) models.RatingSnapshot {
	if snap, ok := s.fresh(); ok {
		metrics.RecordRatingsCacheLookup(true)
		return snap
	}
	metrics.RecordRatingsCacheLookup(false)

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	// another caller may have refreshed while we waited
	if snap, ok := s.fresh(); ok {
		return snap
	}
	return s.refreshLocked(ctx)
}

// Refresh recomputes the snapshot unconditionally. Fetch failures yield the fallback snapshot.
func (s *Service) Refresh(ctx context.Context) models.RatingSnapshot {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	return s.refreshLocked(ctx)
}

// Invalidate drops the cached snapshot.
func (s *Service) Invalidate() {
	s.store.Delete(snapshotKey)
}

// ExpiresAt reports when the cached snapshot goes stale.
func (s *Service) ExpiresAt() (time.Time, bool) {
	v, found := s.store.Get(snapshotKey)
	if !found {
		return time.Time{}, false
	}
	return v.(cachedSnapshot).expiresAt, true
}

func (s *Service) fresh() (models.RatingSnapshot, bool) {
	v, found := s.store.Get(snapshotKey)
	if !found {
		return models.RatingSnapshot{}, false
	}
	entry := v.(cachedSnapshot)
	if !s.now().Before(entry.expiresAt) {
		return models.RatingSnapshot{}, false
	}
	return entry.snapshot, true
}

func (s *Service) refreshLocked(ctx context.Context) models.RatingSnapshot {
	start := time.Now()
	now := s.now()

	snap, err := s.compute(ctx)
	if err != nil {
		s.logger.LogRatingsFallback(err)
		snap = Fallback(s.season, now)
	}
	snap.ComputedAt = now

	s.store.Set(snapshotKey, cachedSnapshot{snapshot: snap, expiresAt: now.Add(s.config.TTL)}, s.config.TTL)

	s.logger.LogRatingsRefreshed(snap.Source, len(snap.CarRatings), len(snap.DriverRatings), float64(time.Since(start).Milliseconds()))
	metrics.RecordRatingsRefresh(snap.Source, float64(now.Unix()))
	return snap
}

func (s *Service) compute(ctx context.Context) (models.RatingSnapshot, error) {
	if s.fetcher == nil {
		return models.RatingSnapshot{}, fmt.Errorf("no history fetcher configured: %w", models.ErrRatingsUnavailable)
	}
	history, err := s.fetcher.FetchAll(ctx, s.config.PreviousSeason, s.config.CurrentSeason)
	if err != nil {
		return models.RatingSnapshot{}, fmt.Errorf("fetch history: %w", err)
	}
	return Compute(s.season, history, s.config.Weights), nil
}
