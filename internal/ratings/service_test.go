package ratings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
)

var season2026Start = time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	calls    atomic.Int32
	err      error
	history  *models.SeasonHistory
	previous int
	current  int
}

func (f *fakeFetcher) FetchAll(_ context.Context, previous, current int) (*models.SeasonHistory, error) {
	f.calls.Add(1)
	f.previous, f.current = previous, current
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T, fetcher HistoryFetcher, clock *fakeClock) *Service {
	t.Helper()
	svc, err := NewService(refdata.Season2026(), fetcher, ServiceConfig{TTL: time.Hour}, WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func TestServiceCachesWithinTTL(t *testing.T) {
	fetcher := &fakeFetcher{history: &models.SeasonHistory{ConstructorStandings: standings2024()}}
	clock := &fakeClock{now: season2026Start}
	svc := newTestService(t, fetcher, clock)

	first := svc.Get(context.Background())
	assert.Equal(t, SourceComputed, first.Source)
	assert.Equal(t, season2026Start, first.ComputedAt)

	clock.Advance(59 * time.Minute)
	second := svc.Get(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fetcher.calls.Load())

	clock.Advance(time.Minute)
	third := svc.Get(context.Background())
	assert.Equal(t, int32(2), fetcher.calls.Load())
	assert.Equal(t, season2026Start.Add(time.Hour), third.ComputedAt)

	expires, ok := svc.ExpiresAt()
	require.True(t, ok)
	assert.Equal(t, season2026Start.Add(2*time.Hour), expires)
}

func TestServiceStoreEvictsAfterTTL(t *testing.T) {
	fetcher := &fakeFetcher{history: &models.SeasonHistory{}}
	clock := &fakeClock{now: season2026Start}
	svc, err := NewService(refdata.Season2026(), fetcher, ServiceConfig{TTL: 50 * time.Millisecond}, WithClock(clock.Now))
	require.NoError(t, err)

	svc.Get(context.Background())
	_, ok := svc.ExpiresAt()
	require.True(t, ok)

	// the injected clock is frozen, so only the store's own expiry can drop the entry
	assert.Eventually(t, func() bool {
		_, ok := svc.ExpiresAt()
		return !ok
	}, 2*time.Second, 10*time.Millisecond)

	svc.Get(context.Background())
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestServiceDefaultsSeasonsFromGrid(t *testing.T) {
	fetcher := &fakeFetcher{history: &models.SeasonHistory{}}
	svc := newTestService(t, fetcher, &fakeClock{now: season2026Start})

	svc.Get(context.Background())
	assert.Equal(t, 2024, fetcher.previous)
	assert.Equal(t, 2025, fetcher.current)
}

func TestServiceFallsBackOnFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("upstream unavailable")}
	clock := &fakeClock{now: season2026Start}
	svc := newTestService(t, fetcher, clock)

	snap := svc.Get(context.Background())
	assert.Equal(t, SourceFallback, snap.Source)
	assert.Equal(t, FallbackCarRatings, snap.CarRatings)

	// fallback is cached like any other snapshot
	svc.Get(context.Background())
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestServiceWithoutFetcherServesFallback(t *testing.T) {
	svc := newTestService(t, nil, &fakeClock{now: season2026Start})

	snap := svc.Get(context.Background())
	assert.Equal(t, SourceFallback, snap.Source)
	assert.Len(t, snap.DriverRatings, 22)
}

func TestServiceRefreshAndInvalidate(t *testing.T) {
	fetcher := &fakeFetcher{history: &models.SeasonHistory{}}
	svc := newTestService(t, fetcher, &fakeClock{now: season2026Start})

	svc.Get(context.Background())
	svc.Refresh(context.Background())
	assert.Equal(t, int32(2), fetcher.calls.Load())

	svc.Invalidate()
	_, ok := svc.ExpiresAt()
	assert.False(t, ok)

	svc.Get(context.Background())
	assert.Equal(t, int32(3), fetcher.calls.Load())
}

func TestServiceConcurrentGetFetchesOnce(t *testing.T) {
	fetcher := &fakeFetcher{history: &models.SeasonHistory{}}
	svc := newTestService(t, fetcher, &fakeClock{now: season2026Start})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Get(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestNewServiceRequiresSeason(t *testing.T) {
	_, err := NewService(nil, nil, ServiceConfig{})
	assert.True(t, errors.Is(err, models.ErrInvalidArgument))
}
