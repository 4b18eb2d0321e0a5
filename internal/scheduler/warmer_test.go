package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atlasvoyages/catalog/internal/catalog"
	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// failStore errors on the list queries the warmer depends on.
type failStore struct{ stubStore }

func (s *failStore) ListCategoriesByType(ctx context.Context, categoryType string) ([]domain.Category, error) {
	return nil, errors.New("store unavailable")
}

func (s *failStore) ListFeaturedTours(ctx context.Context) ([]domain.Tour, error) {
	return nil, errors.New("store unavailable")
}

func TestCacheWarmerWarm(t *testing.T) {
	log := logger.New("error", false)
	svc := catalog.New(&stubStore{}, log, catalog.Config{})

	warmer := NewCacheWarmer(svc, log, time.Minute, make(chan struct{}, 1))
	if !warmer.LastWarm().IsZero() {
		t.Fatal("LastWarm before any warm should be zero")
	}

	warmer.Warm(context.Background())

	if warmer.LastWarm().IsZero() {
		t.Error("LastWarm after a successful warm should be set")
	}
	stats := svc.CacheStats()
	if !stats.CategoriesCached || !stats.FeaturedCached {
		t.Errorf("stats = %+v, want both list caches primed", stats)
	}
}

func TestCacheWarmerWarmFailure(t *testing.T) {
	log := logger.New("error", false)
	svc := catalog.New(&failStore{}, log, catalog.Config{})

	warmer := NewCacheWarmer(svc, log, time.Minute, make(chan struct{}, 1))
	warmer.Warm(context.Background())

	if !warmer.LastWarm().IsZero() {
		t.Error("LastWarm should stay zero when the warm fails")
	}
}

func TestCacheWarmerStartWarmsImmediately(t *testing.T) {
	log := logger.New("error", false)
	svc := catalog.New(&stubStore{}, log, catalog.Config{})

	warmer := NewCacheWarmer(svc, log, time.Hour, make(chan struct{}, 1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	warmer.Start(ctx)
	defer warmer.Stop()

	// Start warms synchronously before the ticker goroutine takes over.
	if warmer.LastWarm().IsZero() {
		t.Error("LastWarm should be set right after Start")
	}
}
