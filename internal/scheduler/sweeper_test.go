package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atlasvoyages/catalog/internal/catalog"
	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// stubStore serves a fixed set of tours by slug, enough to populate the
// detail cache.
type stubStore struct {
	tours map[string]domain.Tour
}

func (s *stubStore) ListPublishedTours(ctx context.Context, pageSize int, after *domain.PageCursor) (domain.TourPage, error) {
	return domain.TourPage{}, nil
}

func (s *stubStore) FindTourBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	if t, ok := s.tours[slug]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *stubStore) GetTourByID(ctx context.Context, id string) (*domain.Tour, error) {
	return nil, nil
}

func (s *stubStore) ListCategoriesByType(ctx context.Context, categoryType string) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubStore) ListFeaturedTours(ctx context.Context) ([]domain.Tour, error) {
	return nil, nil
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCacheSweeperSweep(t *testing.T) {
	log := logger.New("error", false)
	clock := &testClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}

	store := &stubStore{tours: map[string]domain.Tour{
		"golden-triangle": {ID: "t1", Slug: "golden-triangle", Status: domain.StatusPublished},
		"coastal-escape":  {ID: "t2", Slug: "coastal-escape", Status: domain.StatusPublished},
	}}
	svc := catalog.New(store, log, catalog.Config{Clock: clock.Now})

	// Populate the detail cache through two lookups.
	svc.TourBySlugOrID(context.Background(), "golden-triangle")
	svc.TourBySlugOrID(context.Background(), "coastal-escape")

	sweeper := NewCacheSweeper(svc, log, time.Hour)

	// Entries are still fresh, nothing to drop yet.
	if removed := sweeper.Sweep(); removed != 0 {
		t.Errorf("Sweep() on fresh entries = %d, want 0", removed)
	}

	clock.Advance(2 * time.Minute)

	if removed := sweeper.Sweep(); removed != 2 {
		t.Errorf("Sweep() after expiry = %d, want 2", removed)
	}
	if got := svc.CacheStats().DetailEntries; got != 0 {
		t.Errorf("DetailEntries after sweep = %d, want 0", got)
	}
}
