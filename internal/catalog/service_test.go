package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"testing"

	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/logger"
)

var errStoreDown = errors.New("store unavailable")

// fakeClock is a manually advanced clock for TTL control in tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// fakeStore is an in-memory Store with per-operation call counters and
// switchable failures.
type fakeStore struct {
	tours      []domain.Tour
	categories []domain.Category

	listCalls     int
	slugCalls     int
	idCalls       int
	featuredCalls int
	categoryCalls int

	failList       bool
	failSlug       bool
	failID         bool
	failFeatured   bool
	failCategories bool
}

// publishedSorted mirrors the store ordering: createdAt descending with
// the document ID as tiebreak.
func (f *fakeStore) publishedSorted() []domain.Tour {
	out := make([]domain.Tour, 0, len(f.tours))
	for _, t := range f.tours {
		if t.Published() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeStore) ListPublishedTours(ctx context.Context, pageSize int, after *domain.PageCursor) (domain.TourPage, error) {
	f.listCalls++
	if f.failList {
		return domain.TourPage{}, errStoreDown
	}

	all := f.publishedSorted()
	start := 0
	if after != nil {
		for i, t := range all {
			if t.ID == after.ID {
				start = i + 1
				break
			}
		}
	}

	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	items := all[start:end]

	page := domain.TourPage{
		Items:   items,
		HasMore: len(items) == pageSize,
	}
	if len(items) > 0 {
		last := items[len(items)-1]
		page.NextCursor = &domain.PageCursor{
			Shape:     domain.ShapePublishedByCreatedAtDesc,
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}
	}
	return page, nil
}

func (f *fakeStore) FindTourBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	f.slugCalls++
	if f.failSlug {
		return nil, errStoreDown
	}
	for i := range f.tours {
		if f.tours[i].Slug == slug && f.tours[i].Slug != "" {
			t := f.tours[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetTourByID(ctx context.Context, id string) (*domain.Tour, error) {
	f.idCalls++
	if f.failID {
		return nil, errStoreDown
	}
	for i := range f.tours {
		if f.tours[i].ID == id {
			t := f.tours[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListCategoriesByType(ctx context.Context, categoryType string) ([]domain.Category, error) {
	f.categoryCalls++
	if f.failCategories {
		return nil, errStoreDown
	}
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		if c.Type == categoryType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListFeaturedTours(ctx context.Context) ([]domain.Tour, error) {
	f.featuredCalls++
	if f.failFeatured {
		return nil, errStoreDown
	}
	out := make([]domain.Tour, 0, len(f.tours))
	for _, t := range f.tours {
		if t.Featured {
			out = append(out, t)
		}
	}
	return out, nil
}

func newTestService(store *fakeStore, clock *fakeClock) *Service {
	return New(store, logger.New("error", false), Config{Clock: clock.Now})
}

// tourAt builds a published tour n minutes after a fixed base time, so
// higher n means more recent.
func tourAt(id string, n int) domain.Tour {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.Tour{
		ID:        id,
		Status:    domain.StatusPublished,
		CreatedAt: base.Add(time.Duration(n) * time.Minute),
	}
}

func TestWarmPrimesListCaches(t *testing.T) {
	store := &fakeStore{
		tours:      []domain.Tour{withFeatured(tourAt("t1", 1))},
		categories: []domain.Category{{ID: "c1", Name: "Beaches", Type: domain.CategoryTypeTour, Active: true}},
	}
	svc := newTestService(store, newFakeClock())

	svc.Warm(context.Background())

	stats := svc.CacheStats()
	if !stats.CategoriesCached {
		t.Error("category cache should be primed after Warm")
	}
	if !stats.FeaturedCached {
		t.Error("featured cache should be primed after Warm")
	}
	if store.categoryCalls != 1 || store.featuredCalls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", store.categoryCalls, store.featuredCalls)
	}
}

func TestRefreshBypassesTTL(t *testing.T) {
	store := &fakeStore{
		tours:      []domain.Tour{withFeatured(tourAt("t1", 1))},
		categories: []domain.Category{{ID: "c1", Name: "Beaches", Type: domain.CategoryTypeTour, Active: true}},
	}
	clock := newFakeClock()
	svc := newTestService(store, clock)

	svc.Warm(context.Background())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// Refresh must have hit the store again despite fresh caches.
	if store.categoryCalls != 2 || store.featuredCalls != 2 {
		t.Errorf("calls after refresh = %d/%d, want 2/2", store.categoryCalls, store.featuredCalls)
	}
}

func TestRefreshReportsStoreFaults(t *testing.T) {
	store := &fakeStore{failCategories: true, failFeatured: true}
	svc := newTestService(store, newFakeClock())

	if err := svc.Refresh(context.Background()); err == nil {
		t.Error("Refresh() should surface store faults to the scheduler")
	}
}

func TestSweepExpiredDetails(t *testing.T) {
	store := &fakeStore{tours: []domain.Tour{
		withSlug(tourAt("t1", 1), "one"),
		withSlug(tourAt("t2", 2), "two"),
	}}
	clock := newFakeClock()
	svc := newTestService(store, clock)

	svc.TourBySlugOrID(context.Background(), "one")
	svc.TourBySlugOrID(context.Background(), "two")
	if svc.CacheStats().DetailEntries != 2 {
		t.Fatalf("DetailEntries = %d, want 2", svc.CacheStats().DetailEntries)
	}

	clock.Advance(2 * time.Minute)
	if removed := svc.SweepExpiredDetails(); removed != 2 {
		t.Errorf("SweepExpiredDetails() = %d, want 2", removed)
	}
	if svc.CacheStats().DetailEntries != 0 {
		t.Errorf("DetailEntries after sweep = %d, want 0", svc.CacheStats().DetailEntries)
	}
}

func withSlug(t domain.Tour, slug string) domain.Tour {
	t.Slug = slug
	return t
}

func withFeatured(t domain.Tour) domain.Tour {
	t.Featured = true
	return t
}

func withStatus(t domain.Tour, s domain.Status) domain.Tour {
	t.Status = s
	return t
}

func withCategory(t domain.Tour, categoryID string) domain.Tour {
	t.CategoryID = categoryID
	return t
}
