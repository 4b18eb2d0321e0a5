package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/atlasvoyages/catalog/internal/cache"
	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// Store is the read-only document-store boundary the catalog reads
// through. The Firestore adapter implements it in production; tests
// substitute an in-memory fake.
type Store interface {
	ListPublishedTours(ctx context.Context, pageSize int, after *domain.PageCursor) (domain.TourPage, error)
	FindTourBySlug(ctx context.Context, slug string) (*domain.Tour, error)
	GetTourByID(ctx context.Context, id string) (*domain.Tour, error)
	ListCategoriesByType(ctx context.Context, categoryType string) ([]domain.Category, error)
	ListFeaturedTours(ctx context.Context) ([]domain.Tour, error)
}

// Single-entry cache keys. The category and featured caches each hold
// one list as a unit; the detail cache is keyed per slug-or-id.
const (
	keyCategories = "categories:tour"
	keyFeatured   = "tours:featured"
)

const (
	DefaultPageSize         = 9
	DefaultCategoryPageSize = 6
	DefaultTTL              = time.Minute
)

// Config tunes the catalog caches. Zero TTLs fall back to DefaultTTL;
// a nil Clock means wall time.
type Config struct {
	CategoryTTL time.Duration
	FeaturedTTL time.Duration
	DetailTTL   time.Duration
	Clock       cache.Clock
}

// Service is the catalog access layer. Every public read of the tour
// site goes through here. Store faults never escape to callers: each
// operation catches them, logs, and degrades to an empty or absent
// result, so the UI renders its empty state from the absence of data.
type Service struct {
	store Store
	log   logger.Logger

	categories *cache.Cache[[]domain.Category]
	featured   *cache.Cache[[]domain.Tour]
	details    *cache.Cache[domain.Tour]
}

// New builds the catalog service. Constructed once at application start
// and shared; the caches live for the process lifetime.
func New(store Store, log logger.Logger, cfg Config) *Service {
	if cfg.CategoryTTL <= 0 {
		cfg.CategoryTTL = DefaultTTL
	}
	if cfg.FeaturedTTL <= 0 {
		cfg.FeaturedTTL = DefaultTTL
	}
	if cfg.DetailTTL <= 0 {
		cfg.DetailTTL = DefaultTTL
	}
	return &Service{
		store:      store,
		log:        log,
		categories: cache.New[[]domain.Category](cfg.CategoryTTL, cfg.Clock),
		featured:   cache.New[[]domain.Tour](cfg.FeaturedTTL, cfg.Clock),
		details:    cache.New[domain.Tour](cfg.DetailTTL, cfg.Clock),
	}
}

// Warm primes the category and featured caches. Best effort: on failure
// the caches stay empty and the next request retries.
func (s *Service) Warm(ctx context.Context) {
	s.TourCategories(ctx)
	s.FeaturedTours(ctx, 0)
}

// Refresh refetches the category and featured lists regardless of TTL
// and replaces the cached copies. Used by the warmer and the manual
// refresh endpoint.
func (s *Service) Refresh(ctx context.Context) error {
	cats, catErr := s.fetchCategories(ctx)
	if catErr == nil {
		s.categories.Put(keyCategories, cats)
	}
	feat, featErr := s.fetchFeatured(ctx)
	if featErr == nil {
		s.featured.Put(keyFeatured, feat)
	}
	return errors.Join(catErr, featErr)
}

// SweepExpiredDetails drops expired per-key detail entries. The detail
// cache grows with every distinct slug or id ever looked up, so the
// sweeper scheduler calls this periodically.
func (s *Service) SweepExpiredDetails() int {
	return s.details.Sweep()
}

// Stats reports cache occupancy for the status endpoint.
type Stats struct {
	CategoriesCached bool
	FeaturedCached   bool
	DetailEntries    int
}

// CacheStats returns a snapshot of the three catalog caches.
func (s *Service) CacheStats() Stats {
	_, cats := s.categories.Get(keyCategories)
	_, feat := s.featured.Get(keyFeatured)
	return Stats{
		CategoriesCached: cats,
		FeaturedCached:   feat,
		DetailEntries:    s.details.Len(),
	}
}
