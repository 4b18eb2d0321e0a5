package deps

import (
	"context"
	"time"

	"github.com/atlasvoyages/catalog/internal/catalog"
	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// Catalog is the slice of the catalog service the HTTP layer consumes.
// Handlers depend on this interface so tests can substitute a fake.
type Catalog interface {
	ToursPage(ctx context.Context, pageSize int, after *domain.PageCursor) domain.TourPage
	ToursByCategoryPage(ctx context.Context, categoryID string, pageSize int, after *domain.PageCursor) domain.TourPage
	FeaturedTours(ctx context.Context, maxItems int) []domain.Tour
	TourBySlugOrID(ctx context.Context, slugOrID string) *domain.Tour
	TourCategories(ctx context.Context) []domain.Category
	TourCategoriesPage(ctx context.Context, page, pageSize int) domain.CategoryPage
	CacheStats() catalog.Stats
}

// Warmer reports the last successful cache warm. Readiness gates on it.
type Warmer interface {
	LastWarm() time.Time
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Catalog Catalog
	Warmer  Warmer

	DefaultPageSize int // tours per page when the caller does not say
	MaxPageSize     int // hard cap on caller-supplied page sizes

	AdminCIDRs []string // IPs/CIDRs allowed on the refresh and status endpoints
	TrustProxy bool     // true if running behind a trusted reverse proxy

	RefreshTrigger chan struct{} // channel feeding the warmer's manual trigger
}
