package catalog

import (
	"context"
	"sort"

	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// ToursPage returns one page of published tours, newest first. Listing
// pages are not cached; only the slow-changing lists are.
func (s *Service) ToursPage(ctx context.Context, pageSize int, after *domain.PageCursor) domain.TourPage {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	page, err := s.store.ListPublishedTours(ctx, pageSize, after)
	if err != nil {
		s.log.Error("failed to load tours page", logger.Error(err))
		return domain.TourPage{}
	}
	return page
}

// Tours is a convenience for pages that just need "some tours": the
// items of the first page only, still paginated underneath.
func (s *Service) Tours(ctx context.Context, pageSize int) []domain.Tour {
	return s.ToursPage(ctx, pageSize, nil).Items
}

// ToursByCategoryPage pages through the published listing and filters
// by category on the client side, so the store needs no composite
// (status + category) index. It keeps pulling underlying pages until
// the requested page size is filled or the listing runs out.
//
// The returned page may hold fewer than pageSize items even when
// HasMore is true, when few matches sat near the end of the scanned
// pages. HasMore is the only continuation signal; item count is not.
//
// An empty categoryID behaves exactly like the unfiltered pager.
func (s *Service) ToursByCategoryPage(ctx context.Context, categoryID string, pageSize int, after *domain.PageCursor) domain.TourPage {
	if categoryID == "" {
		return s.ToursPage(ctx, pageSize, after)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	accumulated := make([]domain.Tour, 0, pageSize)
	cursor := after
	hasMore := true

	for len(accumulated) < pageSize && hasMore {
		page, err := s.store.ListPublishedTours(ctx, pageSize, cursor)
		if err != nil {
			s.log.Error("failed to load tours page for category",
				logger.String("category_id", categoryID),
				logger.Error(err))
			return domain.TourPage{}
		}

		if len(page.Items) == 0 {
			hasMore = false
			cursor = page.NextCursor
			break
		}

		for _, t := range page.Items {
			if t.CategoryID == categoryID {
				accumulated = append(accumulated, t)
			}
		}
		cursor = page.NextCursor
		hasMore = page.HasMore
	}

	return domain.TourPage{
		Items:      accumulated,
		NextCursor: cursor,
		HasMore:    hasMore,
	}
}

// FeaturedTours returns the most recent featured tours, at most
// maxItems of them (maxItems <= 0 means all). The unbounded published
// list is cached as one unit; truncation happens after the cache read,
// so differently sized requests share the same fetch.
func (s *Service) FeaturedTours(ctx context.Context, maxItems int) []domain.Tour {
	items, err := s.featured.GetOrFetch(ctx, keyFeatured, s.fetchFeatured)
	if err != nil {
		s.log.Error("failed to load featured tours", logger.Error(err))
		return nil
	}
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}
	return items
}

// fetchFeatured queries by the featured flag alone and applies the
// published filter and recency sort here, keeping the store query to a
// single equality filter.
func (s *Service) fetchFeatured(ctx context.Context) ([]domain.Tour, error) {
	items, err := s.store.ListFeaturedTours(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]domain.Tour, 0, len(items))
	for _, t := range items {
		if t.Published() {
			published = append(published, t)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})
	return published, nil
}

// TourBySlugOrID resolves a details-page lookup and returns nil when no
// published tour matches.
//
// The slug query runs first. A slug match that is not published is
// authoritative: it resolves to absent and is not reinterpreted as an
// identifier. A transient slug-query failure, or no slug match, falls
// through to the direct identifier lookup. No retries either way.
func (s *Service) TourBySlugOrID(ctx context.Context, slugOrID string) *domain.Tour {
	if slugOrID == "" {
		return nil
	}

	if t, ok := s.details.Get(slugOrID); ok {
		return &t
	}

	t, err := s.store.FindTourBySlug(ctx, slugOrID)
	if err != nil {
		s.log.Warn("slug lookup failed, falling back to id",
			logger.String("slug_or_id", slugOrID),
			logger.Error(err))
	} else if t != nil {
		if !t.Published() {
			return nil
		}
		s.details.Put(slugOrID, *t)
		return t
	}

	t, err = s.store.GetTourByID(ctx, slugOrID)
	if err != nil {
		s.log.Error("id lookup failed",
			logger.String("slug_or_id", slugOrID),
			logger.Error(err))
		return nil
	}
	if t == nil || !t.Published() {
		return nil
	}
	s.details.Put(slugOrID, *t)
	return t
}
