package catalog

import (
	"context"

	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// TourCategories returns all active tour categories, sorted for
// display. The whole list is cached as one unit, already filtered and
// sorted.
func (s *Service) TourCategories(ctx context.Context) []domain.Category {
	items, err := s.categories.GetOrFetch(ctx, keyCategories, s.fetchCategories)
	if err != nil {
		s.log.Error("failed to load tour categories", logger.Error(err))
		return nil
	}
	return items
}

// fetchCategories queries by type alone and applies the active filter
// and sort here, keeping the store query to a single equality filter.
func (s *Service) fetchCategories(ctx context.Context) ([]domain.Category, error) {
	items, err := s.store.ListCategoriesByType(ctx, domain.CategoryTypeTour)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Category, 0, len(items))
	for _, c := range items {
		if c.Active {
			active = append(active, c)
		}
	}
	domain.SortCategories(active)
	return active, nil
}

// TourCategoriesPage slices the cached sorted list with 1-based offset
// paging. The full list is already in memory, so Total and HasMore are
// exact, unlike the cursor-paged tour listings.
func (s *Service) TourCategoriesPage(ctx context.Context, page, pageSize int) domain.CategoryPage {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultCategoryPageSize
	}

	all := s.TourCategories(ctx)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	return domain.CategoryPage{
		Items:    all[start:end],
		Total:    len(all),
		Page:     page,
		PageSize: pageSize,
		HasMore:  end < len(all),
	}
}
