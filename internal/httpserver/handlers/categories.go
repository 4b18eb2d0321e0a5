package handlers

import (
	"net/http"
	"strconv"

	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
)

type categoryListResponse struct {
	Items []domain.Category `json:"items"`
}

// Categories serves GET /api/categories. Without a page param it
// returns the full active tour-category list; with one it returns an
// offset-paged envelope with an exact total.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("page") == "" {
			items := d.Catalog.TourCategories(r.Context())
			if items == nil {
				items = []domain.Category{}
			}
			writeJSON(w, http.StatusOK, categoryListResponse{Items: items})
			return
		}

		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 1 {
			writeError(w, http.StatusBadRequest, "invalid page")
			return
		}
		pageSize := 0
		if raw := q.Get("pageSize"); raw != "" {
			pageSize, err = strconv.Atoi(raw)
			if err != nil || pageSize < 1 {
				writeError(w, http.StatusBadRequest, "invalid pageSize")
				return
			}
			if d.MaxPageSize > 0 && pageSize > d.MaxPageSize {
				pageSize = d.MaxPageSize
			}
		}

		result := d.Catalog.TourCategoriesPage(r.Context(), page, pageSize)
		if result.Items == nil {
			result.Items = []domain.Category{}
		}
		writeJSON(w, http.StatusOK, result)
	}
}
