package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atlasvoyages/catalog/internal/domain"
	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
	"github.com/atlasvoyages/catalog/internal/logger"
)

// tourListResponse is the pagination envelope. Items is never null so
// the storefront can iterate without a guard; the cursor is omitted
// when the listing is exhausted.
type tourListResponse struct {
	Items      []domain.Tour `json:"items"`
	NextCursor string        `json:"nextCursor,omitempty"`
	HasMore    bool          `json:"hasMore"`
}

// ListTours serves GET /api/tours. Optional query params: pageSize,
// cursor (opaque token from a previous page), category (filters the
// listing to one category id).
func ListTours(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageSize, err := parsePageSize(r, d.DefaultPageSize, d.MaxPageSize)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid pageSize")
			return
		}

		var after *domain.PageCursor
		if token := strings.TrimSpace(r.URL.Query().Get("cursor")); token != "" {
			after, err = domain.DecodeCursor(token, domain.ShapePublishedByCreatedAtDesc)
			if err != nil {
				d.Logger.Debug("rejected cursor token", logger.Error(err))
				writeError(w, http.StatusBadRequest, "invalid cursor")
				return
			}
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		page := d.Catalog.ToursByCategoryPage(r.Context(), category, pageSize, after)

		resp := tourListResponse{
			Items:   page.Items,
			HasMore: page.HasMore,
		}
		if resp.Items == nil {
			resp.Items = []domain.Tour{}
		}
		if page.NextCursor != nil {
			resp.NextCursor = page.NextCursor.Token()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type featuredResponse struct {
	Items []domain.Tour `json:"items"`
}

// FeaturedTours serves GET /api/tours/featured. The max param bounds
// the result; it defaults to 6 and never exceeds the page-size cap.
func FeaturedTours(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxItems := 6
		if raw := r.URL.Query().Get("max"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "invalid max")
				return
			}
			maxItems = n
		}
		if d.MaxPageSize > 0 && maxItems > d.MaxPageSize {
			maxItems = d.MaxPageSize
		}

		items := d.Catalog.FeaturedTours(r.Context(), maxItems)
		if items == nil {
			items = []domain.Tour{}
		}
		writeJSON(w, http.StatusOK, featuredResponse{Items: items})
	}
}

// TourDetail serves GET /api/tours/{slugOrID}. Absent and unpublished
// tours are both a plain 404.
func TourDetail(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slugOrID := chi.URLParam(r, "slugOrID")

		tour := d.Catalog.TourBySlugOrID(r.Context(), slugOrID)
		if tour == nil {
			writeError(w, http.StatusNotFound, "tour not found")
			return
		}
		writeJSON(w, http.StatusOK, tour)
	}
}

func parsePageSize(r *http.Request, def, max int) (int, error) {
	raw := r.URL.Query().Get("pageSize")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errBadParam
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}

var errBadParam = errors.New("invalid query parameter")
