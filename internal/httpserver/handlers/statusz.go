package handlers

import (
	"net/http"
	"time"

	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
)

type componentStatus struct {
	OK       bool   `json:"ok"`
	Entries  *int   `json:"entries,omitempty"`
	LastWarm string `json:"last_warm,omitempty"`
	Impact   string `json:"impact,omitempty"`
}

type statuszResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Statusz reports cache occupancy and warm state for operators. Mode is
// "warm" when both list caches are primed, "cold" otherwise; cold only
// means the next page view pays the store round trip.
func Statusz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := d.Catalog.CacheStats()

		lastWarmStr := "never"
		if d.Warmer != nil {
			if last := d.Warmer.LastWarm(); !last.IsZero() {
				lastWarmStr = last.UTC().Format(time.RFC3339)
			}
		}

		details := stats.DetailEntries
		components := map[string]componentStatus{
			"categories": {
				OK:       stats.CategoriesCached,
				LastWarm: lastWarmStr,
				Impact:   impactFor(stats.CategoriesCached),
			},
			"featured": {
				OK:       stats.FeaturedCached,
				LastWarm: lastWarmStr,
				Impact:   impactFor(stats.FeaturedCached),
			},
			"details": {
				OK:      true,
				Entries: &details,
			},
		}

		mode := "warm"
		if !stats.CategoriesCached || !stats.FeaturedCached {
			mode = "cold"
		}

		writeJSON(w, http.StatusOK, statuszResponse{
			Mode:       mode,
			Components: components,
		})
	}
}

func impactFor(cached bool) string {
	if cached {
		return "served-from-memory"
	}
	return "next-read-hits-store"
}
