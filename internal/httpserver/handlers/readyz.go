package handlers

import (
	"net/http"
	"time"

	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready    bool   `json:"ready"`
	LastWarm string `json:"last_warm,omitempty"`
}

// Readyz reports ready once the warmer has completed at least one cache
// warm, so traffic only arrives after the list caches are primed.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var last time.Time
		if d.Warmer != nil {
			last = d.Warmer.LastWarm()
		}

		if last.IsZero() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{
			Ready:    true,
			LastWarm: last.UTC().Format(time.RFC3339),
		})
	}
}
