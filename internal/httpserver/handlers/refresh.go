package handlers

import (
	"net/http"

	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
	"github.com/atlasvoyages/catalog/internal/logger"
)

type refreshResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Refresh triggers an immediate cache warm outside the regular
// interval. Non-blocking: if a warm is already queued the request is
// turned away with 429 instead of piling up.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual catalog refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, refreshResponse{
				Triggered: true,
				Message:   "refresh triggered",
			})
		default:
			d.Logger.Warn("catalog refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, refreshResponse{
				Triggered: false,
				Message:   "refresh already in progress",
			})
		}
	}
}
