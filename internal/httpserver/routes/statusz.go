package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
	"github.com/atlasvoyages/catalog/internal/httpserver/handlers"
	"github.com/atlasvoyages/catalog/internal/httpserver/mw"
)

func init() { Register(registerStatusz) }

func registerStatusz(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AdminCIDRs, d.TrustProxy, d.Logger)).Get("/statusz", handlers.Statusz(d))
}
