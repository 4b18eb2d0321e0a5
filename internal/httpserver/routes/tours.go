package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
	"github.com/atlasvoyages/catalog/internal/httpserver/handlers"
)

func init() { Register(registerTours) }

func registerTours(r chi.Router, d deps.Deps) {
	r.Get("/api/tours", handlers.ListTours(d))
	r.Get("/api/tours/featured", handlers.FeaturedTours(d))
	r.Get("/api/tours/{slugOrID}", handlers.TourDetail(d))
}
