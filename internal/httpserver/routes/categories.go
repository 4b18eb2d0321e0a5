package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/atlasvoyages/catalog/internal/httpserver/deps"
	"github.com/atlasvoyages/catalog/internal/httpserver/handlers"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.Get("/api/categories", handlers.Categories(d))
}
