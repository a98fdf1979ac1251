package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/chunks/{x}/{z}", handler.GetChunk)
		r.Get("/surface/{x}/{z}", handler.GetSurface)
		r.Get("/biomes/{x}/{z}", handler.GetBiome)
		r.Post("/view", handler.UpdateView)
	})

	return r
}
