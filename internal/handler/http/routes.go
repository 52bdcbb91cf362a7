package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// probes and scraping
	router.Get("/healthz", h.health)
	router.Get("/version", h.version)
	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics)
	}

	router.Route("/api/tables", func(r chi.Router) {
		r.Use(middleware.Compress(5, "application/json"))

		r.Get("/", h.listTables)
		r.Post("/refresh", h.refreshAll)
		r.Get("/{table}", h.getSnapshot)
		r.Post("/{table}/refresh", h.refreshTable)
		r.Post("/{table}/mirror", h.mirrorTable)
	})

	return router
}
