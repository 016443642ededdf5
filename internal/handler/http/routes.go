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

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/salt", h.salt)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes behind JWT authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/profiles/", h.listProfiles)
		r.Put("/api/profiles/", h.upsertProfile)
		r.Delete("/api/profiles/{id}", h.deleteProfile)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
