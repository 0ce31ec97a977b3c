package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced on /admin.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	// Content.
	r.Get("/collections/{name}", h.GetCollection)
	r.Get("/projects/{id}", h.GetProject)

	// Page view models.
	r.Get("/pages/home", h.HomePage)
	r.Get("/pages/resume", h.ResumePage)
	r.Get("/pages/projects", h.ProjectsPage)

	// Search.
	r.Get("/search", h.Search)

	// Contact form.
	r.Post("/contact", h.Contact)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))
		r.Get("/messages", h.ListMessages)
		r.Get("/messages/{id}", h.GetMessage)
		r.Post("/reload", h.Reload)
	})

	return r
}
