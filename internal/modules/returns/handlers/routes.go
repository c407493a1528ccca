package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers the return projection routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/returns:nps", h.HandleNPS)
	r.Post("/returns:index", h.HandleIndex)
}
