package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers the transaction routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/transactions:parse", h.HandleParse)
	r.Post("/transactions:validator", h.HandleValidate)
	r.Post("/transactions:filter", h.HandleFilter)
}
