// Package handlers provides HTTP handlers for the calculation journal.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal"
	"github.com/rs/zerolog"
)

const (
	defaultListLimit = 20
	maxListLimit     = 500
)

// RunStore is the read side of the journal used by the handlers
type RunStore interface {
	List(ctx context.Context, limit int) ([]journal.Run, error)
	GetByID(ctx context.Context, id string) (*journal.Run, error)
}

// Handler handles journal HTTP requests
type Handler struct {
	store RunStore
	log   zerolog.Logger
}

// NewHandler creates a new journal handler
func NewHandler(store RunStore, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log.With().Str("handler", "journal").Logger(),
	}
}

// HandleListRuns handles GET /runs
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	runs, err := h.store.List(r.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list runs")
		h.writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// HandleGetRun handles GET /runs/{id}
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.store.GetByID(r.Context(), id)
	if errors.Is(err, journal.ErrRunNotFound) {
		h.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get run")
		h.writeError(w, http.StatusInternalServerError, "failed to get run")
		return
	}

	h.writeJSON(w, http.StatusOK, run)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
