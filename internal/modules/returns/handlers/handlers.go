// Package handlers provides HTTP handlers for return projections.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/returns"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/savings"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/utils"
	"github.com/rs/zerolog"
)

// Handler handles return projection HTTP requests
type Handler struct {
	engine   *returns.Engine
	recorder journal.Recorder
	log      zerolog.Logger
}

// NewHandler creates a new returns handler
func NewHandler(engine *returns.Engine, recorder journal.Recorder, log zerolog.Logger) *Handler {
	if recorder == nil {
		recorder = journal.NopRecorder{}
	}
	return &Handler{
		engine:   engine,
		recorder: recorder,
		log:      log.With().Str("handler", "returns").Logger(),
	}
}

// HandleNPS handles POST /returns:nps
func (h *Handler) HandleNPS(w http.ResponseWriter, r *http.Request) {
	h.handleReturns(w, r, returns.ProductNPS, journal.EndpointReturnsNPS)
}

// HandleIndex handles POST /returns:index
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.handleReturns(w, r, returns.ProductIndex, journal.EndpointReturnsIndex)
}

func (h *Handler) handleReturns(w http.ResponseWriter, r *http.Request, product returns.Product, endpoint string) {
	timer := utils.NewTimer(endpoint, h.log)

	var req returns.Request
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeRequestError(w, err)
		return
	}

	result, err := h.engine.Calculate(req, product)
	if err != nil {
		h.writeRequestError(w, err)
		return
	}

	windows := make([]journal.WindowResult, 0, len(result.Windows))
	for i, sum := range result.Windows {
		value := result.Projections[i].Value
		windows = append(windows, journal.WindowResult{
			Start:      savings.FormatTimestamp(sum.Start),
			End:        savings.FormatTimestamp(sum.End),
			Amount:     sum.Amount,
			Value:      &value,
			TaxBenefit: result.Projections[i].TaxBenefit,
		})
	}
	h.recorder.Record(r.Context(), journal.Run{
		Endpoint:         endpoint,
		Product:          string(product),
		WindowCount:      len(result.Windows),
		TransactionCount: len(result.Transactions),
		TotalAmount:      result.Response.TransactionsTotalAmount,
		TotalCeiling:     result.Response.TotalCeiling,
		Windows:          windows,
		DurationMicros:   timer.Stop().Microseconds(),
	})

	h.writeJSON(w, http.StatusOK, result.Response)
}

// writeRequestError maps malformed bodies to 400 and every other request
// problem to 422.
func (h *Handler) writeRequestError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	if errors.Is(err, utils.ErrMalformedJSON) {
		status = http.StatusBadRequest
	}
	h.log.Debug().Err(err).Int("status", status).Msg("Rejected request")
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
