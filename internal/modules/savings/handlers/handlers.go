// Package handlers provides HTTP handlers for transaction parsing, validation
// and filtering.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/savings"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/utils"
	"github.com/rs/zerolog"
)

// Handler handles transaction HTTP requests
type Handler struct {
	recorder journal.Recorder
	log      zerolog.Logger
}

// NewHandler creates a new transactions handler
func NewHandler(recorder journal.Recorder, log zerolog.Logger) *Handler {
	if recorder == nil {
		recorder = journal.NopRecorder{}
	}
	return &Handler{
		recorder: recorder,
		log:      log.With().Str("handler", "transactions").Logger(),
	}
}

// HandleParse handles POST /transactions:parse
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var req savings.ParseRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeRequestError(w, err)
		return
	}

	txs, err := savings.Parse(req)
	if err != nil {
		h.writeRequestError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, txs)
}

// HandleValidate handles POST /transactions:validator
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req savings.ValidatorRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeRequestError(w, err)
		return
	}

	resp, err := savings.Validate(req)
	if err != nil {
		h.writeRequestError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleFilter handles POST /transactions:filter
func (h *Handler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	timer := utils.NewTimer("transactions_filter", h.log)

	var req savings.FilterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.writeRequestError(w, err)
		return
	}

	result, err := savings.Filter(req)
	if err != nil {
		h.writeRequestError(w, err)
		return
	}

	amount, ceiling := savings.Totals(result.Transactions)
	windows := make([]journal.WindowResult, 0, len(result.Sums))
	for _, s := range result.Sums {
		windows = append(windows, journal.WindowResult{
			Start:  savings.FormatTimestamp(s.Start),
			End:    savings.FormatTimestamp(s.End),
			Amount: s.Amount,
		})
	}
	h.recorder.Record(r.Context(), journal.Run{
		Endpoint:         journal.EndpointFilter,
		WindowCount:      len(result.Sums),
		TransactionCount: len(result.Transactions),
		TotalAmount:      amount,
		TotalCeiling:     ceiling,
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
