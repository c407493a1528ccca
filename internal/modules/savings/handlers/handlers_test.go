package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/savings"
	testutil "github.com/ketulrudani/Self-saving-for-your-retirement/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(recorder journal.Recorder) *chi.Mux {
	handler := NewHandler(recorder, zerolog.New(nil).Level(zerolog.Disabled))
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleParse(t *testing.T) {
	router := newRouter(nil)

	w := post(router, "/transactions:parse", testutil.ReferenceTransactionsJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var txs []savings.TransactionDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txs))
	require.Len(t, txs, 4)

	remanents := []float64{txs[0].Remanent, txs[1].Remanent, txs[2].Remanent, txs[3].Remanent}
	assert.Equal(t, []float64{50, 25, 80, 20}, remanents)
}

func TestHandleParse_Errors(t *testing.T) {
	router := newRouter(nil)

	w := post(router, "/transactions:parse", `{"expenses": [`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(router, "/transactions:parse", `[{"timestamp":"2023-01-01 00:00:00","amount":600000}]`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "expenses[0].amount")

	w = post(router, "/transactions:parse", `[{"timestamp":"yesterday","amount":1}]`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleValidate(t *testing.T) {
	router := newRouter(nil)

	w := post(router, "/transactions:validator", `{
		"wage": 50000,
		"transactions": [
			{"date":"2023-10-12 20:15:00","amount":250,"ceiling":300,"remanent":50},
			{"date":"2023-10-12 20:15:00","amount":250,"ceiling":300,"remanent":50}
		]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp savings.ValidatorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Valid, 1)
	require.Len(t, resp.Invalid, 1)
	assert.Equal(t, savings.MsgDuplicate, resp.Invalid[0].Message)

	w = post(router, "/transactions:validator", `{"transactions": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"wage: field required"}`, w.Body.String())
}

func TestHandleFilter_RecordsRun(t *testing.T) {
	recorder := testutil.NewMockRecorder()
	router := newRouter(recorder)

	body := `{` + testutil.ReferenceRulesJSON + `, "transactions": ` + testutil.ReferenceTransactionsJSON + `}`
	w := post(router, "/transactions:filter", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp savings.FilterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.SavingsByDates, 2)
	assert.Equal(t, 75.0, resp.SavingsByDates[0].Amount)
	assert.Equal(t, 145.0, resp.SavingsByDates[1].Amount)
	assert.Len(t, resp.Valid, 4)
	assert.Empty(t, resp.Invalid)

	runs := recorder.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, journal.EndpointFilter, runs[0].Endpoint)
	assert.Equal(t, 4, runs[0].TransactionCount)
	assert.Equal(t, 2, runs[0].WindowCount)
	assert.Equal(t, 1725.0, runs[0].TotalAmount)
	assert.Equal(t, "2023-03-01 00:00:00", runs[0].Windows[0].Start)
}

func TestHandleFilter_InvalidDoesNotRecord(t *testing.T) {
	recorder := testutil.NewMockRecorder()
	router := newRouter(recorder)

	w := post(router, "/transactions:filter", `{"k":[{"start":"2023-01-01 00:00:00"}],"transactions":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, recorder.Runs())
}

func TestRegisterRoutes(t *testing.T) {
	handler := NewHandler(journal.NopRecorder{}, zerolog.New(nil).Level(zerolog.Disabled))
	router := chi.NewRouter()

	assert.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")
}
