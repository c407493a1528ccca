package returns

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/savings"
	testutil "github.com/ketulrudani/Self-saving-for-your-retirement/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceRequest(t *testing.T, age int, wage, inflation float64) Request {
	t.Helper()
	body := `{
		"age": ` + jsonNumber(float64(age)) + `,
		"wage": ` + jsonNumber(wage) + `,
		"inflation": ` + jsonNumber(inflation) + `,
		` + testutil.ReferenceRulesJSON + `,
		"transactions": ` + testutil.ReferenceTransactionsJSON + `
	}`

	var req Request
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func jsonNumber(v float64) string {
	out, _ := json.Marshal(v)
	return string(out)
}

func TestCalculate_NPS(t *testing.T) {
	e := NewEngine(DefaultConfig())

	result, err := e.Calculate(referenceRequest(t, 29, 50_000, 5.5), ProductNPS)
	require.NoError(t, err)
	resp := result.Response

	assert.Equal(t, 1725.0, resp.TransactionsTotalAmount)
	assert.Equal(t, 1900.0, resp.TotalCeiling)
	require.Len(t, resp.SavingsByDates, 2)

	full := resp.SavingsByDates[1]
	assert.Equal(t, 145.0, full.Amount)
	require.NotNil(t, full.Profits)
	assert.InDelta(t, 86.88, *full.Profits, 2)
	require.NotNil(t, full.TaxBenefit)
	assert.Equal(t, 0.0, *full.TaxBenefit)
	assert.Nil(t, full.Return)

	assert.Equal(t, 75.0, resp.SavingsByDates[0].Amount)
	assert.Len(t, result.Projections, 2)
}

func TestCalculate_Index(t *testing.T) {
	e := NewEngine(DefaultConfig())

	result, err := e.Calculate(referenceRequest(t, 29, 50_000, 0.055), ProductIndex)
	require.NoError(t, err)

	full := result.Response.SavingsByDates[1]
	require.NotNil(t, full.Return)
	assert.InDelta(t, 1829.5, *full.Return, 30)
	assert.Nil(t, full.Profits)
	assert.Nil(t, full.TaxBenefit)

	out, err := json.Marshal(full)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.Contains(t, fields, "return")
	assert.NotContains(t, fields, "profits")
	assert.Equal(t, "2023-01-01 00:00:00", fields["start"])
}

func TestCalculate_PercentAndFractionInflationAgree(t *testing.T) {
	e := NewEngine(DefaultConfig())

	a, err := e.Calculate(referenceRequest(t, 29, 50_000, 5.5), ProductIndex)
	require.NoError(t, err)
	b, err := e.Calculate(referenceRequest(t, 29, 50_000, 0.055), ProductIndex)
	require.NoError(t, err)

	assert.Equal(t, *a.Response.SavingsByDates[1].Return, *b.Response.SavingsByDates[1].Return)
}

func TestCalculate_IgnoresSuppliedRemanent(t *testing.T) {
	e := NewEngine(DefaultConfig())
	age, wage, inflation := 29, 0.0, 0.0
	amount, ceiling, remanent := 250.0, 1000.0, 750.0
	date := savings.Timestamp{}

	result, err := e.Calculate(Request{
		Age: &age, Wage: &wage, Inflation: &inflation,
		Transactions: []savings.TransactionInputDTO{{Date: &date, Amount: &amount, Ceiling: &ceiling, Remanent: &remanent}},
	}, ProductIndex)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, 50.0, result.Transactions[0].Remanent)
	assert.Equal(t, 300.0, result.Response.TotalCeiling)
	assert.Empty(t, result.Response.SavingsByDates)
}

func TestCalculate_Validation(t *testing.T) {
	e := NewEngine(DefaultConfig())
	age, badAge := 29, 120
	wage, badWage := 1000.0, -1.0
	inflation, badInflation := 5.0, 101.0
	txs := []savings.TransactionInputDTO{}
	date := savings.Timestamp(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	huge, negative := 1e308, -5.0
	hugeTxs := []savings.TransactionInputDTO{{Date: &date, Amount: &huge}, {Date: &date, Amount: &huge}}
	negativeTxs := []savings.TransactionInputDTO{{Date: &date, Amount: &negative}}

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"missing age", Request{Wage: &wage, Inflation: &inflation, Transactions: txs}, "age"},
		{"age too high", Request{Age: &badAge, Wage: &wage, Inflation: &inflation, Transactions: txs}, "age"},
		{"negative wage", Request{Age: &age, Wage: &badWage, Inflation: &inflation, Transactions: txs}, "wage"},
		{"inflation above 100", Request{Age: &age, Wage: &wage, Inflation: &badInflation, Transactions: txs}, "inflation"},
		{"missing transactions", Request{Age: &age, Wage: &wage, Inflation: &inflation}, "transactions"},
		{"amount above bound", Request{Age: &age, Wage: &wage, Inflation: &inflation, Transactions: hugeTxs}, "transactions[0].amount"},
		{"negative amount", Request{Age: &age, Wage: &wage, Inflation: &inflation, Transactions: negativeTxs}, "transactions[0].amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Calculate(tt.req, ProductNPS)
			var verr *savings.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, savings.ErrInvalidRequest)
		})
	}
}

func TestCalculate_MatchesPipelineFixtures(t *testing.T) {
	rules := testutil.NewRuleFixtures()
	txs, sums := savings.RunPipeline(testutil.NewExpenseFixtures(), rules.Overrides, rules.Bonuses, rules.Windows)
	require.Len(t, txs, 4)
	require.Len(t, sums, 2)

	e := NewEngine(DefaultConfig())
	result, err := e.Calculate(referenceRequest(t, 29, 50_000, 5.5), ProductIndex)
	require.NoError(t, err)

	require.Len(t, result.Windows, len(sums))
	for i, sum := range sums {
		assert.Equal(t, sum.Amount, result.Windows[i].Amount)
		assert.True(t, sum.Start.Equal(result.Windows[i].Start))
		assert.True(t, sum.End.Equal(result.Windows[i].End))

		want := e.ProjectReturn(sum.Amount, 29, 0.055, ProductIndex, 0)
		assert.InDelta(t, want.Value, result.Projections[i].Value, 1e-9)
	}
}
