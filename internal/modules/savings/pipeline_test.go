package savings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := ParseTimestamp(value)
	require.NoError(t, err)
	return parsed
}

func TestCeilingAndRemanent(t *testing.T) {
	tests := []struct {
		amount   float64
		ceiling  float64
		remanent float64
	}{
		{250, 300, 50},
		{375, 400, 25},
		{620, 700, 80},
		{480, 500, 20},
		{100, 100, 0},
		{0, 0, 0},
		{1, 100, 99},
		{99.5, 100, 0.5},
		{499_999, 500_000, 1},
	}

	for _, tt := range tests {
		ceiling, remanent := CeilingAndRemanent(tt.amount)
		assert.Equal(t, tt.ceiling, ceiling, "ceiling of %v", tt.amount)
		assert.InDelta(t, tt.remanent, remanent, 1e-9, "remanent of %v", tt.amount)
	}
}

func TestCeilingAndRemanent_Properties(t *testing.T) {
	for amount := 0.0; amount < 2000; amount += 7.25 {
		ceiling, remanent := CeilingAndRemanent(amount)
		assert.Zero(t, int64(ceiling)%100)
		assert.GreaterOrEqual(t, ceiling, amount)
		assert.Less(t, ceiling-100, amount+1e-9)
		assert.GreaterOrEqual(t, remanent, 0.0)
		assert.Less(t, remanent, 100.0)
	}
}

func TestNormalizeTransactions_KeepsOrderAndTruncatesSeconds(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	expenses := []Expense{
		{Date: time.Date(2023, 10, 12, 20, 15, 0, 999_000_000, loc), Amount: 250},
		{Date: time.Date(2023, 2, 28, 15, 49, 0, 0, time.UTC), Amount: 375},
	}

	txs := NormalizeTransactions(expenses)
	require.Len(t, txs, 2)
	assert.Equal(t, time.Date(2023, 10, 12, 20, 15, 0, 0, time.UTC), txs[0].Date)
	assert.Equal(t, 250.0, txs[0].Amount)
	assert.Equal(t, 300.0, txs[0].Ceiling)
	assert.Equal(t, 50.0, txs[0].Remanent)
	assert.Equal(t, 375.0, txs[1].Amount)

	// input untouched
	assert.Equal(t, 999_000_000, expenses[0].Date.Nanosecond())
}

func TestApplyOverridePeriods_LatestStartWins(t *testing.T) {
	txs := []Transaction{{Date: ts(t, "2023-07-15 12:00:00"), Amount: 620, Ceiling: 700, Remanent: 80}}
	periods := []OverridePeriod{
		{Fixed: 10, Start: ts(t, "2023-07-01 00:00:00"), End: ts(t, "2023-07-31 23:59:59")},
		{Fixed: 20, Start: ts(t, "2023-07-10 00:00:00"), End: ts(t, "2023-07-20 00:00:00")},
		{Fixed: 30, Start: ts(t, "2023-06-01 00:00:00"), End: ts(t, "2023-08-01 00:00:00")},
	}

	out := ApplyOverridePeriods(txs, periods)
	assert.Equal(t, 20.0, out[0].Remanent)
	assert.Equal(t, 80.0, txs[0].Remanent, "input must not be mutated")
}

func TestApplyOverridePeriods_TieGoesToFirstListed(t *testing.T) {
	txs := []Transaction{{Date: ts(t, "2023-07-15 12:00:00"), Remanent: 80}}
	start := ts(t, "2023-07-01 00:00:00")
	periods := []OverridePeriod{
		{Fixed: 11, Start: start, End: ts(t, "2023-07-31 00:00:00")},
		{Fixed: 22, Start: start, End: ts(t, "2023-07-20 00:00:00")},
	}

	assert.Equal(t, 11.0, ApplyOverridePeriods(txs, periods)[0].Remanent)

	periods[0], periods[1] = periods[1], periods[0]
	assert.Equal(t, 22.0, ApplyOverridePeriods(txs, periods)[0].Remanent)
}

func TestApplyOverridePeriods_InclusiveBoundsAndNoMatch(t *testing.T) {
	start := ts(t, "2023-07-01 00:00:00")
	end := ts(t, "2023-07-31 23:59:00")
	txs := []Transaction{
		{Date: start, Remanent: 1},
		{Date: end, Remanent: 2},
		{Date: end.Add(time.Second), Remanent: 3},
	}

	out := ApplyOverridePeriods(txs, []OverridePeriod{{Fixed: 0, Start: start, End: end}})
	assert.Equal(t, 0.0, out[0].Remanent)
	assert.Equal(t, 0.0, out[1].Remanent)
	assert.Equal(t, 3.0, out[2].Remanent)
}

func TestApplyOverridePeriods_EmptyIsCopy(t *testing.T) {
	txs := []Transaction{{Remanent: 5}}
	out := ApplyOverridePeriods(txs, nil)
	require.Len(t, out, 1)
	out[0].Remanent = 99
	assert.Equal(t, 5.0, txs[0].Remanent)
}

func TestApplyBonusPeriods_Cumulative(t *testing.T) {
	date := ts(t, "2023-10-12 20:15:00")
	txs := []Transaction{
		{Date: date, Remanent: 50},
		{Date: ts(t, "2022-01-01 00:00:00"), Remanent: 50},
	}
	periods := []BonusPeriod{
		{Extra: 25, Start: ts(t, "2023-10-01 00:00:00"), End: ts(t, "2023-12-31 00:00:00")},
		{Extra: 5, Start: ts(t, "2023-01-01 00:00:00"), End: ts(t, "2023-12-31 00:00:00")},
		{Extra: 1000, Start: ts(t, "2024-01-01 00:00:00"), End: ts(t, "2024-12-31 00:00:00")},
	}

	out := ApplyBonusPeriods(txs, periods)
	assert.Equal(t, 80.0, out[0].Remanent)
	assert.Equal(t, 50.0, out[1].Remanent)
	assert.Equal(t, 50.0, txs[0].Remanent)
}

func TestRuleOrderMatters(t *testing.T) {
	txs := []Transaction{{Date: ts(t, "2023-07-15 00:00:00"), Remanent: 80}}
	q := []OverridePeriod{{Fixed: 0, Start: ts(t, "2023-07-01 00:00:00"), End: ts(t, "2023-07-31 00:00:00")}}
	p := []BonusPeriod{{Extra: 25, Start: ts(t, "2023-07-01 00:00:00"), End: ts(t, "2023-07-31 00:00:00")}}

	overrideThenBonus := ApplyBonusPeriods(ApplyOverridePeriods(txs, q), p)
	bonusThenOverride := ApplyOverridePeriods(ApplyBonusPeriods(txs, p), q)

	assert.Equal(t, 25.0, overrideThenBonus[0].Remanent)
	assert.Equal(t, 0.0, bonusThenOverride[0].Remanent)
}

func TestAggregateWindows(t *testing.T) {
	txs := []Transaction{
		{Date: ts(t, "2023-02-01 00:00:00"), Remanent: 10},
		{Date: ts(t, "2023-06-01 00:00:00"), Remanent: 20},
	}
	windows := []Window{
		{Start: ts(t, "2023-01-01 00:00:00"), End: ts(t, "2023-12-31 23:59:59")},
		{Start: ts(t, "2023-05-01 00:00:00"), End: ts(t, "2023-06-01 00:00:00")},
		{Start: ts(t, "2024-01-01 00:00:00"), End: ts(t, "2024-12-31 00:00:00")},
	}

	sums := AggregateWindows(txs, windows)
	require.Len(t, sums, 3)
	assert.Equal(t, 30.0, sums[0].Amount)
	assert.Equal(t, 20.0, sums[1].Amount)
	assert.Equal(t, 0.0, sums[2].Amount)
	assert.Equal(t, windows[2].Start, sums[2].Start)
	assert.Equal(t, windows[2].End, sums[2].End)

	assert.Empty(t, AggregateWindows(txs, nil))
}

func TestRunPipeline_EndToEnd(t *testing.T) {
	expenses := []Expense{
		{Date: ts(t, "2023-10-12 20:15:00"), Amount: 250},
		{Date: ts(t, "2023-02-28 15:49:00"), Amount: 375},
		{Date: ts(t, "2023-07-01 21:59:00"), Amount: 620},
		{Date: ts(t, "2023-12-17 08:09:00"), Amount: 480},
	}
	q := []OverridePeriod{{Fixed: 0, Start: ts(t, "2023-07-01 00:00:00"), End: ts(t, "2023-07-31 23:59:00")}}
	p := []BonusPeriod{{Extra: 25, Start: ts(t, "2023-10-01 08:00:00"), End: ts(t, "2023-12-31 19:59:00")}}
	k := []Window{
		{Start: ts(t, "2023-03-01 00:00:00"), End: ts(t, "2023-11-30 23:59:00")},
		{Start: ts(t, "2023-01-01 00:00:00"), End: ts(t, "2023-12-31 23:59:00")},
	}

	txs, sums := RunPipeline(expenses, q, p, k)

	remanents := make([]float64, len(txs))
	for i, tx := range txs {
		remanents[i] = tx.Remanent
	}
	assert.Equal(t, []float64{75, 25, 0, 45}, remanents)

	require.Len(t, sums, 2)
	assert.Equal(t, 75.0, sums[0].Amount)
	assert.Equal(t, 145.0, sums[1].Amount)

	amount, ceiling := Totals(txs)
	assert.Equal(t, 1725.0, amount)
	assert.Equal(t, 1900.0, ceiling)
}

func TestTransactionInput_Derive(t *testing.T) {
	date := ts(t, "2023-01-01 10:00:00")
	ceiling, remanent := 1000.0, 1.0

	t.Run("both supplied are kept", func(t *testing.T) {
		tx := TransactionInput{Date: date, Amount: 250, Ceiling: &ceiling, Remanent: &remanent}.Derive()
		assert.Equal(t, 1000.0, tx.Ceiling)
		assert.Equal(t, 1.0, tx.Remanent)
	})

	t.Run("partial is recomputed", func(t *testing.T) {
		tx := TransactionInput{Date: date, Amount: 250, Ceiling: &ceiling}.Derive()
		assert.Equal(t, 300.0, tx.Ceiling)
		assert.Equal(t, 50.0, tx.Remanent)
	})
}
