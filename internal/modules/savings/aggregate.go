package savings

import "gonum.org/v1/gonum/floats"

// AggregateWindows sums the remanent of every transaction inside each window.
// One row is produced per window in input order; a window with no matching
// transactions yields an amount of 0, and a transaction in overlapping
// windows counts toward each of them.
func AggregateWindows(txs []Transaction, windows []Window) []WindowSum {
	out := make([]WindowSum, 0, len(windows))
	for _, w := range windows {
		var remanents []float64
		for _, tx := range txs {
			if w.Contains(tx.Date) {
				remanents = append(remanents, tx.Remanent)
			}
		}
		out = append(out, WindowSum{
			Start:  w.Start,
			End:    w.End,
			Amount: floats.Sum(remanents),
		})
	}
	return out
}

// RunPipeline normalizes expenses, then applies overrides, then bonuses, and
// finally aggregates the adjusted remanents per window.
func RunPipeline(expenses []Expense, overrides []OverridePeriod, bonuses []BonusPeriod, windows []Window) ([]Transaction, []WindowSum) {
	txs := NormalizeTransactions(expenses)
	txs = ApplyOverridePeriods(txs, overrides)
	txs = ApplyBonusPeriods(txs, bonuses)
	return txs, AggregateWindows(txs, windows)
}

// InAnyWindow reports whether tx falls inside at least one window.
func InAnyWindow(tx Transaction, windows []Window) bool {
	for _, w := range windows {
		if w.Contains(tx.Date) {
			return true
		}
	}
	return false
}

// Totals returns the summed amount and summed ceiling of txs.
func Totals(txs []Transaction) (amount, ceiling float64) {
	amounts := make([]float64, len(txs))
	ceilings := make([]float64, len(txs))
	for i, tx := range txs {
		amounts[i] = tx.Amount
		ceilings[i] = tx.Ceiling
	}
	return floats.Sum(amounts), floats.Sum(ceilings)
}
