package savings

import "math"

// ceilingStep is the multiple every expense is rounded up to.
const ceilingStep = 100

// CeilingAndRemanent rounds amount up to the next multiple of 100 and returns
// the ceiling together with the remanent (ceiling - amount). Exact multiples,
// zero included, have a remanent of 0.
func CeilingAndRemanent(amount float64) (ceiling, remanent float64) {
	ceiling = math.Ceil(amount/ceilingStep) * ceilingStep
	return ceiling, ceiling - amount
}

// NormalizeTransactions derives a Transaction for each expense, in input order,
// with the date normalized to whole seconds.
func NormalizeTransactions(expenses []Expense) []Transaction {
	out := make([]Transaction, 0, len(expenses))
	for _, e := range expenses {
		ceiling, remanent := CeilingAndRemanent(e.Amount)
		out = append(out, Transaction{
			Date:     NormalizeTime(e.Date),
			Amount:   e.Amount,
			Ceiling:  ceiling,
			Remanent: remanent,
		})
	}
	return out
}
