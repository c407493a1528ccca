// Package savings implements the auto-savings rule engine: rounding expenses
// up to a ceiling, applying override and bonus periods to the remanent, and
// summing remanents over reporting windows.
package savings

import "time"

// Expense is a raw (timestamp, amount) pair as submitted by a client.
type Expense struct {
	Date   time.Time
	Amount float64
}

// Transaction is an expense with its ceiling and remanent derived.
// Before any rule is applied, Ceiling - Remanent == Amount.
type Transaction struct {
	Date     time.Time
	Amount   float64
	Ceiling  float64
	Remanent float64
}

// TransactionInput is a transaction as received at the boundary, where the
// ceiling and remanent may or may not have been supplied.
type TransactionInput struct {
	Date     time.Time
	Amount   float64
	Ceiling  *float64
	Remanent *float64
}

// Derive returns a fully populated Transaction. Supplied ceiling and remanent
// are kept only when both are present; otherwise both are recomputed from the
// amount.
func (in TransactionInput) Derive() Transaction {
	tx := Transaction{
		Date:   NormalizeTime(in.Date),
		Amount: in.Amount,
	}
	if in.Ceiling != nil && in.Remanent != nil {
		tx.Ceiling = *in.Ceiling
		tx.Remanent = *in.Remanent
		return tx
	}
	tx.Ceiling, tx.Remanent = CeilingAndRemanent(in.Amount)
	return tx
}

// OverridePeriod ("q") replaces the remanent of matching transactions with Fixed.
type OverridePeriod struct {
	Fixed float64
	Start time.Time
	End   time.Time
}

// BonusPeriod ("p") adds Extra to the remanent of matching transactions.
type BonusPeriod struct {
	Extra float64
	Start time.Time
	End   time.Time
}

// Window ("k") is a reporting interval over which remanents are summed.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls in the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	return inRange(t, w.Start, w.End)
}

// WindowSum is the summed remanent of one window.
type WindowSum struct {
	Start  time.Time
	End    time.Time
	Amount float64
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
