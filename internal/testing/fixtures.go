package testing

import (
	"time"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/savings"
)

func mustTime(value string) time.Time {
	t, err := savings.ParseTimestamp(value)
	if err != nil {
		panic(err)
	}
	return t
}

// NewExpenseFixtures returns the four reference expenses.
// Through NewRuleFixtures they yield remanents 75, 25, 0 and 45.
func NewExpenseFixtures() []savings.Expense {
	return []savings.Expense{
		{Date: mustTime("2023-10-12 20:15:00"), Amount: 250},
		{Date: mustTime("2023-02-28 15:49:00"), Amount: 375},
		{Date: mustTime("2023-07-01 21:59:00"), Amount: 620},
		{Date: mustTime("2023-12-17 08:09:00"), Amount: 480},
	}
}

// NewRuleFixtures returns one override period, one bonus period and two
// windows. The windows sum to 75 and 145 over NewExpenseFixtures.
func NewRuleFixtures() savings.RuleSet {
	return savings.RuleSet{
		Overrides: []savings.OverridePeriod{
			{Fixed: 0, Start: mustTime("2023-07-01 00:00:00"), End: mustTime("2023-07-31 23:59:00")},
		},
		Bonuses: []savings.BonusPeriod{
			{Extra: 25, Start: mustTime("2023-10-01 08:00:00"), End: mustTime("2023-12-31 19:59:00")},
		},
		Windows: []savings.Window{
			{Start: mustTime("2023-03-01 00:00:00"), End: mustTime("2023-11-30 23:59:00")},
			{Start: mustTime("2023-01-01 00:00:00"), End: mustTime("2023-12-31 23:59:00")},
		},
	}
}

// ReferenceRulesJSON is the q/p/k block matching NewRuleFixtures, for
// request bodies.
const ReferenceRulesJSON = `
	"q": [{"fixed": 0, "start": "2023-07-01 00:00:00", "end": "2023-07-31 23:59:00"}],
	"p": [{"extra": 25, "start": "2023-10-01 08:00:00", "end": "2023-12-31 19:59:00"}],
	"k": [
		{"start": "2023-03-01 00:00:00", "end": "2023-11-30 23:59:00"},
		{"start": "2023-01-01 00:00:00", "end": "2023-12-31 23:59:00"}
	]`

// ReferenceTransactionsJSON is the transactions array matching
// NewExpenseFixtures, for request bodies.
const ReferenceTransactionsJSON = `[
		{"date": "2023-10-12 20:15:00", "amount": 250},
		{"date": "2023-02-28 15:49:00", "amount": 375},
		{"date": "2023-07-01 21:59:00", "amount": 620},
		{"date": "2023-12-17 08:09:00", "amount": 480}
	]`
