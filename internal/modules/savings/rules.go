package savings

import (
	"sort"
	"time"
)

// ApplyOverridePeriods replaces the remanent of every transaction that falls
// in at least one override period. When several periods match, the one with
// the latest start wins and ties go to the period listed first. Transactions
// outside every period are copied unchanged.
func ApplyOverridePeriods(txs []Transaction, periods []OverridePeriod) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	if len(periods) == 0 {
		return out
	}

	for i := range out {
		if p, ok := selectOverride(out[i].Date, periods); ok {
			out[i].Remanent = p.Fixed
		}
	}
	return out
}

func selectOverride(date time.Time, periods []OverridePeriod) (OverridePeriod, bool) {
	var matching []OverridePeriod
	for _, p := range periods {
		if inRange(date, p.Start, p.End) {
			matching = append(matching, p)
		}
	}
	if len(matching) == 0 {
		return OverridePeriod{}, false
	}

	// Stable keeps list order among equal starts.
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Start.After(matching[j].Start)
	})
	return matching[0], true
}

// ApplyBonusPeriods adds the extra of every matching bonus period to the
// transaction's current remanent. Bonuses are cumulative.
func ApplyBonusPeriods(txs []Transaction, periods []BonusPeriod) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	if len(periods) == 0 {
		return out
	}

	for i := range out {
		extra := 0.0
		for _, p := range periods {
			if inRange(out[i].Date, p.Start, p.End) {
				extra += p.Extra
			}
		}
		out[i].Remanent += extra
	}
	return out
}
