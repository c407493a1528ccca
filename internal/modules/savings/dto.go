package savings

import (
	"bytes"
	"encoding/json"
	"time"
)

// MaxAmount is the exclusive upper bound for expense amounts and period values.
const MaxAmount = 500_000

// ExpenseDTO is an expense on the wire. "date" is accepted as an alias of
// "timestamp".
type ExpenseDTO struct {
	Timestamp *Timestamp `json:"timestamp,omitempty"`
	Date      *Timestamp `json:"date,omitempty"`
	Amount    *float64   `json:"amount"`
}

func (d ExpenseDTO) toExpense(i int) (Expense, error) {
	ts := d.Timestamp
	if ts == nil {
		ts = d.Date
	}
	if ts == nil {
		return Expense{}, invalid(indexed("expenses", i, "timestamp"), "field required")
	}
	if d.Amount == nil {
		return Expense{}, invalid(indexed("expenses", i, "amount"), "field required")
	}
	if err := checkBounded(indexed("expenses", i, "amount"), *d.Amount); err != nil {
		return Expense{}, err
	}
	return Expense{Date: ts.Time(), Amount: *d.Amount}, nil
}

// ParseRequest accepts either {"expenses": [...]} or a bare array of expenses.
type ParseRequest struct {
	Expenses []ExpenseDTO `json:"expenses"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ParseRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &r.Expenses)
	}
	type plain ParseRequest
	return json.Unmarshal(trimmed, (*plain)(r))
}

// ToExpenses validates the request and returns its expenses.
func (r ParseRequest) ToExpenses() ([]Expense, error) {
	if r.Expenses == nil {
		return nil, invalid("expenses", "field required")
	}
	out := make([]Expense, 0, len(r.Expenses))
	for i, d := range r.Expenses {
		e, err := d.toExpense(i)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// TransactionDTO is a fully derived transaction on the wire.
type TransactionDTO struct {
	Date     Timestamp `json:"date"`
	Amount   float64   `json:"amount"`
	Ceiling  float64   `json:"ceiling"`
	Remanent float64   `json:"remanent"`
}

// NewTransactionDTO converts a Transaction for the wire.
func NewTransactionDTO(tx Transaction) TransactionDTO {
	return TransactionDTO{
		Date:     Timestamp(tx.Date),
		Amount:   tx.Amount,
		Ceiling:  tx.Ceiling,
		Remanent: tx.Remanent,
	}
}

// NewTransactionDTOs converts a slice of transactions for the wire.
func NewTransactionDTOs(txs []Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionDTO(tx))
	}
	return out
}

// TransactionInputDTO is a transaction as submitted by a client. "timestamp"
// is accepted as an alias of "date"; ceiling and remanent are optional.
type TransactionInputDTO struct {
	Date      *Timestamp `json:"date,omitempty"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
	Amount    *float64   `json:"amount"`
	Ceiling   *float64   `json:"ceiling,omitempty"`
	Remanent  *float64   `json:"remanent,omitempty"`
}

// ToInput checks required fields. Field paths in errors use position i.
func (d TransactionInputDTO) ToInput(i int) (TransactionInput, error) {
	ts := d.Date
	if ts == nil {
		ts = d.Timestamp
	}
	if ts == nil {
		return TransactionInput{}, invalid(indexed("transactions", i, "date"), "field required")
	}
	if d.Amount == nil {
		return TransactionInput{}, invalid(indexed("transactions", i, "amount"), "field required")
	}
	return TransactionInput{
		Date:     ts.Time(),
		Amount:   *d.Amount,
		Ceiling:  d.Ceiling,
		Remanent: d.Remanent,
	}, nil
}

// ToInputs converts and checks every transaction of a request body.
func ToInputs(dtos []TransactionInputDTO) ([]TransactionInput, error) {
	if dtos == nil {
		return nil, invalid("transactions", "field required")
	}
	out := make([]TransactionInput, 0, len(dtos))
	for i, d := range dtos {
		in, err := d.ToInput(i)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// ToExpenseInputs converts transactions that feed the pipeline directly, so
// every amount must lie in [0, MaxAmount). Supplied ceiling and remanent are
// dropped.
func ToExpenseInputs(dtos []TransactionInputDTO) ([]Expense, error) {
	inputs, err := ToInputs(dtos)
	if err != nil {
		return nil, err
	}
	out := make([]Expense, 0, len(inputs))
	for i, in := range inputs {
		if err := checkBounded(indexed("transactions", i, "amount"), in.Amount); err != nil {
			return nil, err
		}
		out = append(out, Expense{Date: in.Date, Amount: in.Amount})
	}
	return out, nil
}

// OverridePeriodDTO is a "q" period on the wire.
type OverridePeriodDTO struct {
	Fixed *float64   `json:"fixed"`
	Start *Timestamp `json:"start"`
	End   *Timestamp `json:"end"`
}

// BonusPeriodDTO is a "p" period on the wire.
type BonusPeriodDTO struct {
	Extra *float64   `json:"extra"`
	Start *Timestamp `json:"start"`
	End   *Timestamp `json:"end"`
}

// WindowDTO is a "k" period on the wire.
type WindowDTO struct {
	Start *Timestamp `json:"start"`
	End   *Timestamp `json:"end"`
}

// WindowSumDTO is one aggregated window on the wire.
type WindowSumDTO struct {
	Start  Timestamp `json:"start"`
	End    Timestamp `json:"end"`
	Amount float64   `json:"amount"`
}

// NewWindowSumDTOs converts window sums for the wire.
func NewWindowSumDTOs(sums []WindowSum) []WindowSumDTO {
	out := make([]WindowSumDTO, 0, len(sums))
	for _, s := range sums {
		out = append(out, WindowSumDTO{Start: Timestamp(s.Start), End: Timestamp(s.End), Amount: s.Amount})
	}
	return out
}

// Periods carries the q, p and k rule lists shared by filter and returns
// requests. "a" is accepted as an alias of "q".
type Periods struct {
	Q []OverridePeriodDTO `json:"q,omitempty"`
	A []OverridePeriodDTO `json:"a,omitempty"`
	P []BonusPeriodDTO    `json:"p,omitempty"`
	K []WindowDTO         `json:"k,omitempty"`
}

// RuleSet is the validated form of Periods.
type RuleSet struct {
	Overrides []OverridePeriod
	Bonuses   []BonusPeriod
	Windows   []Window
}

// Rules validates every period and returns the rule set.
func (p Periods) Rules() (RuleSet, error) {
	q := p.Q
	if q == nil {
		q = p.A
	}

	var rules RuleSet
	for i, d := range q {
		start, end, err := bounds("q", i, d.Start, d.End)
		if err != nil {
			return RuleSet{}, err
		}
		if d.Fixed == nil {
			return RuleSet{}, invalid(indexed("q", i, "fixed"), "field required")
		}
		if err := checkBounded(indexed("q", i, "fixed"), *d.Fixed); err != nil {
			return RuleSet{}, err
		}
		rules.Overrides = append(rules.Overrides, OverridePeriod{Fixed: *d.Fixed, Start: start, End: end})
	}
	for i, d := range p.P {
		start, end, err := bounds("p", i, d.Start, d.End)
		if err != nil {
			return RuleSet{}, err
		}
		if d.Extra == nil {
			return RuleSet{}, invalid(indexed("p", i, "extra"), "field required")
		}
		if err := checkBounded(indexed("p", i, "extra"), *d.Extra); err != nil {
			return RuleSet{}, err
		}
		rules.Bonuses = append(rules.Bonuses, BonusPeriod{Extra: *d.Extra, Start: start, End: end})
	}
	for i, d := range p.K {
		start, end, err := bounds("k", i, d.Start, d.End)
		if err != nil {
			return RuleSet{}, err
		}
		rules.Windows = append(rules.Windows, Window{Start: start, End: end})
	}
	return rules, nil
}

func bounds(field string, i int, start, end *Timestamp) (time.Time, time.Time, error) {
	if start == nil {
		return time.Time{}, time.Time{}, invalid(indexed(field, i, "start"), "field required")
	}
	if end == nil {
		return time.Time{}, time.Time{}, invalid(indexed(field, i, "end"), "field required")
	}
	return start.Time(), end.Time(), nil
}

func checkBounded(field string, v float64) error {
	if v < 0 {
		return invalid(field, "must be greater than or equal to 0")
	}
	if v >= MaxAmount {
		return invalid(field, "must be less than %d", MaxAmount)
	}
	return nil
}
