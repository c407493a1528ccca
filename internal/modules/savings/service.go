package savings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Classification messages returned by Validate.
const (
	MsgDuplicate        = "duplicate transaction (same date and amount)"
	MsgNegativeRemanent = "remanent cannot be negative"
	MsgNonPositive      = "amount must be positive"
	MsgInconsistent     = "amount must be equal to the ceiling minus the remanent"
)

// Classification messages returned by Filter.
const (
	MsgFilterNegative  = "Negative amounts are not allowed"
	MsgFilterDuplicate = "Duplicate transaction"
)

// consistencyTolerance absorbs float error in ceiling - remanent.
const consistencyTolerance = 1e-6

type txKey struct {
	date   time.Time
	amount float64
}

// Parse turns the expenses of a parse request into derived transactions.
func Parse(req ParseRequest) ([]TransactionDTO, error) {
	expenses, err := req.ToExpenses()
	if err != nil {
		return nil, err
	}
	return NewTransactionDTOs(NormalizeTransactions(expenses)), nil
}

// ValidatorRequest is the body of a validator call.
type ValidatorRequest struct {
	Wage         *float64              `json:"wage"`
	Transactions []TransactionInputDTO `json:"transactions"`
	MaxInvest    *float64              `json:"maxInvest,omitempty"`
}

// InvalidTransactionDTO is a rejected transaction together with the reason.
type InvalidTransactionDTO struct {
	TransactionDTO
	Message string `json:"message"`
}

// ValidatorResponse splits transactions into valid and invalid.
type ValidatorResponse struct {
	Valid   []TransactionDTO        `json:"valid"`
	Invalid []InvalidTransactionDTO `json:"invalid"`
}

// Validate classifies every transaction. The first failing check decides the
// message: duplicate, negative remanent, remanent above maxInvest, non-positive
// amount, then ceiling/remanent inconsistency.
func Validate(req ValidatorRequest) (ValidatorResponse, error) {
	if req.Wage == nil {
		return ValidatorResponse{}, invalid("wage", "field required")
	}
	if *req.Wage < 0 {
		return ValidatorResponse{}, invalid("wage", "must be greater than or equal to 0")
	}
	if req.MaxInvest != nil {
		if err := checkBounded("maxInvest", *req.MaxInvest); err != nil {
			return ValidatorResponse{}, err
		}
	}
	inputs, err := ToInputs(req.Transactions)
	if err != nil {
		return ValidatorResponse{}, err
	}

	resp := ValidatorResponse{
		Valid:   []TransactionDTO{},
		Invalid: []InvalidTransactionDTO{},
	}
	seen := make(map[txKey]struct{}, len(inputs))
	for _, in := range inputs {
		tx := in.Derive()
		dto := NewTransactionDTO(tx)

		key := txKey{date: tx.Date, amount: tx.Amount}
		if _, dup := seen[key]; dup {
			resp.Invalid = append(resp.Invalid, InvalidTransactionDTO{TransactionDTO: dto, Message: MsgDuplicate})
			continue
		}
		seen[key] = struct{}{}

		if msg := classify(tx, req.MaxInvest); msg != "" {
			resp.Invalid = append(resp.Invalid, InvalidTransactionDTO{TransactionDTO: dto, Message: msg})
			continue
		}
		resp.Valid = append(resp.Valid, dto)
	}
	return resp, nil
}

func classify(tx Transaction, maxInvest *float64) string {
	switch {
	case tx.Remanent < 0:
		return MsgNegativeRemanent
	case maxInvest != nil && tx.Remanent > *maxInvest:
		return fmt.Sprintf("remanent %s exceeds maximum invest %s", formatAmount(tx.Remanent), formatAmount(*maxInvest))
	case tx.Amount <= 0:
		return MsgNonPositive
	case math.Abs(tx.Amount-(tx.Ceiling-tx.Remanent)) > consistencyTolerance:
		return MsgInconsistent
	}
	return ""
}

// formatAmount renders v in its shortest form, keeping ".0" on whole numbers.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FilterRequest is the body of a filter call.
type FilterRequest struct {
	Periods
	Transactions []TransactionInputDTO `json:"transactions"`
}

// FilteredTransactionDTO is a valid transaction after rules were applied.
type FilteredTransactionDTO struct {
	TransactionDTO
	InKPeriod bool `json:"inKPeriod"`
}

// RejectedTransactionDTO is a transaction the filter refused.
type RejectedTransactionDTO struct {
	Date    Timestamp `json:"date"`
	Amount  float64   `json:"amount"`
	Message string    `json:"message"`
}

// FilterResponse is the result of a filter call.
type FilterResponse struct {
	Valid          []FilteredTransactionDTO `json:"valid"`
	Invalid        []RejectedTransactionDTO `json:"invalid"`
	SavingsByDates []WindowSumDTO           `json:"savingsByDates"`
}

// FilterResult carries the domain values behind a FilterResponse.
type FilterResult struct {
	Transactions []Transaction
	Sums         []WindowSum
	Response     FilterResponse
}

// Filter drops negative and duplicate transactions, then applies the
// override, bonus and window rules to the rest. Supplied ceilings and
// remanents are kept.
func Filter(req FilterRequest) (FilterResult, error) {
	rules, err := req.Rules()
	if err != nil {
		return FilterResult{}, err
	}
	inputs, err := ToInputs(req.Transactions)
	if err != nil {
		return FilterResult{}, err
	}

	rejected := []RejectedTransactionDTO{}
	accepted := make([]Transaction, 0, len(inputs))
	seen := make(map[txKey]struct{}, len(inputs))
	for _, in := range inputs {
		tx := in.Derive()
		if tx.Amount < 0 {
			rejected = append(rejected, RejectedTransactionDTO{Date: Timestamp(tx.Date), Amount: tx.Amount, Message: MsgFilterNegative})
			continue
		}
		key := txKey{date: tx.Date, amount: tx.Amount}
		if _, dup := seen[key]; dup {
			rejected = append(rejected, RejectedTransactionDTO{Date: Timestamp(tx.Date), Amount: tx.Amount, Message: MsgFilterDuplicate})
			continue
		}
		seen[key] = struct{}{}
		accepted = append(accepted, tx)
	}

	txs := ApplyOverridePeriods(accepted, rules.Overrides)
	txs = ApplyBonusPeriods(txs, rules.Bonuses)
	sums := AggregateWindows(txs, rules.Windows)

	valid := make([]FilteredTransactionDTO, 0, len(txs))
	for _, tx := range txs {
		valid = append(valid, FilteredTransactionDTO{
			TransactionDTO: NewTransactionDTO(tx),
			InKPeriod:      InAnyWindow(tx, rules.Windows),
		})
	}

	return FilterResult{
		Transactions: txs,
		Sums:         sums,
		Response: FilterResponse{
			Valid:          valid,
			Invalid:        rejected,
			SavingsByDates: NewWindowSumDTOs(sums),
		},
	}, nil
}
