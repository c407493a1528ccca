package returns

import (
	"fmt"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/savings"
	"github.com/ketulrudani/Self-saving-for-your-retirement/pkg/formulas"
)

const maxAge = 120

// Request is the body of a returns call.
type Request struct {
	Age       *int     `json:"age"`
	Wage      *float64 `json:"wage"` // monthly
	Inflation *float64 `json:"inflation"`
	savings.Periods
	Transactions []savings.TransactionInputDTO `json:"transactions"`
}

// WindowReturnDTO is the projection of one window on the wire. NPS rows carry
// profits and taxBenefit, index rows carry return.
type WindowReturnDTO struct {
	Start      savings.Timestamp `json:"start"`
	End        savings.Timestamp `json:"end"`
	Amount     float64           `json:"amount"`
	Profits    *float64          `json:"profits,omitempty"`
	TaxBenefit *float64          `json:"taxBenefit,omitempty"`
	Return     *float64          `json:"return,omitempty"`
}

// Response is the result of a returns call.
type Response struct {
	TransactionsTotalAmount float64           `json:"transactionsTotalAmount"`
	TotalCeiling            float64           `json:"totalCeiling"`
	SavingsByDates          []WindowReturnDTO `json:"savingsByDates"`
}

// Result carries the response together with the values behind it.
type Result struct {
	Response     Response
	Transactions []savings.Transaction
	Windows      []savings.WindowSum
	Projections  []Projection
}

type params struct {
	age          int
	inflation    float64
	annualIncome float64
}

func (r Request) params() (params, error) {
	if r.Age == nil {
		return params{}, &savings.ValidationError{Field: "age", Message: "field required"}
	}
	if *r.Age < 0 || *r.Age >= maxAge {
		return params{}, &savings.ValidationError{Field: "age", Message: fmt.Sprintf("must be between 0 and %d", maxAge-1)}
	}
	if r.Wage == nil {
		return params{}, &savings.ValidationError{Field: "wage", Message: "field required"}
	}
	if *r.Wage < 0 {
		return params{}, &savings.ValidationError{Field: "wage", Message: "must be greater than or equal to 0"}
	}
	if r.Inflation == nil {
		return params{}, &savings.ValidationError{Field: "inflation", Message: "field required"}
	}
	if *r.Inflation < 0 || *r.Inflation > 100 {
		return params{}, &savings.ValidationError{Field: "inflation", Message: "must be between 0 and 100"}
	}

	inflation := *r.Inflation
	// Values above 1 are percentages.
	if inflation > 1 {
		inflation /= 100
	}
	return params{
		age:          *r.Age,
		inflation:    inflation,
		annualIncome: *r.Wage * 12,
	}, nil
}

// Calculate runs the rule pipeline over the request's transactions and
// projects every window into product. Supplied ceilings and remanents are
// ignored; they are always derived from the amount.
func (e *Engine) Calculate(req Request, product Product) (Result, error) {
	p, err := req.params()
	if err != nil {
		return Result{}, err
	}
	rules, err := req.Rules()
	if err != nil {
		return Result{}, err
	}
	expenses, err := savings.ToExpenseInputs(req.Transactions)
	if err != nil {
		return Result{}, err
	}

	txs, sums := savings.RunPipeline(expenses, rules.Overrides, rules.Bonuses, rules.Windows)
	totalAmount, totalCeiling := savings.Totals(txs)

	income := p.annualIncome
	if product == ProductIndex {
		income = 0
	}

	rows := make([]WindowReturnDTO, 0, len(sums))
	projections := make([]Projection, 0, len(sums))
	for _, sum := range sums {
		proj := e.ProjectReturn(sum.Amount, p.age, p.inflation, product, income)
		projections = append(projections, proj)

		row := WindowReturnDTO{
			Start:  savings.Timestamp(sum.Start),
			End:    savings.Timestamp(sum.End),
			Amount: sum.Amount,
		}
		value := formulas.Round2(proj.Value)
		if product == ProductNPS {
			benefit := 0.0
			if proj.TaxBenefit != nil {
				benefit = formulas.Round2(*proj.TaxBenefit)
			}
			row.Profits = &value
			row.TaxBenefit = &benefit
		} else {
			row.Return = &value
		}
		rows = append(rows, row)
	}

	return Result{
		Response: Response{
			TransactionsTotalAmount: totalAmount,
			TotalCeiling:            totalCeiling,
			SavingsByDates:          rows,
		},
		Transactions: txs,
		Windows:      sums,
		Projections:  projections,
	}, nil
}
