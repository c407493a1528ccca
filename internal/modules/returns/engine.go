package returns

import (
	"fmt"
	"strings"

	"github.com/ketulrudani/Self-saving-for-your-retirement/pkg/formulas"
)

// Product is an investment vehicle a window can be projected into.
type Product string

const (
	// ProductNPS is the tax-advantaged pension product.
	ProductNPS Product = "nps"
	// ProductIndex is the index fund.
	ProductIndex Product = "index"
)

// ParseProduct maps a product name to a Product.
func ParseProduct(name string) (Product, error) {
	switch Product(strings.ToLower(strings.TrimSpace(name))) {
	case ProductNPS:
		return ProductNPS, nil
	case ProductIndex:
		return ProductIndex, nil
	}
	return "", fmt.Errorf("unknown product %q: expected nps or index", name)
}

// Projection is the projected outcome of one principal.
type Projection struct {
	// Value is the inflation-adjusted profit for NPS and the
	// inflation-adjusted value for the index fund.
	Value float64
	// TaxBenefit is only set for NPS.
	TaxBenefit *float64
	// FutureValue is the nominal value at the horizon.
	FutureValue float64
	Years       int
}

// Engine projects savings using a fixed rate table.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine. The config is copied.
func NewEngine(cfg Config) *Engine {
	cfg.Slabs = append([]formulas.TaxSlab(nil), cfg.Slabs...)
	return &Engine{cfg: cfg}
}

// Config returns a copy of the engine's rate table.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.Slabs = append([]formulas.TaxSlab(nil), e.cfg.Slabs...)
	return cfg
}

// Rate returns the annual growth rate of product.
func (e *Engine) Rate(product Product) float64 {
	if product == ProductNPS {
		return e.cfg.NPSRate
	}
	return e.cfg.IndexRate
}

// YearsToHorizon returns the compounding horizon for a saver of age.
func (e *Engine) YearsToHorizon(age int) int {
	return formulas.YearsToHorizon(age, e.cfg.RetirementAge, e.cfg.FloorYears)
}

// TaxOnIncome applies the engine's slabs to annualIncome.
func (e *Engine) TaxOnIncome(annualIncome float64) float64 {
	return formulas.TaxOnIncome(annualIncome, e.cfg.Slabs)
}

// Deduction returns the deductible part of invested for annualIncome.
func (e *Engine) Deduction(invested, annualIncome float64) float64 {
	return formulas.Deduction(invested, annualIncome, e.cfg.DeductionIncomeShare, e.cfg.DeductionCap)
}

// TaxBenefit returns the tax saved by claiming deduction.
func (e *Engine) TaxBenefit(annualIncome, deduction float64) float64 {
	return formulas.TaxBenefit(annualIncome, deduction, e.cfg.Slabs)
}

// ProjectReturn compounds principal to the horizon and discounts it for
// inflation. For NPS the value is the real profit over principal and the tax
// benefit of deducting principal from annualIncome is included; for the index
// fund the value is the real amount and annualIncome is ignored.
func (e *Engine) ProjectReturn(principal float64, age int, inflation float64, product Product, annualIncome float64) Projection {
	years := e.YearsToHorizon(age)
	future := formulas.CompoundGrowth(principal, e.Rate(product), years)
	realValue := formulas.InflationAdjust(future, inflation, years)

	p := Projection{FutureValue: future, Years: years}
	if product == ProductNPS {
		benefit := e.TaxBenefit(annualIncome, e.Deduction(principal, annualIncome))
		p.Value = realValue - principal
		p.TaxBenefit = &benefit
		return p
	}
	p.Value = realValue
	return p
}
