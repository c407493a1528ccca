package formulas

import "math"

// TaxSlab is one band of a progressive tax table. The band covers income
// above Lower up to Upper. An Upper of zero marks the open-ended top band.
type TaxSlab struct {
	Lower float64 `json:"lower" toml:"lower"`
	Upper float64 `json:"upper" toml:"upper"`
	Rate  float64 `json:"rate" toml:"rate"`
}

// DefaultTaxSlabs returns the simplified annual income slabs:
//
//	0 - 7L      0%
//	7L - 10L   10%
//	10L - 12L  15%
//	12L - 15L  20%
//	above 15L  30%
func DefaultTaxSlabs() []TaxSlab {
	return []TaxSlab{
		{Lower: 0, Upper: 700_000, Rate: 0},
		{Lower: 700_000, Upper: 1_000_000, Rate: 0.10},
		{Lower: 1_000_000, Upper: 1_200_000, Rate: 0.15},
		{Lower: 1_200_000, Upper: 1_500_000, Rate: 0.20},
		{Lower: 1_500_000, Rate: 0.30},
	}
}

// TaxOnIncome calculates progressive tax on annual income.
// Each slab taxes only the portion of income that falls inside it.
// Slabs are expected in ascending order.
func TaxOnIncome(income float64, slabs []TaxSlab) float64 {
	if income <= 0 {
		return 0
	}

	tax := 0.0
	for _, slab := range slabs {
		if income <= slab.Lower {
			break
		}
		upper := income
		if slab.Upper > 0 && slab.Upper < income {
			upper = slab.Upper
		}
		taxable := upper - slab.Lower
		tax += taxable * slab.Rate
	}
	return tax
}

// Deduction returns the deductible part of an investment:
// min(invested, incomeShare * annualIncome, absoluteCap).
func Deduction(invested, annualIncome, incomeShare, absoluteCap float64) float64 {
	return math.Min(invested, math.Min(incomeShare*annualIncome, absoluteCap))
}

// TaxBenefit is the tax saved by claiming deduction against annualIncome.
//
// Formula: tax(income) - tax(income - deduction)
func TaxBenefit(annualIncome, deduction float64, slabs []TaxSlab) float64 {
	return TaxOnIncome(annualIncome, slabs) - TaxOnIncome(annualIncome-deduction, slabs)
}
