// Package formulas holds the pure financial formulas behind the return projections.
package formulas

import "math"

// YearsToHorizon returns the number of years an investment compounds before
// retirement.
//
// Formula: retirementAge - age while age is below retirementAge, otherwise
// floorYears. Ages at or past retirement always compound for floorYears.
func YearsToHorizon(age, retirementAge, floorYears int) int {
	if age < retirementAge {
		return retirementAge - age
	}
	return floorYears
}

// CompoundGrowth calculates the nominal value of principal compounded annually.
//
// Formula: principal * (1 + rate)^years
//
// A non-positive horizon returns the principal unchanged.
func CompoundGrowth(principal, rate float64, years int) float64 {
	if years <= 0 {
		return principal
	}
	return principal * math.Pow(1+rate, float64(years))
}

// InflationAdjust discounts a future amount back to today's money.
//
// Formula: amount / (1 + inflation)^years
func InflationAdjust(amount, inflation float64, years int) float64 {
	if years <= 0 {
		return amount
	}
	return amount / math.Pow(1+inflation, float64(years))
}

// Round2 rounds a value to two decimal places, half away from zero.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
