// Package investment computes rental-yield, cashflow, and debt-servicing
// metrics for a property purchase.
package investment

import (
	"math"

	"github.com/reddotai/sg-property-analyser/internal/analysis"
)

// RentalYield returns the gross annual rental yield as a percentage of the
// purchase price. Yield is undefined for a non-positive price.
func RentalYield(monthlyRent, price float64) (float64, error) {
	if price <= 0 {
		return 0, analysis.Invalid("price", "must be positive, got %.2f", price)
	}
	if monthlyRent < 0 {
		return 0, analysis.Invalid("rent", "must not be negative, got %.2f", monthlyRent)
	}
	return monthlyRent * 12 / price * 100, nil
}

// Cashflow returns monthly rent minus total monthly cost. A negative value
// means the owner tops up the difference each month; it is a common and
// important result, not a failure.
func Cashflow(monthlyRent, totalMonthlyCost float64) float64 {
	return monthlyRent - totalMonthlyCost
}

// TDSR returns the Total Debt Servicing Ratio as a percentage of monthly
// income. When income is non-positive the ratio is infeasible and +Inf is
// returned as a defined sentinel; CanQualify treats it as a fail.
func TDSR(monthlyMortgage, otherDebts, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		return math.Inf(1)
	}
	return (monthlyMortgage + otherDebts) / monthlyIncome * 100
}

// CanQualify reports whether a TDSR passes the regulatory limit. The ratio
// is rounded to two decimals before comparing so that a computed value of
// exactly the limit qualifies despite floating-point noise.
func CanQualify(tdsr, limitPct float64) bool {
	if math.IsInf(tdsr, 1) {
		return false
	}
	return math.Round(tdsr*100)/100 <= limitPct
}
