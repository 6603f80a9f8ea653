// Package mortgage computes down payments from loan-to-value policy and
// monthly installments from the standard amortization formula.
package mortgage

import (
	"math"

	"github.com/reddotai/sg-property-analyser/internal/analysis"
	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// DownPayment returns the cash/CPF down payment for a purchase, the financed
// loan amount, and the policy description. The LTV limit is looked up by
// buyer category; an unknown category is a lookup error.
func DownPayment(price float64, category models.BuyerCategory, policy models.LTVPolicy) (down, loan float64, desc string, err error) {
	if price <= 0 {
		return 0, 0, "", analysis.Invalid("price", "must be positive, got %.2f", price)
	}
	limit, ok := policy[category]
	if !ok {
		return 0, 0, "", analysis.NotFound("ltv limit", string(category))
	}
	loan = price * limit.Ratio
	return price - loan, loan, limit.Description, nil
}

// MonthlyInstallment computes the level monthly payment for a principal
// amortized over tenureYears at the given annual rate:
//
//	M = P × r(1+r)^n / ((1+r)^n − 1)
//
// where r is the monthly rate and n the number of payments. A zero rate
// degrades to straight-line principal/n, which is a valid outcome rather
// than an error.
func MonthlyInstallment(principal, annualRate float64, tenureYears int) (float64, error) {
	if principal < 0 {
		return 0, analysis.Invalid("principal", "must not be negative, got %.2f", principal)
	}
	if tenureYears <= 0 {
		return 0, analysis.Invalid("tenure", "must be positive, got %d years", tenureYears)
	}
	if annualRate < 0 {
		return 0, analysis.Invalid("interest rate", "must not be negative, got %.4f", annualRate)
	}

	r := annualRate / 12
	n := float64(tenureYears * 12)
	if r == 0 {
		return principal / n, nil
	}

	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1), nil
}
