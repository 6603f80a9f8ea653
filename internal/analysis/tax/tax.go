// Package tax computes Singapore Buyer's Stamp Duty and Additional Buyer's
// Stamp Duty. The tier schedule and category rates are passed in as data so
// that regulatory revisions never touch calculation logic.
package tax

import (
	"math"

	"github.com/reddotai/sg-property-analyser/internal/analysis"
	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// ValidateSchedule checks that a BSD schedule is sorted, contiguous from 0,
// non-overlapping, and ends in an unbounded tier.
func ValidateSchedule(schedule models.TaxSchedule) error {
	if len(schedule) == 0 {
		return analysis.Invalid("tier schedule", "schedule is empty")
	}
	if schedule[0].Lower != 0 {
		return analysis.Invalid("tier schedule", "first tier must start at 0, starts at %.0f", schedule[0].Lower)
	}
	for i, tier := range schedule {
		if tier.Rate < 0 {
			return analysis.Invalid("tier schedule", "tier %d has negative rate %.4f", i, tier.Rate)
		}
		if tier.Upper <= tier.Lower {
			return analysis.Invalid("tier schedule", "tier %d upper bound %.0f not above lower bound %.0f", i, tier.Upper, tier.Lower)
		}
		if i > 0 && tier.Lower != schedule[i-1].Upper {
			return analysis.Invalid("tier schedule", "tier %d starts at %.0f, previous tier ends at %.0f", i, tier.Lower, schedule[i-1].Upper)
		}
	}
	if !schedule[len(schedule)-1].Unbounded() {
		return analysis.Invalid("tier schedule", "last tier must be unbounded")
	}
	return nil
}

// ComputeBSD calculates the progressive Buyer's Stamp Duty for a price,
// returning the total and a per-tier breakdown. The total is rounded to the
// nearest dollar only after summing all tiers, so per-tier rounding error
// never compounds.
func ComputeBSD(price float64, schedule models.TaxSchedule) (float64, []models.TierAmount, error) {
	if price < 0 {
		return 0, nil, analysis.Invalid("price", "must not be negative, got %.2f", price)
	}
	if err := ValidateSchedule(schedule); err != nil {
		return 0, nil, err
	}

	var total float64
	var breakdown []models.TierAmount
	for _, tier := range schedule {
		taxable := math.Min(price, tier.Upper) - tier.Lower
		if taxable <= 0 {
			continue
		}
		amount := taxable * tier.Rate
		total += amount
		if amount > 0 {
			breakdown = append(breakdown, models.TierAmount{
				Description: tier.Description,
				Amount:      amount,
			})
		}
	}
	return math.Round(total), breakdown, nil
}

// ComputeABSD calculates the flat-rate Additional Buyer's Stamp Duty for a
// price and buyer category. A category missing from the schedule is a lookup
// error, never a silent zero.
func ComputeABSD(price float64, category models.BuyerCategory, schedule models.ABSDSchedule) (float64, string, error) {
	if price < 0 {
		return 0, "", analysis.Invalid("price", "must not be negative, got %.2f", price)
	}
	rate, ok := schedule[category]
	if !ok {
		return 0, "", analysis.NotFound("absd rate", string(category))
	}
	return math.Round(price * rate.Rate), rate.Description, nil
}
