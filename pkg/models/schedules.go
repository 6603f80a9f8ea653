package models

import "math"

// TaxTier is one band of a progressive duty schedule. Upper is
// math.Inf(1) for the open-ended top tier.
type TaxTier struct {
	Lower       float64 `json:"lower" mapstructure:"lower"`
	Upper       float64 `json:"upper" mapstructure:"upper"`
	Rate        float64 `json:"rate" mapstructure:"rate"` // decimal, e.g. 0.04
	Description string  `json:"description,omitempty" mapstructure:"description"`
}

// Unbounded reports whether the tier has no upper bound.
func (t TaxTier) Unbounded() bool {
	return math.IsInf(t.Upper, 1)
}

// TaxSchedule is an ordered sequence of contiguous tiers covering [0, ∞).
type TaxSchedule []TaxTier

// ABSDRate is a flat surcharge rate for one buyer category.
type ABSDRate struct {
	Rate        float64 `json:"rate" mapstructure:"rate"`
	Description string  `json:"description,omitempty" mapstructure:"description"`
}

// ABSDSchedule maps buyer categories to flat ABSD rates. A category with
// no entry is a lookup failure, never an implicit zero.
type ABSDSchedule map[BuyerCategory]ABSDRate

// LTVLimit is the maximum financed fraction of price for one buyer category.
type LTVLimit struct {
	Ratio       float64 `json:"ratio" mapstructure:"ratio"` // e.g. 0.75
	Description string  `json:"description,omitempty" mapstructure:"description"`
}

// LTVPolicy maps buyer categories to loan-to-value limits.
type LTVPolicy map[BuyerCategory]LTVLimit

// RatingBands holds the deal-rating thresholds as percentage deltas vs the
// market benchmark. A delta at a boundary resolves to the cheaper band.
type RatingBands struct {
	GoodBelowPct float64 `json:"good_below_pct" mapstructure:"good_below_pct"` // e.g. -15
	FairBelowPct float64 `json:"fair_below_pct" mapstructure:"fair_below_pct"` // e.g. +10
}

// DealRating classifies an asking price against the market benchmark.
type DealRating string

const (
	RatingGoodDeal   DealRating = "good deal"
	RatingFair       DealRating = "fair"
	RatingOverpriced DealRating = "overpriced"
)
