package config

import (
	"math"

	"github.com/reddotai/sg-property-analyser/internal/engine"
	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// DefaultBSDTiers returns the 2024 residential BSD schedule.
func DefaultBSDTiers() []TierConfig {
	return []TierConfig{
		{Lower: 0, Upper: 180_000, Rate: 0.01, Description: "1% on first $180,000"},
		{Lower: 180_000, Upper: 640_000, Rate: 0.02, Description: "2% on next $460,000"},
		{Lower: 640_000, Upper: 1_000_000, Rate: 0.03, Description: "3% on next $360,000"},
		{Lower: 1_000_000, Upper: 1_500_000, Rate: 0.04, Description: "4% on next $500,000"},
		{Lower: 1_500_000, Upper: 3_000_000, Rate: 0.05, Description: "5% on next $1.5M"},
		{Lower: 3_000_000, Upper: 0, Rate: 0.06, Description: "6% on remaining"},
	}
}

// DefaultABSDRates returns the 2024 ABSD rates by buyer category.
func DefaultABSDRates() map[string]RateConfig {
	return map[string]RateConfig{
		string(models.BuyerCitizenFirst):  {Rate: 0, Description: "0% - No ABSD for first property"},
		string(models.BuyerCitizenSecond): {Rate: 0.20, Description: "20% - Second property"},
		string(models.BuyerCitizenThird):  {Rate: 0.30, Description: "30% - Third property onwards"},
		string(models.BuyerPRFirst):       {Rate: 0.05, Description: "5% - PR buying first property"},
		string(models.BuyerPRSecond):      {Rate: 0.30, Description: "30% - PR buying second property"},
		string(models.BuyerForeigner):     {Rate: 0.60, Description: "60% - Foreigner"},
		string(models.BuyerEntity):        {Rate: 0.65, Description: "65% - Company/Trust"},
	}
}

// DefaultLTVLimits returns the bank LTV limits by buyer category. The limit
// is keyed by how many outstanding housing loans the purchase adds.
func DefaultLTVLimits() map[string]RateConfig {
	first := RateConfig{Rate: 0.75, Description: "75% - First property loan"}
	second := RateConfig{Rate: 0.45, Description: "45% - Second property loan"}
	third := RateConfig{Rate: 0.35, Description: "35% - Third property loan"}

	return map[string]RateConfig{
		string(models.BuyerCitizenFirst):  first,
		string(models.BuyerPRFirst):       first,
		string(models.BuyerForeigner):     first,
		string(models.BuyerCitizenSecond): second,
		string(models.BuyerPRSecond):      second,
		string(models.BuyerCitizenThird):  third,
		string(models.BuyerEntity):        third,
	}
}

// DefaultGrants returns the 2024 HDB grant amounts by scheme.
func DefaultGrants() map[string]float64 {
	return map[string]float64{
		"ehg_singles":  40_000,
		"ehg_families": 80_000,
		"phg":          30_000,
		"fg":           50_000,
	}
}

// EngineParams assembles the immutable rule set the deal engine runs on.
func (c *Config) EngineParams() engine.Params {
	return engine.Params{
		BSD:                c.BSDSchedule(),
		ABSD:               c.ABSDSchedule(),
		LTV:                c.LTVPolicy(),
		InterestRate:       c.Rates.InterestRate,
		TenureYears:        c.Rates.LoanTenureYears,
		LegalFees:          c.Rates.LegalFees,
		AgentCommissionPct: c.Rates.AgentCommissionPct,
		PropertyTaxRate:    c.Rates.PropertyTaxRate,
		TDSRLimitPct:       c.Rates.TDSRLimitPct,
		Bands: models.RatingBands{
			GoodBelowPct: c.Rating.GoodBelowPct,
			FairBelowPct: c.Rating.FairBelowPct,
		},
		LeaseDecayYears:  c.Lease.DecayYears,
		LeaseNoticeYears: c.Lease.NoticeYears,
		Grants:           c.Duties.Grants,
	}
}

// BSDSchedule converts the configured tier table to the model form.
// A tier with Upper <= 0 is the open-ended top tier.
func (c *Config) BSDSchedule() models.TaxSchedule {
	schedule := make(models.TaxSchedule, 0, len(c.Duties.BSDTiers))
	for _, t := range c.Duties.BSDTiers {
		upper := t.Upper
		if upper <= 0 {
			upper = math.Inf(1)
		}
		schedule = append(schedule, models.TaxTier{
			Lower:       t.Lower,
			Upper:       upper,
			Rate:        t.Rate,
			Description: t.Description,
		})
	}
	return schedule
}

// ABSDSchedule converts the configured ABSD table to the model form.
func (c *Config) ABSDSchedule() models.ABSDSchedule {
	schedule := make(models.ABSDSchedule, len(c.Duties.ABSDRates))
	for category, rate := range c.Duties.ABSDRates {
		schedule[models.BuyerCategory(category)] = models.ABSDRate{
			Rate:        rate.Rate,
			Description: rate.Description,
		}
	}
	return schedule
}

// LTVPolicy converts the configured LTV table to the model form.
func (c *Config) LTVPolicy() models.LTVPolicy {
	policy := make(models.LTVPolicy, len(c.Duties.LTVLimits))
	for category, limit := range c.Duties.LTVLimits {
		policy[models.BuyerCategory(category)] = models.LTVLimit{
			Ratio:       limit.Rate,
			Description: limit.Description,
		}
	}
	return policy
}
