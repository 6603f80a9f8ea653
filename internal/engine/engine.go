// Package engine composes the calculation packages into a single deal
// analysis. It is the one component that knows all the others; it performs
// no I/O and keeps no state between calls, so concurrent analyses are safe.
package engine

import (
	"time"

	"github.com/reddotai/sg-property-analyser/internal/analysis"
	"github.com/reddotai/sg-property-analyser/internal/analysis/investment"
	"github.com/reddotai/sg-property-analyser/internal/analysis/market"
	"github.com/reddotai/sg-property-analyser/internal/analysis/mortgage"
	"github.com/reddotai/sg-property-analyser/internal/analysis/tax"
	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// Params carries every rule the engine applies, passed as explicit data so
// the engine has no process-wide configuration dependency. A Params value
// is treated as read-only once the engine is constructed.
type Params struct {
	BSD  models.TaxSchedule
	ABSD models.ABSDSchedule
	LTV  models.LTVPolicy

	InterestRate       float64 // annual, decimal
	TenureYears        int
	LegalFees          float64
	AgentCommissionPct float64 // of price, waived for HDB
	PropertyTaxRate    float64 // annual, of price

	TDSRLimitPct float64
	Bands        models.RatingBands

	LeaseDecayYears  int // below this: lease-decay warning
	LeaseNoticeYears int // below this: informational note

	Grants map[string]float64 // HDB grant amounts by scheme key
}

// Engine runs deal analyses against a fixed rule set.
type Engine struct {
	params Params
}

// New creates an engine. The BSD schedule is validated up front so a
// misconfigured rule set fails at startup rather than mid-analysis.
func New(params Params) (*Engine, error) {
	if err := tax.ValidateSchedule(params.BSD); err != nil {
		return nil, err
	}
	if params.TenureYears <= 0 {
		return nil, analysis.Invalid("tenure", "must be positive, got %d years", params.TenureYears)
	}
	return &Engine{params: params}, nil
}

// Analyze produces the full financial picture for one listing and buyer.
// The comparable transactions are supplied by the market-data collaborator;
// asOf anchors every date-relative rule so identical inputs always produce
// identical results.
func (e *Engine) Analyze(listing models.Listing, buyer models.BuyerProfile, transactions []models.Transaction, asOf time.Time) (*models.AnalysisResult, error) {
	if listing.Price <= 0 {
		return nil, analysis.Invalid("price", "must be positive, got %.2f", listing.Price)
	}
	if listing.SizeSqft <= 0 {
		return nil, analysis.Invalid("size", "must be positive, got %.2f sqft", listing.SizeSqft)
	}

	upfront, loan, err := e.upfrontCosts(listing, buyer)
	if err != nil {
		return nil, err
	}

	monthly, err := e.monthlyCosts(listing, loan)
	if err != nil {
		return nil, err
	}

	invest, err := e.investmentFigures(listing, buyer, monthly)
	if err != nil {
		return nil, err
	}

	mkt, err := e.marketFigures(listing, transactions, asOf)
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{
		Listing:    listing,
		Buyer:      buyer,
		AsOf:       asOf,
		Upfront:    upfront,
		Monthly:    monthly,
		Investment: invest,
		Market:     mkt,
	}
	result.Notes = e.advisoryNotes(result)
	return result, nil
}

func (e *Engine) upfrontCosts(listing models.Listing, buyer models.BuyerProfile) (models.UpfrontCosts, float64, error) {
	price := listing.Price

	bsd, breakdown, err := tax.ComputeBSD(price, e.params.BSD)
	if err != nil {
		return models.UpfrontCosts{}, 0, err
	}

	absd, absdDesc, err := tax.ComputeABSD(price, buyer.Category, e.params.ABSD)
	if err != nil {
		return models.UpfrontCosts{}, 0, err
	}

	down, loan, ltvDesc, err := mortgage.DownPayment(price, buyer.Category, e.params.LTV)
	if err != nil {
		return models.UpfrontCosts{}, 0, err
	}

	// Seller conventionally pays the commission on HDB resales.
	var commission float64
	if listing.PropertyType != models.PropertyHDB {
		commission = price * e.params.AgentCommissionPct
	}

	var grants float64
	if listing.PropertyType == models.PropertyHDB && buyer.Category == models.BuyerCitizenFirst {
		grants = e.params.Grants["ehg_families"]
	}

	total := down + bsd + absd + e.params.LegalFees + commission
	return models.UpfrontCosts{
		BSD:             bsd,
		BSDBreakdown:    breakdown,
		ABSD:            absd,
		ABSDDescription: absdDesc,
		LegalFees:       e.params.LegalFees,
		AgentCommission: commission,
		DownPayment:     down,
		LTVDescription:  ltvDesc,
		HDBGrants:       grants,
		Total:           total,
		NetTotal:        total - grants,
	}, loan, nil
}

func (e *Engine) monthlyCosts(listing models.Listing, loan float64) (models.MonthlyCosts, error) {
	installment, err := mortgage.MonthlyInstallment(loan, e.params.InterestRate, e.params.TenureYears)
	if err != nil {
		return models.MonthlyCosts{}, err
	}

	maintenance := listing.MaintenanceFee
	if maintenance == 0 {
		maintenance = EstimateMaintenance(listing.PropertyType, listing.District)
	}
	propertyTax := listing.Price * e.params.PropertyTaxRate / 12

	return models.MonthlyCosts{
		Mortgage:    installment,
		Maintenance: maintenance,
		PropertyTax: propertyTax,
		Total:       installment + maintenance + propertyTax,
	}, nil
}

func (e *Engine) investmentFigures(listing models.Listing, buyer models.BuyerProfile, monthly models.MonthlyCosts) (models.InvestmentFigures, error) {
	rent := EstimateRent(listing)

	yieldPct, err := investment.RentalYield(rent, listing.Price)
	if err != nil {
		return models.InvestmentFigures{}, err
	}

	tdsr := investment.TDSR(monthly.Mortgage, buyer.MonthlyDebts, buyer.MonthlyIncome)
	return models.InvestmentFigures{
		EstimatedRent: rent,
		YieldPct:      yieldPct,
		Cashflow:      investment.Cashflow(rent, monthly.Total),
		TDSRPct:       tdsr,
		Qualifies:     investment.CanQualify(tdsr, e.params.TDSRLimitPct),
	}, nil
}

func (e *Engine) marketFigures(listing models.Listing, transactions []models.Transaction, asOf time.Time) (models.MarketFigures, error) {
	stats, err := market.ComputeStats(transactions)
	if err != nil {
		return models.MarketFigures{}, err
	}

	subjectPSF := listing.PSF()
	delta, rating, err := market.ClassifyDeal(subjectPSF, stats.Mean, e.params.Bands)
	if err != nil {
		return models.MarketFigures{}, err
	}

	simulated := false
	for _, t := range transactions {
		if t.Simulated {
			simulated = true
			break
		}
	}

	return models.MarketFigures{
		SubjectPSF:   subjectPSF,
		BenchmarkPSF: stats.Mean,
		MedianPSF:    stats.Median,
		MinPSF:       stats.Min,
		MaxPSF:       stats.Max,
		DeltaPct:     delta,
		Rating:       rating,
		Trend:        market.Trend(transactions, asOf),
		Simulated:    simulated,
		Transactions: transactions,
	}, nil
}
