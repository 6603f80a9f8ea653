package engine

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func testParams() Params {
	return Params{
		BSD: models.TaxSchedule{
			{Lower: 0, Upper: 180_000, Rate: 0.01, Description: "1% on first $180,000"},
			{Lower: 180_000, Upper: 640_000, Rate: 0.02, Description: "2% on next $460,000"},
			{Lower: 640_000, Upper: 1_000_000, Rate: 0.03, Description: "3% on next $360,000"},
			{Lower: 1_000_000, Upper: 1_500_000, Rate: 0.04, Description: "4% on next $500,000"},
			{Lower: 1_500_000, Upper: 3_000_000, Rate: 0.05, Description: "5% on next $1.5M"},
			{Lower: 3_000_000, Upper: math.Inf(1), Rate: 0.06, Description: "6% on remaining"},
		},
		ABSD: models.ABSDSchedule{
			models.BuyerCitizenFirst: {Rate: 0, Description: "0% - No ABSD for first property"},
			models.BuyerForeigner:    {Rate: 0.60, Description: "60% - Foreigner"},
		},
		LTV: models.LTVPolicy{
			models.BuyerCitizenFirst: {Ratio: 0.75, Description: "75% - First property loan"},
			models.BuyerForeigner:    {Ratio: 0.75, Description: "75% - First property loan"},
		},
		InterestRate:       0.035,
		TenureYears:        25,
		LegalFees:          3_000,
		AgentCommissionPct: 0.01,
		PropertyTaxRate:    0.0004,
		TDSRLimitPct:       55,
		Bands:              models.RatingBands{GoodBelowPct: -15, FairBelowPct: 10},
		LeaseDecayYears:    60,
		LeaseNoticeYears:   80,
		Grants:             map[string]float64{"ehg_families": 80_000},
	}
}

func condoListing() models.Listing {
	return models.Listing{
		Address:      "12 Marine Parade Rd",
		Price:        1_200_000,
		SizeSqft:     1_000,
		PropertyType: models.PropertyCondo,
		District:     15,
		Tenure:       models.TenureFreehold,
	}
}

// comparables at a fixed PSF so the market figures are deterministic.
func comparables(psf float64, n int, asOf time.Time) []models.Transaction {
	txns := make([]models.Transaction, n)
	for i := range txns {
		txns[i] = models.Transaction{
			Address:  "Nearby Block",
			SizeSqft: 1_000,
			Price:    psf * 1_000,
			Date:     asOf.AddDate(0, 0, -i*20),
		}
	}
	return txns
}

var asOf = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// ════════════════════════════════════════════════════════════════════
// Engine Tests
// ════════════════════════════════════════════════════════════════════

func TestNew_validatesRules(t *testing.T) {
	if _, err := New(testParams()); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	bad := testParams()
	bad.BSD = nil
	if _, err := New(bad); err == nil {
		t.Error("expected error for empty BSD schedule")
	}

	bad = testParams()
	bad.TenureYears = 0
	if _, err := New(bad); err == nil {
		t.Error("expected error for zero tenure")
	}
}

func TestAnalyze_condoFirstTimer(t *testing.T) {
	e, err := New(testParams())
	if err != nil {
		t.Fatal(err)
	}

	buyer := models.BuyerProfile{
		Category:      models.BuyerCitizenFirst,
		MonthlyIncome: 10_000,
	}
	result, err := e.Analyze(condoListing(), buyer, comparables(1_200, 5, asOf), asOf)
	if err != nil {
		t.Fatal(err)
	}

	// Upfront: 300k down + 29,800 BSD + 3,000 legal + 12,000 commission.
	if result.Upfront.BSD != 29_800 {
		t.Errorf("BSD = %.2f, want 29800", result.Upfront.BSD)
	}
	if result.Upfront.ABSD != 0 {
		t.Errorf("ABSD = %.2f, want 0", result.Upfront.ABSD)
	}
	if result.Upfront.DownPayment != 300_000 {
		t.Errorf("DownPayment = %.2f, want 300000", result.Upfront.DownPayment)
	}
	if result.Upfront.AgentCommission != 12_000 {
		t.Errorf("AgentCommission = %.2f, want 12000", result.Upfront.AgentCommission)
	}
	if result.Upfront.Total != 344_800 {
		t.Errorf("Total = %.2f, want 344800", result.Upfront.Total)
	}
	if result.Upfront.HDBGrants != 0 {
		t.Errorf("HDBGrants = %.2f, want 0 for a condo", result.Upfront.HDBGrants)
	}

	// Monthly: ≈4505 mortgage + 300 maintenance + 40 property tax.
	if result.Monthly.Mortgage < 4_490 || result.Monthly.Mortgage > 4_520 {
		t.Errorf("Mortgage = %.2f, want ≈ 4505", result.Monthly.Mortgage)
	}
	if result.Monthly.Maintenance != 300 {
		t.Errorf("Maintenance = %.2f, want 300", result.Monthly.Maintenance)
	}
	if math.Abs(result.Monthly.PropertyTax-40) > 0.01 {
		t.Errorf("PropertyTax = %.2f, want 40", result.Monthly.PropertyTax)
	}

	// Investment: 3,500 rent on 1.2M is a 3.5% yield, negative cashflow,
	// TDSR ≈ 45% qualifies.
	if result.Investment.EstimatedRent != 3_500 {
		t.Errorf("EstimatedRent = %.2f, want 3500", result.Investment.EstimatedRent)
	}
	if math.Abs(result.Investment.YieldPct-3.5) > 0.001 {
		t.Errorf("YieldPct = %.4f, want 3.5", result.Investment.YieldPct)
	}
	if result.Investment.Cashflow >= 0 {
		t.Errorf("Cashflow = %.2f, want negative", result.Investment.Cashflow)
	}
	if !result.Investment.Qualifies {
		t.Errorf("Qualifies = false, want true (TDSR %.1f%%)", result.Investment.TDSRPct)
	}

	// Market: subject PSF equals the benchmark, so the deal is fair.
	if result.Market.SubjectPSF != 1_200 {
		t.Errorf("SubjectPSF = %.2f, want 1200", result.Market.SubjectPSF)
	}
	if result.Market.Rating != models.RatingFair {
		t.Errorf("Rating = %s, want fair", result.Market.Rating)
	}
	if result.Market.Simulated {
		t.Error("Simulated = true for real comparables")
	}
}

func TestAnalyze_hdbGrantAndWaivedCommission(t *testing.T) {
	e, _ := New(testParams())

	listing := models.Listing{
		Address:        "Blk 123 Hougang Ave 8",
		Price:          550_000,
		SizeSqft:       990,
		PropertyType:   models.PropertyHDB,
		District:       19,
		Tenure:         models.TenureLeasehold99,
		LeaseYearsLeft: 72,
	}
	buyer := models.BuyerProfile{Category: models.BuyerCitizenFirst, MonthlyIncome: 8_000}

	result, err := e.Analyze(listing, buyer, comparables(600, 5, asOf), asOf)
	if err != nil {
		t.Fatal(err)
	}

	if result.Upfront.AgentCommission != 0 {
		t.Errorf("AgentCommission = %.2f, want 0 on an HDB resale", result.Upfront.AgentCommission)
	}
	if result.Upfront.HDBGrants != 80_000 {
		t.Errorf("HDBGrants = %.2f, want 80000", result.Upfront.HDBGrants)
	}
	if result.Upfront.NetTotal != result.Upfront.Total-80_000 {
		t.Errorf("NetTotal = %.2f, want Total - grants", result.Upfront.NetTotal)
	}

	// 72 years remaining draws the informational lease note, not the warning.
	foundInfo := false
	for _, note := range result.Notes {
		if note.Level == models.NoteWarning && containsLease(note.Message) {
			t.Errorf("unexpected lease-decay warning at 72 years: %q", note.Message)
		}
		if note.Level == models.NoteInfo && containsLease(note.Message) {
			foundInfo = true
		}
	}
	if !foundInfo {
		t.Error("expected an informational lease note at 72 years")
	}
}

func containsLease(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "lease")
}

func TestAnalyze_leaseDecayWarning(t *testing.T) {
	e, _ := New(testParams())

	listing := condoListing()
	listing.Tenure = models.TenureLeasehold99
	listing.LeaseYearsLeft = 45

	result, err := e.Analyze(listing, models.BuyerProfile{Category: models.BuyerCitizenFirst, MonthlyIncome: 10_000}, comparables(1_200, 5, asOf), asOf)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, note := range result.Notes {
		if note.Level == models.NoteWarning && containsLease(note.Message) {
			found = true
		}
	}
	if !found {
		t.Error("expected a lease-decay warning at 45 years remaining")
	}
}

func TestAnalyze_foreignerABSDNote(t *testing.T) {
	e, _ := New(testParams())

	buyer := models.BuyerProfile{Category: models.BuyerForeigner, MonthlyIncome: 30_000}
	result, err := e.Analyze(condoListing(), buyer, comparables(1_200, 5, asOf), asOf)
	if err != nil {
		t.Fatal(err)
	}

	if result.Upfront.ABSD != 720_000 {
		t.Errorf("ABSD = %.2f, want 720000 (60%%)", result.Upfront.ABSD)
	}

	found := false
	for _, note := range result.Notes {
		if note.Level == models.NoteWarning && strings.HasPrefix(note.Message, "HIGH ABSD") {
			found = true
		}
	}
	if !found {
		t.Error("expected a HIGH ABSD warning")
	}
}

func TestAnalyze_noIncomeTDSR(t *testing.T) {
	e, _ := New(testParams())

	result, err := e.Analyze(condoListing(), models.BuyerProfile{Category: models.BuyerCitizenFirst}, comparables(1_200, 5, asOf), asOf)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(result.Investment.TDSRPct, 1) {
		t.Errorf("TDSRPct = %v, want +Inf with no income", result.Investment.TDSRPct)
	}
	if result.Investment.Qualifies {
		t.Error("Qualifies = true with no income")
	}
}

func TestAnalyze_errors(t *testing.T) {
	e, _ := New(testParams())
	buyer := models.BuyerProfile{Category: models.BuyerCitizenFirst, MonthlyIncome: 10_000}

	bad := condoListing()
	bad.Price = 0
	if _, err := e.Analyze(bad, buyer, comparables(1_200, 5, asOf), asOf); err == nil {
		t.Error("expected error for zero price")
	}

	bad = condoListing()
	bad.SizeSqft = 0
	if _, err := e.Analyze(bad, buyer, comparables(1_200, 5, asOf), asOf); err == nil {
		t.Error("expected error for zero size")
	}

	if _, err := e.Analyze(condoListing(), buyer, nil, asOf); err == nil {
		t.Error("expected error with no comparable transactions")
	}

	unknown := models.BuyerProfile{Category: "tourist", MonthlyIncome: 10_000}
	if _, err := e.Analyze(condoListing(), unknown, comparables(1_200, 5, asOf), asOf); err == nil {
		t.Error("expected error for unknown buyer category")
	}
}

func TestAnalyze_idempotent(t *testing.T) {
	e, _ := New(testParams())
	buyer := models.BuyerProfile{Category: models.BuyerCitizenFirst, MonthlyIncome: 10_000}
	txns := comparables(1_200, 5, asOf)

	a, err := e.Analyze(condoListing(), buyer, txns, asOf)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Analyze(condoListing(), buyer, txns, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

// ════════════════════════════════════════════════════════════════════
// Estimate Tests
// ════════════════════════════════════════════════════════════════════

func TestEstimateMaintenance(t *testing.T) {
	tests := []struct {
		propertyType models.PropertyType
		district     int
		want         float64
	}{
		{models.PropertyHDB, 19, 80},
		{models.PropertyCondo, 15, 300},
		{models.PropertyCondo, 10, 400},
		{models.PropertyLanded, 15, 0},
	}
	for _, tt := range tests {
		if got := EstimateMaintenance(tt.propertyType, tt.district); got != tt.want {
			t.Errorf("EstimateMaintenance(%s, %d) = %.0f, want %.0f", tt.propertyType, tt.district, got, tt.want)
		}
	}
}

func TestEstimateRent(t *testing.T) {
	tests := []struct {
		propertyType models.PropertyType
		district     int
		size         float64
		want         float64
	}{
		{models.PropertyHDB, 19, 1_000, 2_500},
		{models.PropertyCondo, 15, 1_000, 3_500},
		{models.PropertyCondo, 10, 1_000, 4_000},
		{models.PropertyLanded, 15, 2_000, 4_000},
	}
	for _, tt := range tests {
		listing := models.Listing{PropertyType: tt.propertyType, District: tt.district, SizeSqft: tt.size}
		if got := EstimateRent(listing); got != tt.want {
			t.Errorf("EstimateRent(%s, d%d, %.0f sqft) = %.0f, want %.0f", tt.propertyType, tt.district, tt.size, got, tt.want)
		}
	}
}
