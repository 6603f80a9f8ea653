package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestListingPSF(t *testing.T) {
	l := Listing{Price: 1_200_000, SizeSqft: 1_000}
	if got := l.PSF(); got != 1_200 {
		t.Errorf("PSF = %.2f, want 1200", got)
	}

	l.SizeSqft = 0
	if got := l.PSF(); got != 0 {
		t.Errorf("PSF with zero size = %.2f, want 0", got)
	}
}

func TestTenureIsLeasehold(t *testing.T) {
	if TenureFreehold.IsLeasehold() {
		t.Error("freehold reported leasehold")
	}
	if !TenureLeasehold99.IsLeasehold() || !TenureLeasehold999.IsLeasehold() {
		t.Error("leasehold tenure not reported leasehold")
	}
}

func TestTaxTierUnbounded(t *testing.T) {
	bounded := TaxTier{Lower: 0, Upper: 180_000, Rate: 0.01}
	if bounded.Unbounded() {
		t.Error("bounded tier reported unbounded")
	}
	top := TaxTier{Lower: 3_000_000, Upper: math.Inf(1), Rate: 0.06}
	if !top.Unbounded() {
		t.Error("open tier not reported unbounded")
	}
}

func TestInvestmentFiguresJSON_infeasibleTDSR(t *testing.T) {
	f := InvestmentFigures{EstimatedRent: 3_500, YieldPct: 3.5, TDSRPct: math.Inf(1)}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal with +Inf TDSR: %v", err)
	}
	if !strings.Contains(string(data), `"tdsr_pct":null`) {
		t.Errorf("expected tdsr_pct to encode as null, got %s", data)
	}

	f.TDSRPct = 45.5
	data, err = json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"tdsr_pct":45.5`) {
		t.Errorf("expected numeric tdsr_pct, got %s", data)
	}
}

func TestAllBuyerCategories(t *testing.T) {
	categories := AllBuyerCategories()
	if len(categories) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(categories))
	}
	seen := make(map[BuyerCategory]bool)
	for _, c := range categories {
		if seen[c] {
			t.Errorf("duplicate category %s", c)
		}
		seen[c] = true
	}
}
