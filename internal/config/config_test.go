package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/reddotai/sg-property-analyser/pkg/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Rates.InterestRate != 0.035 {
		t.Errorf("InterestRate = %v, want 0.035", cfg.Rates.InterestRate)
	}
	if cfg.Rates.LoanTenureYears != 25 {
		t.Errorf("LoanTenureYears = %d, want 25", cfg.Rates.LoanTenureYears)
	}
	if cfg.Rates.TDSRLimitPct != 55 {
		t.Errorf("TDSRLimitPct = %v, want 55", cfg.Rates.TDSRLimitPct)
	}
	if cfg.Rating.GoodBelowPct != -15 || cfg.Rating.FairBelowPct != 10 {
		t.Errorf("Rating bands = %+v", cfg.Rating)
	}
	if cfg.Lease.DecayYears != 60 || cfg.Lease.NoticeYears != 80 {
		t.Errorf("Lease thresholds = %+v", cfg.Lease)
	}
	if len(cfg.Duties.BSDTiers) != 6 {
		t.Errorf("expected 6 default BSD tiers, got %d", len(cfg.Duties.BSDTiers))
	}
	if len(cfg.Duties.ABSDRates) != 7 {
		t.Errorf("expected 7 default ABSD categories, got %d", len(cfg.Duties.ABSDRates))
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want 8080", cfg.API.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
rates:
  interest_rate: 0.042
  loan_tenure_years: 30
rating:
  good_below_pct: -20
  fair_below_pct: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rates.InterestRate != 0.042 {
		t.Errorf("InterestRate = %v, want 0.042", cfg.Rates.InterestRate)
	}
	if cfg.Rates.LoanTenureYears != 30 {
		t.Errorf("LoanTenureYears = %d, want 30", cfg.Rates.LoanTenureYears)
	}
	if cfg.Rating.GoodBelowPct != -20 || cfg.Rating.FairBelowPct != 5 {
		t.Errorf("Rating bands = %+v", cfg.Rating)
	}
	// Unset sections keep their defaults, and the duty tables are filled in.
	if cfg.Rates.LegalFees != 3000 {
		t.Errorf("LegalFees = %v, want default 3000", cfg.Rates.LegalFees)
	}
	if len(cfg.Duties.BSDTiers) == 0 {
		t.Error("expected default BSD tiers to be filled in")
	}
}

func TestURAKeyFromEnv(t *testing.T) {
	t.Setenv("SGPROP_MARKET_URA_API_KEY", "env-key")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Market.URAAPIKey != "env-key" {
		t.Errorf("URAAPIKey = %q, want env-key", cfg.Market.URAAPIKey)
	}
}

func TestBSDScheduleConversion(t *testing.T) {
	cfg := &Config{}
	cfg.fillDutyDefaults()

	schedule := cfg.BSDSchedule()
	if len(schedule) != 6 {
		t.Fatalf("expected 6 tiers, got %d", len(schedule))
	}
	top := schedule[len(schedule)-1]
	if !math.IsInf(top.Upper, 1) {
		t.Errorf("top tier Upper = %v, want +Inf", top.Upper)
	}
	if !top.Unbounded() {
		t.Error("top tier should report Unbounded")
	}
	if schedule[0].Lower != 0 || schedule[0].Rate != 0.01 {
		t.Errorf("first tier = %+v", schedule[0])
	}
}

func TestScheduleLookups(t *testing.T) {
	cfg := &Config{}
	cfg.fillDutyDefaults()

	absd := cfg.ABSDSchedule()
	if absd[models.BuyerForeigner].Rate != 0.60 {
		t.Errorf("foreigner ABSD = %v, want 0.60", absd[models.BuyerForeigner].Rate)
	}
	if absd[models.BuyerCitizenFirst].Rate != 0 {
		t.Errorf("citizen_first ABSD = %v, want 0", absd[models.BuyerCitizenFirst].Rate)
	}

	ltv := cfg.LTVPolicy()
	if ltv[models.BuyerCitizenFirst].Ratio != 0.75 {
		t.Errorf("citizen_first LTV = %v, want 0.75", ltv[models.BuyerCitizenFirst].Ratio)
	}
	if ltv[models.BuyerEntity].Ratio != 0.35 {
		t.Errorf("entity LTV = %v, want 0.35", ltv[models.BuyerEntity].Ratio)
	}
}

func TestEngineParams(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	params := cfg.EngineParams()
	if params.InterestRate != cfg.Rates.InterestRate {
		t.Error("InterestRate not carried into engine params")
	}
	if params.Grants["ehg_families"] != 80_000 {
		t.Errorf("ehg_families grant = %v, want 80000", params.Grants["ehg_families"])
	}
	if len(params.BSD) != 6 {
		t.Errorf("BSD schedule has %d tiers, want 6", len(params.BSD))
	}
}
