package market

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/reddotai/sg-property-analyser/internal/analysis"
	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// txn builds a comparable at a given PSF with a 1,000 sqft floor area.
func txn(psf float64, date time.Time) models.Transaction {
	return models.Transaction{
		Address:  "8 Example Ave",
		SizeSqft: 1_000,
		Price:    psf * 1_000,
		Date:     date,
	}
}

func defaultBands() models.RatingBands {
	return models.RatingBands{GoodBelowPct: -15, FairBelowPct: 10}
}

func TestComputeStats(t *testing.T) {
	now := time.Now()
	stats, err := ComputeStats([]models.Transaction{
		txn(1_200, now), txn(1_400, now), txn(1_600, now),
	})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	if math.Abs(stats.Mean-1_400) > 0.01 {
		t.Errorf("Mean = %.2f, want 1400", stats.Mean)
	}
	if stats.Median != 1_400 {
		t.Errorf("Median = %.2f, want 1400", stats.Median)
	}
	if stats.Min != 1_200 || stats.Max != 1_600 {
		t.Errorf("Min/Max = %.2f/%.2f, want 1200/1600", stats.Min, stats.Max)
	}
}

func TestComputeStats_skipsZeroArea(t *testing.T) {
	now := time.Now()
	stats, err := ComputeStats([]models.Transaction{
		txn(1_500, now),
		{Address: "bad row", SizeSqft: 0, Price: 1_000_000, Date: now},
	})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 1 {
		t.Errorf("Count = %d, want 1 (zero-area row excluded)", stats.Count)
	}
}

func TestBenchmarkPSF_emptySet(t *testing.T) {
	_, err := BenchmarkPSF(nil)
	if err == nil {
		t.Fatal("expected error for empty comparable set")
	}
	var lerr *analysis.LookupError
	if !errors.As(err, &lerr) {
		t.Errorf("expected LookupError, got %T", err)
	}

	// A set with no usable areas is just as empty.
	_, err = BenchmarkPSF([]models.Transaction{{SizeSqft: 0, Price: 500_000}})
	if err == nil {
		t.Error("expected error when no transaction has a usable area")
	}
}

func TestClassifyDeal_bands(t *testing.T) {
	tests := []struct {
		name       string
		subject    float64
		wantRating models.DealRating
	}{
		{"well below benchmark", 800, models.RatingGoodDeal},
		{"exactly on the good boundary", 850, models.RatingGoodDeal},
		{"just above the good boundary", 851, models.RatingFair},
		{"at the benchmark", 1_000, models.RatingFair},
		{"exactly on the fair boundary", 1_100, models.RatingFair},
		{"just above the fair boundary", 1_101, models.RatingOverpriced},
		{"far above", 1_400, models.RatingOverpriced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rating, err := ClassifyDeal(tt.subject, 1_000, defaultBands())
			if err != nil {
				t.Fatal(err)
			}
			if rating != tt.wantRating {
				t.Errorf("ClassifyDeal(%.0f vs 1000) = %s, want %s", tt.subject, rating, tt.wantRating)
			}
		})
	}
}

func TestClassifyDeal_scaleInvariant(t *testing.T) {
	d1, r1, err := ClassifyDeal(880, 1_000, defaultBands())
	if err != nil {
		t.Fatal(err)
	}
	d2, r2, err := ClassifyDeal(8_800, 10_000, defaultBands())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d1-d2) > 1e-9 || r1 != r2 {
		t.Errorf("classification changed under scaling: (%.4f, %s) vs (%.4f, %s)", d1, r1, d2, r2)
	}
}

func TestClassifyDeal_badBenchmark(t *testing.T) {
	if _, _, err := ClassifyDeal(1_000, 0, defaultBands()); err == nil {
		t.Error("expected error for zero benchmark")
	}
}

func TestTrend(t *testing.T) {
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recent := asOf.AddDate(0, 0, -30)
	old := asOf.AddDate(0, 0, -120)

	tests := []struct {
		name         string
		transactions []models.Transaction
		want         string
	}{
		{"rising", []models.Transaction{txn(1_100, recent), txn(1_000, old)}, "rising"},
		{"falling", []models.Transaction{txn(900, recent), txn(1_000, old)}, "falling"},
		{"within the band", []models.Transaction{txn(1_030, recent), txn(1_000, old)}, "stable"},
		{"all recent", []models.Transaction{txn(1_100, recent)}, "stable"},
		{"all old", []models.Transaction{txn(1_100, old)}, "stable"},
		{"empty", nil, "stable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trend(tt.transactions, asOf); got != tt.want {
				t.Errorf("Trend = %q, want %q", got, tt.want)
			}
		})
	}
}
