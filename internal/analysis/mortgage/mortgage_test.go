package mortgage

import (
	"errors"
	"math"
	"testing"

	"github.com/reddotai/sg-property-analyser/internal/analysis"
	"github.com/reddotai/sg-property-analyser/pkg/models"
)

func ltvPolicy() models.LTVPolicy {
	return models.LTVPolicy{
		models.BuyerCitizenFirst:  {Ratio: 0.75, Description: "75% - First property loan"},
		models.BuyerCitizenSecond: {Ratio: 0.45, Description: "45% - Second property loan"},
		models.BuyerEntity:        {Ratio: 0.35, Description: "35% - Third property loan"},
	}
}

func TestDownPayment(t *testing.T) {
	tests := []struct {
		category models.BuyerCategory
		price    float64
		wantDown float64
		wantLoan float64
	}{
		{models.BuyerCitizenFirst, 1_200_000, 300_000, 900_000},
		{models.BuyerCitizenSecond, 1_000_000, 550_000, 450_000},
		{models.BuyerEntity, 2_000_000, 1_300_000, 700_000},
	}
	for _, tt := range tests {
		down, loan, desc, err := DownPayment(tt.price, tt.category, ltvPolicy())
		if err != nil {
			t.Fatalf("DownPayment(%s): unexpected error %v", tt.category, err)
		}
		if math.Abs(down-tt.wantDown) > 0.01 {
			t.Errorf("DownPayment(%.0f, %s) down = %.2f, want %.2f", tt.price, tt.category, down, tt.wantDown)
		}
		if math.Abs(loan-tt.wantLoan) > 0.01 {
			t.Errorf("DownPayment(%.0f, %s) loan = %.2f, want %.2f", tt.price, tt.category, loan, tt.wantLoan)
		}
		if desc == "" {
			t.Error("expected a policy description")
		}
	}
}

func TestDownPayment_errors(t *testing.T) {
	_, _, _, err := DownPayment(0, models.BuyerCitizenFirst, ltvPolicy())
	var verr *analysis.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("zero price: expected ValidationError, got %v", err)
	}

	_, _, _, err = DownPayment(1_000_000, "tourist", ltvPolicy())
	var lerr *analysis.LookupError
	if !errors.As(err, &lerr) {
		t.Errorf("unknown category: expected LookupError, got %v", err)
	}
}

func TestMonthlyInstallment(t *testing.T) {
	// 900k at 3.5% over 25 years is about $4,505 a month.
	got, err := MonthlyInstallment(900_000, 0.035, 25)
	if err != nil {
		t.Fatal(err)
	}
	if got < 4_490 || got > 4_520 {
		t.Errorf("MonthlyInstallment(900000, 0.035, 25) = %.2f, want ≈ 4505", got)
	}
}

func TestMonthlyInstallment_zeroRate(t *testing.T) {
	got, err := MonthlyInstallment(600_000, 0, 25)
	if err != nil {
		t.Fatal(err)
	}
	want := 600_000.0 / (25 * 12)
	if math.Abs(got-want) > 0.01 {
		t.Errorf("zero-rate installment = %.2f, want %.2f", got, want)
	}
}

func TestMonthlyInstallment_zeroPrincipal(t *testing.T) {
	got, err := MonthlyInstallment(0, 0.035, 25)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("zero principal installment = %.2f, want 0", got)
	}
}

func TestMonthlyInstallment_errors(t *testing.T) {
	if _, err := MonthlyInstallment(-1, 0.035, 25); err == nil {
		t.Error("expected error for negative principal")
	}
	if _, err := MonthlyInstallment(900_000, 0.035, 0); err == nil {
		t.Error("expected error for zero tenure")
	}
	if _, err := MonthlyInstallment(900_000, -0.01, 25); err == nil {
		t.Error("expected error for negative rate")
	}
}
