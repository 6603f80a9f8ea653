package engine

import (
	"fmt"
	"math"

	"github.com/reddotai/sg-property-analyser/pkg/models"
	"github.com/reddotai/sg-property-analyser/pkg/utils"
)

// premiumDistricts are the core central region districts that command
// higher maintenance fees and rents.
var premiumDistricts = map[int]bool{
	1: true, 2: true, 4: true, 9: true, 10: true, 11: true,
}

// primeRentalDistricts command the top condo rental rates.
var primeRentalDistricts = map[int]bool{
	9: true, 10: true, 11: true,
}

// EstimateMaintenance returns a typical monthly maintenance fee for the
// property type and district, used when the listing does not state one.
func EstimateMaintenance(propertyType models.PropertyType, district int) float64 {
	switch propertyType {
	case models.PropertyHDB:
		return 80
	case models.PropertyLanded:
		return 0 // no managed estate
	case models.PropertyCondo:
		if premiumDistricts[district] {
			return 400
		}
		return 300
	default:
		return 300
	}
}

// EstimateRent returns a rough monthly rental estimate from property type,
// size, and district. Returns 0 when the size is unknown.
func EstimateRent(listing models.Listing) float64 {
	if listing.SizeSqft <= 0 {
		return 0
	}

	var rentPSF float64
	switch listing.PropertyType {
	case models.PropertyHDB:
		rentPSF = 2.5
	case models.PropertyLanded:
		rentPSF = 2.0
	case models.PropertyCondo:
		rentPSF = 3.5
		if primeRentalDistricts[listing.District] {
			rentPSF = 4.0
		}
	default:
		rentPSF = 3.0
	}
	return listing.SizeSqft * rentPSF
}

// YieldBenchmark returns the typical gross yield range for a property type,
// for display alongside the computed yield.
func YieldBenchmark(propertyType models.PropertyType) string {
	switch propertyType {
	case models.PropertyHDB:
		return "3.5-4.5%"
	case models.PropertyCondo:
		return "3.0-3.5%"
	case models.PropertyLanded:
		return "2.0-2.5%"
	default:
		return "3.0-4.0%"
	}
}

// advisoryNotes evaluates the rule-of-thumb warnings attached to a result:
// lease decay, heavy ABSD, negative cashflow, and TDSR failure.
func (e *Engine) advisoryNotes(r *models.AnalysisResult) []models.Note {
	var notes []models.Note

	if r.Listing.Tenure.IsLeasehold() && r.Listing.LeaseYearsLeft > 0 {
		switch {
		case r.Listing.LeaseYearsLeft < e.params.LeaseDecayYears:
			notes = append(notes, models.Note{
				Level:   models.NoteWarning,
				Message: fmt.Sprintf("LEASE DECAY: only %d years remaining on the lease", r.Listing.LeaseYearsLeft),
			})
		case r.Listing.LeaseYearsLeft < e.params.LeaseNoticeYears:
			notes = append(notes, models.Note{
				Level:   models.NoteInfo,
				Message: fmt.Sprintf("Lease remaining: %d years", r.Listing.LeaseYearsLeft),
			})
		}
	}

	if r.Upfront.ABSD > 0 {
		pct := r.Upfront.ABSD / r.Listing.Price * 100
		notes = append(notes, models.Note{
			Level:   models.NoteWarning,
			Message: fmt.Sprintf("HIGH ABSD: %s (%.0f%% of price)", utils.FormatSGD(r.Upfront.ABSD), pct),
		})
	}

	if r.Investment.Cashflow < 0 {
		notes = append(notes, models.Note{
			Level:   models.NoteWarning,
			Message: fmt.Sprintf("Negative cashflow: %s/month must come from other income", utils.FormatSGD(-r.Investment.Cashflow)),
		})
	}

	if !r.Investment.Qualifies {
		msg := fmt.Sprintf("TDSR %.1f%% exceeds the %.0f%% limit: loan would not qualify", r.Investment.TDSRPct, e.params.TDSRLimitPct)
		if math.IsInf(r.Investment.TDSRPct, 1) {
			msg = "TDSR infeasible: no qualifying income declared"
		}
		notes = append(notes, models.Note{Level: models.NoteWarning, Message: msg})
	}

	return notes
}
