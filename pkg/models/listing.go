// Package models defines the core data structures used throughout the
// Singapore property deal analyser.
package models

// PropertyType classifies a residential property.
type PropertyType string

const (
	PropertyHDB    PropertyType = "hdb"
	PropertyCondo  PropertyType = "condo"
	PropertyLanded PropertyType = "landed"
)

// Tenure describes the lease arrangement of a property.
type Tenure string

const (
	TenureFreehold     Tenure = "freehold"
	TenureLeasehold999 Tenure = "999"
	TenureLeasehold99  Tenure = "99"
)

// IsLeasehold reports whether the tenure carries a decaying lease.
func (t Tenure) IsLeasehold() bool {
	return t == TenureLeasehold99 || t == TenureLeasehold999
}

// Listing represents a property listing with all relevant details.
// Listings are treated as immutable once extracted.
type Listing struct {
	URL            string       `json:"url,omitempty"`
	Title          string       `json:"title,omitempty"`
	Address        string       `json:"address"`
	Price          float64      `json:"price"`     // asking price in SGD
	SizeSqft       float64      `json:"size_sqft"` // floor area in sqft
	Bedrooms       int          `json:"bedrooms"`
	Bathrooms      int          `json:"bathrooms"`
	PropertyType   PropertyType `json:"property_type"`
	District       int          `json:"district"` // Singapore district 1-28
	Tenure         Tenure       `json:"tenure"`
	LeaseYearsLeft int          `json:"lease_years_left,omitempty"` // leasehold only
	MaintenanceFee float64      `json:"maintenance_fee,omitempty"`  // monthly, 0 = estimate
}

// PSF returns the listing's price per square foot, or 0 when the size
// is unknown.
func (l Listing) PSF() float64 {
	if l.Price > 0 && l.SizeSqft > 0 {
		return l.Price / l.SizeSqft
	}
	return 0
}

// BuyerCategory is the closed enumeration of residency × ownership-count
// combinations recognised by the ABSD and LTV schedules.
type BuyerCategory string

const (
	BuyerCitizenFirst  BuyerCategory = "citizen_first"
	BuyerCitizenSecond BuyerCategory = "citizen_second"
	BuyerCitizenThird  BuyerCategory = "citizen_third"
	BuyerPRFirst       BuyerCategory = "pr_first"
	BuyerPRSecond      BuyerCategory = "pr_second"
	BuyerForeigner     BuyerCategory = "foreigner"
	BuyerEntity        BuyerCategory = "entity"
)

// AllBuyerCategories returns every recognised buyer category in display order.
func AllBuyerCategories() []BuyerCategory {
	return []BuyerCategory{
		BuyerCitizenFirst,
		BuyerCitizenSecond,
		BuyerCitizenThird,
		BuyerPRFirst,
		BuyerPRSecond,
		BuyerForeigner,
		BuyerEntity,
	}
}

// BuyerProfile describes the buyer for a single analysis run.
type BuyerProfile struct {
	Category      BuyerCategory `json:"category"`
	MonthlyIncome float64       `json:"monthly_income"`
	MonthlyDebts  float64       `json:"monthly_debts"` // other recurring obligations
}
