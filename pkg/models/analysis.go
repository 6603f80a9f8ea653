package models

import (
	"encoding/json"
	"math"
	"time"
)

// TierAmount is one line of the BSD breakdown.
type TierAmount struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// UpfrontCosts is the one-time cash outlay for a purchase.
type UpfrontCosts struct {
	BSD             float64      `json:"bsd"`
	BSDBreakdown    []TierAmount `json:"bsd_breakdown,omitempty"`
	ABSD            float64      `json:"absd"`
	ABSDDescription string       `json:"absd_description,omitempty"`
	LegalFees       float64      `json:"legal_fees"`
	AgentCommission float64      `json:"agent_commission"`
	DownPayment     float64      `json:"down_payment"`
	LTVDescription  string       `json:"ltv_description,omitempty"`
	HDBGrants       float64      `json:"hdb_grants,omitempty"`
	Total           float64      `json:"total"` // before grant offset
	NetTotal        float64      `json:"net_total"`
}

// MonthlyCosts is the recurring monthly outlay.
type MonthlyCosts struct {
	Mortgage    float64 `json:"mortgage"`
	Maintenance float64 `json:"maintenance"`
	PropertyTax float64 `json:"property_tax"`
	Total       float64 `json:"total"`
}

// InvestmentFigures holds rental and loan-qualification metrics.
// A negative cashflow or a TDSR above the limit is a valid outcome,
// flagged rather than failed.
type InvestmentFigures struct {
	EstimatedRent float64 `json:"estimated_rent"` // monthly
	YieldPct      float64 `json:"yield_pct"`      // gross annual yield
	Cashflow      float64 `json:"cashflow"`       // rent - total monthly, signed
	TDSRPct       float64 `json:"tdsr_pct"`       // +Inf when income is infeasible
	Qualifies     bool    `json:"qualifies"`
}

// MarshalJSON encodes an infeasible TDSR (+Inf) as null, which JSON cannot
// represent as a number.
func (f InvestmentFigures) MarshalJSON() ([]byte, error) {
	type alias InvestmentFigures
	if !math.IsInf(f.TDSRPct, 1) {
		return json.Marshal(alias(f))
	}
	return json.Marshal(struct {
		alias
		TDSRPct interface{} `json:"tdsr_pct"`
	}{alias: alias(f), TDSRPct: nil})
}

// MarketFigures compares the subject listing against recent transactions.
type MarketFigures struct {
	SubjectPSF   float64       `json:"subject_psf"`
	BenchmarkPSF float64       `json:"benchmark_psf"` // mean of comparables
	MedianPSF    float64       `json:"median_psf"`
	MinPSF       float64       `json:"min_psf"`
	MaxPSF       float64       `json:"max_psf"`
	DeltaPct     float64       `json:"delta_pct"` // subject vs benchmark
	Rating       DealRating    `json:"rating"`
	Trend        string        `json:"trend"` // "rising", "falling", "stable"
	Simulated    bool          `json:"simulated"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// NoteLevel grades an advisory note.
type NoteLevel string

const (
	NoteInfo    NoteLevel = "info"
	NoteWarning NoteLevel = "warning"
)

// Note is a single advisory emitted by the deal analysis.
type Note struct {
	Level   NoteLevel `json:"level"`
	Message string    `json:"message"`
}

// AnalysisResult is the terminal, immutable output of one deal analysis.
type AnalysisResult struct {
	Listing    Listing           `json:"listing"`
	Buyer      BuyerProfile      `json:"buyer"`
	AsOf       time.Time         `json:"as_of"`
	Upfront    UpfrontCosts      `json:"upfront"`
	Monthly    MonthlyCosts      `json:"monthly"`
	Investment InvestmentFigures `json:"investment"`
	Market     MarketFigures     `json:"market"`
	Notes      []Note            `json:"notes,omitempty"`
}
