package models

import "time"

// Transaction is a single comparable market transaction supplied by a
// market-data collaborator. Records are read-only.
type Transaction struct {
	Address      string       `json:"address"`
	PropertyType PropertyType `json:"property_type"`
	SizeSqft     float64      `json:"size_sqft"`
	Price        float64      `json:"price"`
	Date         time.Time    `json:"date"`
	Tenure       Tenure       `json:"tenure,omitempty"`
	Simulated    bool         `json:"simulated"` // provenance: simulated vs sourced
}

// PSF returns the transaction's price per square foot, or 0 when the
// size is unknown.
func (t Transaction) PSF() float64 {
	if t.SizeSqft > 0 {
		return t.Price / t.SizeSqft
	}
	return 0
}

// PricePoint is one month of the simulated price history series.
type PricePoint struct {
	Month     string  `json:"month"` // "2026-08"
	Price     float64 `json:"price"`
	PSF       float64 `json:"psf"`
	Simulated bool    `json:"simulated"`
}

// NewsItem is a property-market headline from an RSS feed.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}
