// Package market benchmarks a listing's price per square foot against
// comparable transactions and classifies the deal.
package market

import (
	"sort"
	"time"

	"github.com/reddotai/sg-property-analyser/internal/analysis"
	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// Stats summarises the PSF distribution of a comparable set.
type Stats struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	Count  int
}

// BenchmarkPSF returns the arithmetic mean price per square foot across the
// comparable transactions. An empty set (or one with no usable areas) is an
// explicit lookup error: callers must supply at least a simulated fallback.
func BenchmarkPSF(transactions []models.Transaction) (float64, error) {
	stats, err := ComputeStats(transactions)
	if err != nil {
		return 0, err
	}
	return stats.Mean, nil
}

// ComputeStats returns mean, median, min, and max PSF for the comparable set.
func ComputeStats(transactions []models.Transaction) (Stats, error) {
	var psfs []float64
	for _, t := range transactions {
		if psf := t.PSF(); psf > 0 {
			psfs = append(psfs, psf)
		}
	}
	if len(psfs) == 0 {
		return Stats{}, analysis.NotFound("comparable transactions", "")
	}

	sort.Float64s(psfs)
	var sum float64
	for _, v := range psfs {
		sum += v
	}
	return Stats{
		Mean:   sum / float64(len(psfs)),
		Median: psfs[len(psfs)/2],
		Min:    psfs[0],
		Max:    psfs[len(psfs)-1],
		Count:  len(psfs),
	}, nil
}

// ClassifyDeal returns the percentage delta of the subject PSF against the
// benchmark and the rating band it falls in. Ties at a band boundary resolve
// to the cheaper band. The classification is scale invariant: scaling both
// PSFs by the same positive factor leaves delta and rating unchanged.
func ClassifyDeal(subjectPSF, benchmarkPSF float64, bands models.RatingBands) (float64, models.DealRating, error) {
	if benchmarkPSF <= 0 {
		return 0, "", analysis.Invalid("benchmark psf", "must be positive, got %.2f", benchmarkPSF)
	}
	delta := (subjectPSF - benchmarkPSF) / benchmarkPSF * 100

	switch {
	case delta <= bands.GoodBelowPct:
		return delta, models.RatingGoodDeal, nil
	case delta <= bands.FairBelowPct:
		return delta, models.RatingFair, nil
	default:
		return delta, models.RatingOverpriced, nil
	}
}

// Trend compares the average PSF of transactions inside the last 90 days
// against older ones. A gap of more than 5% either way marks the market
// rising or falling; anything else, or a one-sided sample, reads as stable.
func Trend(transactions []models.Transaction, asOf time.Time) string {
	cutoff := asOf.AddDate(0, 0, -90)

	var recent, older []float64
	for _, t := range transactions {
		psf := t.PSF()
		if psf <= 0 {
			continue
		}
		if t.Date.After(cutoff) {
			recent = append(recent, psf)
		} else {
			older = append(older, psf)
		}
	}
	if len(recent) == 0 || len(older) == 0 {
		return "stable"
	}

	recentAvg := mean(recent)
	olderAvg := mean(older)
	switch {
	case recentAvg > olderAvg*1.05:
		return "rising"
	case recentAvg < olderAvg*0.95:
		return "falling"
	default:
		return "stable"
	}
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
