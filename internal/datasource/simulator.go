package datasource

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// districtMultipliers roughly scale the base PSF by district desirability.
var districtMultipliers = map[int]float64{
	9: 2.0, 10: 1.9, 11: 1.7, 1: 1.6, 2: 1.5, 4: 1.4,
	15: 1.5, 16: 1.3, 18: 1.2, 19: 1.2, 20: 1.3, 21: 1.4,
	22: 1.1, 23: 1.0, 24: 0.9, 25: 0.9, 26: 0.9, 27: 0.9, 28: 1.0,
}

// basePSF is the island-wide baseline PSF per property type.
var basePSF = map[models.PropertyType]float64{
	models.PropertyCondo:  1400,
	models.PropertyHDB:    500,
	models.PropertyLanded: 1200,
}

// Simulator generates deterministic simulated transactions when no real
// data service is configured. Every record is tagged Simulated so the
// provenance is never hidden from output.
type Simulator struct {
	// Now is overridable for deterministic tests.
	Now func() time.Time
}

// NewSimulator creates a simulated transaction source.
func NewSimulator() *Simulator {
	return &Simulator{Now: time.Now}
}

// Name returns the data source name.
func (s *Simulator) Name() string { return "Simulated" }

// GetTransactions generates ten simulated transactions for the district and
// property type, spread over the lookback window, newest first. The price
// variance is derived from a hash of the district and index, so repeated
// calls produce the same prices.
func (s *Simulator) GetTransactions(_ context.Context, district int, propertyType models.PropertyType, months int) ([]models.Transaction, error) {
	if months <= 0 {
		months = 6
	}

	base, ok := basePSF[propertyType]
	if !ok {
		base = 1200
	}
	multiplier, ok := districtMultipliers[district]
	if !ok {
		multiplier = 1.0
	}
	avgPSF := base * multiplier

	sizes := []float64{800, 900, 1000, 1100, 1200, 1300, 1500}
	streets := []string{"Street 1", "Street 2", "Avenue 3", "Road 4", "Drive 5"}

	tenure := models.TenureFreehold
	if propertyType == models.PropertyCondo {
		tenure = models.TenureLeasehold99
	}

	now := s.Now()
	transactions := make([]models.Transaction, 0, 10)
	for i := 0; i < 10; i++ {
		size := sizes[i%len(sizes)]
		variance := float64(hashVariance(district, i)) / 100
		psf := avgPSF * (1 + variance)

		daysAgo := (i * 15) % (months * 30)
		transactions = append(transactions, models.Transaction{
			Address:      fmt.Sprintf("Block %d %s, District %d", 100+i*10, streets[i%len(streets)], district),
			PropertyType: propertyType,
			SizeSqft:     size,
			Price:        psf * size,
			Date:         now.AddDate(0, 0, -daysAgo),
			Tenure:       tenure,
			Simulated:    true,
		})
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

// hashVariance maps (district, index) to a stable value in [-10, 9].
func hashVariance(district, i int) int {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d%d", district, i)
	return int(h.Sum32()%20) - 10
}

// GetPriceHistory returns a simulated 12-month price series for an area,
// oldest first. Clearly tagged simulated.
func (s *Simulator) GetPriceHistory(_ context.Context, _ string, _ models.PropertyType) []models.PricePoint {
	const base = 1_000_000

	now := s.Now()
	history := make([]models.PricePoint, 0, 12)
	for i := 11; i >= 0; i-- {
		variance := float64(i%5-2) * 0.02
		price := base * (1 + variance)
		history = append(history, models.PricePoint{
			Month:     now.AddDate(0, -i, 0).Format("2006-01"),
			Price:     price,
			PSF:       price / 1000,
			Simulated: true,
		})
	}
	return history
}
